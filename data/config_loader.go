package data

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix は設定を上書きする環境変数の接頭辞です。
const EnvPrefix = "PARRY_"

// DefaultAssetPaths はアセットのパスを一元管理します。
func DefaultAssetPaths() AssetPaths {
	return AssetPaths{
		ParryConfig: "assets/configs/parry.yaml",
		Roster:      "assets/databases/roster.csv",
		Messages:    "assets/texts/messages.json",
	}
}

// ParseConfig は既定値の上に YAML と環境変数を重ね、検証済みの Config を返します。
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if len(bytes.TrimSpace(data)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("%w: YAMLのパースに失敗しました: %w", ErrInvalidConfig, err)
		}
	}
	if err := ApplyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv は PARRY_ で始まる環境変数で cfg を上書きします。
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("%w: 環境変数の読み込みに失敗しました: %w", ErrInvalidConfig, err)
	}
	return nil
}

// LoadConfig は paths.ParryConfig を読み込みます。ファイルが無い場合は既定値と環境変数だけを使います。
func LoadConfig(paths AssetPaths) (Config, error) {
	data, err := os.ReadFile(paths.ParryConfig)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("%s の読み込みに失敗しました: %w", paths.ParryConfig, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", paths.ParryConfig, err)
	}
	cfg.AssetPaths = paths
	return cfg, nil
}
