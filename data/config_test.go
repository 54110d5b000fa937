package data

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parry-ebiten/core"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	pc := cfg.ParryConfig()
	assert.Equal(t, core.DefaultTierConfig(), pc.Tiers)
	assert.Equal(t, core.DefaultMultipliers(), pc.Multipliers)
	assert.Equal(t, 30.0, pc.CounterDelay)
	assert.Equal(t, 12.0, pc.CounterStrikeAt)
	assert.Equal(t, core.DrainOne, pc.Drain)
	assert.Equal(t, "ok", pc.ParryKey)

	tc := cfg.TimingGameConfig()
	assert.Equal(t, [4]int{15, 30, 30, 25}, tc.ZoneChances)
	assert.Equal(t, 10, tc.DamageBonus)
}

func TestParseConfigYAML(t *testing.T) {
	yml := `
parry_key: space
total_duration: 60
zones:
  normal_fail: 20
  perfect_parry: 10
multipliers:
  good_parry: 0.5
counter_delay: 40
counter_strike_at: 20
deferred_drain: all
timing_attack:
  enabled: false
  zone_chances: [100, 0, 0, 0]
ui:
  colors:
    perfect_parry: "ff8800"
`
	cfg, err := ParseConfig([]byte(yml))
	require.NoError(t, err)
	assert.Equal(t, "space", cfg.ParryKey)
	assert.Equal(t, 60.0, cfg.TotalDuration)
	assert.Equal(t, 20.0, cfg.Zones.NormalFail)
	assert.Equal(t, 10.0, cfg.Zones.CriticalFail, "書かれていない値は既定値のまま")
	assert.Equal(t, 0.5, cfg.Multipliers.GoodParry)
	assert.Equal(t, 1.25, cfg.Multipliers.CriticalFail)
	assert.Equal(t, core.DrainAll, cfg.DeferredDrain)
	assert.False(t, cfg.TimingAttack.Enabled)
	assert.Equal(t, []int{100, 0, 0, 0}, cfg.TimingAttack.ZoneChances)
	assert.Equal(t, color.RGBA{R: 0xff, G: 0x88, B: 0x00, A: 0xff}, cfg.UI.Colors.PerfectParry)
	assert.Equal(t, DefaultConfig().UI.Colors.GoodParry, cfg.UI.Colors.GoodParry)
}

func TestParseConfigEmptyUsesDefaults(t *testing.T) {
	cfg, err := ParseConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().ParryConfig(), cfg.ParryConfig())
}

func TestParseConfigEnvOverrides(t *testing.T) {
	t.Setenv("PARRY_TOTAL_DURATION", "90")
	t.Setenv("PARRY_COUNTER_DELAY", "50")
	t.Setenv("PARRY_ZONE_PERFECT_PARRY", "16")
	t.Setenv("PARRY_MULT_NO_INPUT", "1.5")
	t.Setenv("PARRY_DEFERRED_DRAIN", "all")
	t.Setenv("PARRY_TIMING_ZONE_CHANCES", "25,25,25,25")
	t.Setenv("PARRY_BATTLE_RANDOM_SEED", "7")

	cfg, err := ParseConfig([]byte("total_duration: 60\n"))
	require.NoError(t, err)
	assert.Equal(t, 90.0, cfg.TotalDuration, "環境変数がファイルより優先される")
	assert.Equal(t, 50.0, cfg.CounterDelay)
	assert.Equal(t, 16.0, cfg.Zones.PerfectParry)
	assert.Equal(t, 1.5, cfg.Multipliers.NoInput)
	assert.Equal(t, core.DrainAll, cfg.DeferredDrain)
	assert.Equal(t, []int{25, 25, 25, 25}, cfg.TimingAttack.ZoneChances)
	assert.Equal(t, int64(7), cfg.Battle.RandomSeed)
}

func TestParseConfigRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yml  string
	}{
		{"負のゾーン幅", "zones:\n  critical_fail: -1\n"},
		{"負の倍率", "multipliers:\n  no_input: -0.5\n"},
		{"負の判定時間", "total_duration: -1\n"},
		{"判定時間が0", "total_duration: 0\nzones: {normal_fail: 0, critical_fail: 0, good_parry: 0, perfect_parry: 0}\n"},
		{"反撃待ちが0", "counter_delay: 0\n"},
		{"反撃時刻がゲートより後", "counter_delay: 10\ncounter_strike_at: 11\n"},
		{"不明な取り出し方", "deferred_drain: some\n"},
		{"不明なキー", "parry_key: q\n"},
		{"ゾーン確率の数", "timing_attack:\n  zone_chances: [50, 50]\n"},
		{"ゾーンサイズ", "timing_attack:\n  zone_min_size: 80\n  zone_max_size: 40\n"},
		{"TPS", "battle:\n  ticks_per_second: 0\n"},
		{"不明な色", "ui:\n  colors:\n    purple: \"ff00ff\"\n"},
		{"壊れた色", "ui:\n  colors:\n    cursor: \"xyz\"\n"},
		{"不明なフィールド", "perfect_window: 3\n"},
		{"壊れたYAML", "zones: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yml))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestParseConfigRejectsInvalidEnv(t *testing.T) {
	t.Setenv("PARRY_COUNTER_DELAY", "abc")
	_, err := ParseConfig(nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	paths := DefaultAssetPaths()
	paths.ParryConfig = filepath.Join(t.TempDir(), "missing.yaml")

	cfg, err := LoadConfig(paths)
	require.NoError(t, err)
	assert.Equal(t, paths, cfg.AssetPaths)
	assert.Equal(t, 45.0, cfg.TotalDuration)
}

func TestLoadConfigWrapsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parry.yaml")
	require.NoError(t, os.WriteFile(path, []byte("counter_delay: -3\n"), 0o644))
	paths := DefaultAssetPaths()
	paths.ParryConfig = path

	_, err := LoadConfig(paths)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), path)
}

func TestShippedConfigIsValid(t *testing.T) {
	paths := DefaultAssetPaths()
	paths.ParryConfig = filepath.Join("..", paths.ParryConfig)
	cfg, err := LoadConfig(paths)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().ParryConfig(), cfg.ParryConfig())
}
