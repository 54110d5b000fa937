package data

import (
	"errors"
	"fmt"
	"image/color"
	"slices"

	"gopkg.in/yaml.v3"

	"parry-ebiten/core"
	"parry-ebiten/parry"
	"parry-ebiten/timing"
)

// ErrInvalidConfig は設定値の検証エラーすべてをラップします。
var ErrInvalidConfig = errors.New("invalid config")

// Config はゲーム全体の設定を保持します。
// parry.yaml から読み込んだ後、PARRY_ で始まる環境変数で上書きされます。
type Config struct {
	Debug           bool           `yaml:"debug" env:"DEBUG"`
	ParryKey        string         `yaml:"parry_key" env:"KEY"`
	TotalDuration   float64        `yaml:"total_duration" env:"TOTAL_DURATION"`
	Zones           ZoneConfig     `yaml:"zones" envPrefix:"ZONE_"`
	Multipliers     MultiplierConf `yaml:"multipliers" envPrefix:"MULT_"`
	CounterDelay    float64        `yaml:"counter_delay" env:"COUNTER_DELAY"`
	CounterStrikeAt float64        `yaml:"counter_strike_at" env:"COUNTER_STRIKE_AT"`
	DeferredDrain   core.DrainMode `yaml:"deferred_drain" env:"DEFERRED_DRAIN"`
	TimingAttack    TimingConfig   `yaml:"timing_attack" envPrefix:"TIMING_"`
	Battle          BattleConfig   `yaml:"battle" envPrefix:"BATTLE_"`
	UI              UIConfig       `yaml:"ui" envPrefix:"UI_"`

	// ファイルからは読み込まず、コード側で設定します。
	AssetPaths AssetPaths `yaml:"-"`
}

// ZoneConfig は4つの判定ゾーンの幅です (ティック)。
type ZoneConfig struct {
	NormalFail   float64 `yaml:"normal_fail" env:"NORMAL_FAIL"`
	CriticalFail float64 `yaml:"critical_fail" env:"CRITICAL_FAIL"`
	GoodParry    float64 `yaml:"good_parry" env:"GOOD_PARRY"`
	PerfectParry float64 `yaml:"perfect_parry" env:"PERFECT_PARRY"`
}

// MultiplierConf は判定結果ごとのダメージ倍率です。
type MultiplierConf struct {
	NormalFail   float64 `yaml:"normal_fail" env:"NORMAL_FAIL"`
	CriticalFail float64 `yaml:"critical_fail" env:"CRITICAL_FAIL"`
	GoodParry    float64 `yaml:"good_parry" env:"GOOD_PARRY"`
	PerfectParry float64 `yaml:"perfect_parry" env:"PERFECT_PARRY"`
	NoInput      float64 `yaml:"no_input" env:"NO_INPUT"`
}

// TimingConfig はタイミング攻撃ミニゲームの設定です。
type TimingConfig struct {
	Enabled     bool    `yaml:"enabled" env:"ENABLED"`
	BarWidth    float64 `yaml:"bar_width" env:"BAR_WIDTH"`
	CursorSpeed float64 `yaml:"cursor_speed" env:"CURSOR_SPEED"`
	CursorSize  float64 `yaml:"cursor_size" env:"CURSOR_SIZE"`
	ZoneMinSize int     `yaml:"zone_min_size" env:"ZONE_MIN_SIZE"`
	ZoneMaxSize int     `yaml:"zone_max_size" env:"ZONE_MAX_SIZE"`
	ZoneChances []int   `yaml:"zone_chances" env:"ZONE_CHANCES" envSeparator:","`
	Timeout     float64 `yaml:"timeout" env:"TIMEOUT"`
	DamageBonus int     `yaml:"damage_bonus" env:"DAMAGE_BONUS"`
}

// BattleConfig は参照用の戦闘マネージャの設定です。
type BattleConfig struct {
	TicksPerSecond int   `yaml:"ticks_per_second" env:"TICKS_PER_SECOND"`
	RandomSeed     int64 `yaml:"random_seed" env:"RANDOM_SEED"`
	// TurnInterval は行動と行動の間の待ち時間です (ティック)。
	TurnInterval float64 `yaml:"turn_interval" env:"TURN_INTERVAL"`
}

// AssetPaths は各種アセットへのパスを保持します。
type AssetPaths struct {
	ParryConfig string
	Roster      string
	Messages    string
}

// UIConfig は画面サイズと描画色です。
type UIConfig struct {
	Screen struct {
		Width  int `yaml:"width" env:"WIDTH"`
		Height int `yaml:"height" env:"HEIGHT"`
	} `yaml:"screen" envPrefix:"SCREEN_"`
	// Colors は16進数文字列で記述し、読み込み時に color.Color に変換されます。
	Colors ParsedColors `yaml:"colors"`
}

// ParsedColors はパース済みの色情報を保持します。
type ParsedColors struct {
	NormalFail   color.Color
	CriticalFail color.Color
	GoodParry    color.Color
	PerfectParry color.Color
	Cursor       color.Color
	Input        color.Color
	TimingZone   color.Color
	TimingHit    color.Color
	Team1        color.Color
	Team2        color.Color
	Background   color.Color
}

// UnmarshalYAML は "colors" マップ (キーが色名、値が16進数文字列) を各フィールドに変換します。
// 書かれていない色は既定値のまま残ります。
func (p *ParsedColors) UnmarshalYAML(node *yaml.Node) error {
	var raw map[string]string
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("色データのYAMLデコードに失敗しました: %w", err)
	}

	targets := map[string]*color.Color{
		"normal_fail":   &p.NormalFail,
		"critical_fail": &p.CriticalFail,
		"good_parry":    &p.GoodParry,
		"perfect_parry": &p.PerfectParry,
		"cursor":        &p.Cursor,
		"input":         &p.Input,
		"timing_zone":   &p.TimingZone,
		"timing_hit":    &p.TimingHit,
		"team1":         &p.Team1,
		"team2":         &p.Team2,
		"background":    &p.Background,
	}
	for name, hex := range raw {
		dst, ok := targets[name]
		if !ok {
			return fmt.Errorf("%w: 不明な色名です: %s", ErrInvalidConfig, name)
		}
		c, err := parseHexColor(hex)
		if err != nil {
			return fmt.Errorf("%w: colors.%s: %v", ErrInvalidConfig, name, err)
		}
		*dst = c
	}
	return nil
}

// parseHexColor は "RRGGBB" 形式の16進数文字列から color.Color をパースします。
func parseHexColor(s string) (color.Color, error) {
	if len(s) != 6 {
		return nil, fmt.Errorf("無効な16進数カラーコードです: %q", s)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return nil, fmt.Errorf("16進数カラーコード %q のパースに失敗しました: %w", s, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// DefaultConfig は parry.yaml が無いときに使う既定値を返します。
func DefaultConfig() Config {
	tiers := core.DefaultTierConfig()
	mult := core.DefaultMultipliers()
	tc := timing.DefaultConfig()

	cfg := Config{
		ParryKey:      "ok",
		TotalDuration: tiers.TotalDuration,
		Zones: ZoneConfig{
			NormalFail:   tiers.Widths.NormalFail,
			CriticalFail: tiers.Widths.CriticalFail,
			GoodParry:    tiers.Widths.GoodParry,
			PerfectParry: tiers.Widths.PerfectParry,
		},
		Multipliers: MultiplierConf{
			NormalFail:   mult.NormalFail,
			CriticalFail: mult.CriticalFail,
			GoodParry:    mult.GoodParry,
			PerfectParry: mult.PerfectParry,
			NoInput:      mult.NoInput,
		},
		CounterDelay:    30,
		CounterStrikeAt: 12,
		DeferredDrain:   core.DrainOne,
		TimingAttack: TimingConfig{
			Enabled:     true,
			BarWidth:    tc.BarWidth,
			CursorSpeed: tc.CursorSpeed,
			CursorSize:  tc.CursorSize,
			ZoneMinSize: tc.ZoneMinSize,
			ZoneMaxSize: tc.ZoneMaxSize,
			ZoneChances: tc.ZoneChances[:],
			Timeout:     tc.Timeout,
			DamageBonus: tc.DamageBonus,
		},
		Battle: BattleConfig{
			TicksPerSecond: 60,
			TurnInterval:   20,
		},
		AssetPaths: DefaultAssetPaths(),
	}
	cfg.UI.Screen.Width = 640
	cfg.UI.Screen.Height = 480
	cfg.UI.Colors = ParsedColors{
		NormalFail:   color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff},
		CriticalFail: color.RGBA{R: 0xe0, G: 0x30, B: 0x30, A: 0xff},
		GoodParry:    color.RGBA{R: 0x30, G: 0x90, B: 0xe0, A: 0xff},
		PerfectParry: color.RGBA{R: 0xf0, G: 0xd0, B: 0x30, A: 0xff},
		Cursor:       color.White,
		Input:        color.RGBA{R: 0xff, G: 0x60, B: 0xff, A: 0xff},
		TimingZone:   color.RGBA{R: 0x30, G: 0xc0, B: 0x50, A: 0xff},
		TimingHit:    color.RGBA{R: 0xa0, G: 0xff, B: 0xa0, A: 0xff},
		Team1:        color.RGBA{R: 0x40, G: 0x80, B: 0xff, A: 0xff},
		Team2:        color.RGBA{R: 0xff, G: 0x50, B: 0x50, A: 0xff},
		Background:   color.RGBA{R: 0x18, G: 0x18, B: 0x20, A: 0xff},
	}
	return cfg
}

// Validate は読み込み時に設定値を検証します。戦闘の途中では呼びません。
func (c Config) Validate() error {
	if !slices.Contains(core.ParryKeys, c.ParryKey) {
		return fmt.Errorf("%w: parry_key %q は %v のいずれかである必要があります", ErrInvalidConfig, c.ParryKey, core.ParryKeys)
	}
	if c.TotalDuration < 0 {
		return fmt.Errorf("%w: total_duration は0以上である必要があります (%v)", ErrInvalidConfig, c.TotalDuration)
	}
	for name, w := range map[string]float64{
		"normal_fail":   c.Zones.NormalFail,
		"critical_fail": c.Zones.CriticalFail,
		"good_parry":    c.Zones.GoodParry,
		"perfect_parry": c.Zones.PerfectParry,
	} {
		if w < 0 {
			return fmt.Errorf("%w: zones.%s は0以上である必要があります (%v)", ErrInvalidConfig, name, w)
		}
	}
	if c.tierConfig().Total() <= 0 {
		return fmt.Errorf("%w: 判定時間が0です", ErrInvalidConfig)
	}
	for name, m := range map[string]float64{
		"normal_fail":   c.Multipliers.NormalFail,
		"critical_fail": c.Multipliers.CriticalFail,
		"good_parry":    c.Multipliers.GoodParry,
		"perfect_parry": c.Multipliers.PerfectParry,
		"no_input":      c.Multipliers.NoInput,
	} {
		if m < 0 {
			return fmt.Errorf("%w: multipliers.%s は0以上である必要があります (%v)", ErrInvalidConfig, name, m)
		}
	}
	if c.CounterDelay <= 0 {
		return fmt.Errorf("%w: counter_delay は正の値である必要があります (%v)", ErrInvalidConfig, c.CounterDelay)
	}
	if c.CounterStrikeAt < 0 || c.CounterStrikeAt > c.CounterDelay {
		return fmt.Errorf("%w: counter_strike_at は 0〜counter_delay (%v) の範囲である必要があります (%v)", ErrInvalidConfig, c.CounterDelay, c.CounterStrikeAt)
	}
	if c.DeferredDrain != core.DrainOne && c.DeferredDrain != core.DrainAll {
		return fmt.Errorf("%w: deferred_drain %q は one か all である必要があります", ErrInvalidConfig, c.DeferredDrain)
	}
	if err := c.TimingAttack.validate(); err != nil {
		return err
	}
	if c.Battle.TicksPerSecond <= 0 {
		return fmt.Errorf("%w: battle.ticks_per_second は正の値である必要があります (%v)", ErrInvalidConfig, c.Battle.TicksPerSecond)
	}
	if c.Battle.TurnInterval < 0 {
		return fmt.Errorf("%w: battle.turn_interval は0以上である必要があります (%v)", ErrInvalidConfig, c.Battle.TurnInterval)
	}
	return nil
}

func (t TimingConfig) validate() error {
	if t.BarWidth <= 0 || t.CursorSpeed <= 0 {
		return fmt.Errorf("%w: timing_attack.bar_width と cursor_speed は正の値である必要があります", ErrInvalidConfig)
	}
	if t.CursorSize < 0 || t.CursorSize >= t.BarWidth {
		return fmt.Errorf("%w: timing_attack.cursor_size が不正です (%v)", ErrInvalidConfig, t.CursorSize)
	}
	// ゾーンはバーの後ろ 66% に収まらなければならない
	if t.ZoneMinSize <= 0 || t.ZoneMinSize > t.ZoneMaxSize || float64(t.ZoneMaxSize) >= t.BarWidth*0.66 {
		return fmt.Errorf("%w: timing_attack のゾーンサイズが不正です (%d〜%d)", ErrInvalidConfig, t.ZoneMinSize, t.ZoneMaxSize)
	}
	if len(t.ZoneChances) != 4 {
		return fmt.Errorf("%w: timing_attack.zone_chances は4つの値が必要です (%d)", ErrInvalidConfig, len(t.ZoneChances))
	}
	for _, c := range t.ZoneChances {
		if c < 0 {
			return fmt.Errorf("%w: timing_attack.zone_chances に負の値があります", ErrInvalidConfig)
		}
	}
	if t.Timeout <= 0 || t.DamageBonus < 0 {
		return fmt.Errorf("%w: timing_attack.timeout と damage_bonus が不正です", ErrInvalidConfig)
	}
	return nil
}

func (c Config) tierConfig() core.TierConfig {
	return core.TierConfig{
		Widths: core.ZoneWidths{
			NormalFail:   c.Zones.NormalFail,
			CriticalFail: c.Zones.CriticalFail,
			GoodParry:    c.Zones.GoodParry,
			PerfectParry: c.Zones.PerfectParry,
		},
		TotalDuration: c.TotalDuration,
	}
}

// ParryConfig は戦闘1回分のパリィ設定を作ります。
func (c Config) ParryConfig() parry.Config {
	return parry.Config{
		ParryKey: c.ParryKey,
		Tiers:    c.tierConfig(),
		Multipliers: core.MultiplierTable{
			NormalFail:   c.Multipliers.NormalFail,
			CriticalFail: c.Multipliers.CriticalFail,
			GoodParry:    c.Multipliers.GoodParry,
			PerfectParry: c.Multipliers.PerfectParry,
			NoInput:      c.Multipliers.NoInput,
		},
		CounterDelay:    c.CounterDelay,
		CounterStrikeAt: c.CounterStrikeAt,
		Drain:           c.DeferredDrain,
	}
}

// TimingGameConfig はタイミング攻撃ミニゲームの設定を作ります。Validate 済みであることが前提です。
func (c Config) TimingGameConfig() timing.Config {
	t := c.TimingAttack
	var chances [4]int
	copy(chances[:], t.ZoneChances)
	return timing.Config{
		BarWidth:    t.BarWidth,
		CursorSpeed: t.CursorSpeed,
		CursorSize:  t.CursorSize,
		ZoneMinSize: t.ZoneMinSize,
		ZoneMaxSize: t.ZoneMaxSize,
		ZoneChances: chances,
		Timeout:     t.Timeout,
		DamageBonus: t.DamageBonus,
	}
}
