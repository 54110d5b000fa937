package core

import "math"

// --- Enums and Constants ---

type TeamID int
type Phase string
type DrainMode string

const (
	Team1    TeamID = 0 // プレイヤー側 (アクター)
	Team2    TeamID = 1 // 敵側
	TeamNone TeamID = -1
)

// 戦闘マネージャのフェーズ
const (
	PhaseTurn         Phase = "turn"
	PhaseAction       Phase = "action"
	PhaseParryWait    Phase = "parryWait"
	PhaseCounterDelay Phase = "counterDelay"
	PhaseTimingAttack Phase = "timingAttack"
	PhaseBattleEnd    Phase = "battleEnd"
)

// ゲートが閉じたときの遅延行動の取り出し方
const (
	DrainOne DrainMode = "one" // ゲート1回につき1件だけ復元
	DrainAll DrainMode = "all" // 溜まっている遅延行動をすべて復元
)

// ParryKeys はパリィ入力に割り当てられるキー名です。"ok" は決定キー (Enter/Space/Z とマウス左ボタン) です。
var ParryKeys = []string{"ok", "space", "enter", "z", "x", "shift"}

const (
	MinSpeedPercent     = 50
	MaxSpeedPercent     = 200
	DefaultSpeedPercent = 100
)

// Tier はパリィ入力タイミングの判定結果です。
type Tier int

const (
	TierNone Tier = iota
	TierNormalFail
	TierCriticalFail
	TierGoodParry
	TierPerfectParry
	TierNoInput
)

func (t Tier) String() string {
	switch t {
	case TierNormalFail:
		return "normalFail"
	case TierCriticalFail:
		return "criticalFail"
	case TierGoodParry:
		return "goodParry"
	case TierPerfectParry:
		return "perfectParry"
	case TierNoInput:
		return "noInput"
	default:
		return "none"
	}
}

// ZoneWidths は4つの判定ゾーンの幅 (ティック単位) です。
// ゾーンは NormalFail → CriticalFail → GoodParry → PerfectParry の順に連続して並びます。
type ZoneWidths struct {
	NormalFail   float64
	CriticalFail float64
	GoodParry    float64
	PerfectParry float64
}

// Sum はゾーン幅の合計を返します。
func (w ZoneWidths) Sum() float64 {
	return w.NormalFail + w.CriticalFail + w.GoodParry + w.PerfectParry
}

// Scale はすべての幅に factor を掛けた値を返します。
func (w ZoneWidths) Scale(factor float64) ZoneWidths {
	return ZoneWidths{
		NormalFail:   w.NormalFail * factor,
		CriticalFail: w.CriticalFail * factor,
		GoodParry:    w.GoodParry * factor,
		PerfectParry: w.PerfectParry * factor,
	}
}

// TierConfig はパリィ1回分のゾーン構成です。
// TotalDuration は外部から与えられる下限で、実際の長さは幅の合計との大きい方になります。
type TierConfig struct {
	Widths        ZoneWidths
	TotalDuration float64
}

// Total は実効的な判定時間の長さを返します。
func (c TierConfig) Total() float64 {
	return math.Max(c.TotalDuration, c.Widths.Sum())
}

// MultiplierTable は判定結果ごとのダメージ倍率です。
type MultiplierTable struct {
	NormalFail   float64
	CriticalFail float64
	GoodParry    float64
	PerfectParry float64
	NoInput      float64
}

// DefaultMultipliers は既定の倍率表を返します。
func DefaultMultipliers() MultiplierTable {
	return MultiplierTable{
		NormalFail:   1.0,
		CriticalFail: 1.25,
		GoodParry:    0.75,
		PerfectParry: 0.0,
		NoInput:      1.0,
	}
}

// DefaultTierConfig は total=45, fail=15, critical=10, good=12, perfect=8 の構成を返します。
func DefaultTierConfig() TierConfig {
	return TierConfig{
		Widths: ZoneWidths{
			NormalFail:   15,
			CriticalFail: 10,
			GoodParry:    12,
			PerfectParry: 8,
		},
		TotalDuration: 45,
	}
}

// Outcome はパリィ1回の最終結果です。
type Outcome struct {
	Tier             Tier
	DamageMultiplier float64
	// CounterEligible は PerfectParry のときだけ true になります。
	CounterEligible bool
}

// ActionTags は行動ごとの上書き設定です。
type ActionTags struct {
	Unparryable  bool
	SpeedPercent int // 0 は 100 として扱う
	Counter      bool // 反撃として生成された行動 (ミニゲームを再度起動しない)
}

// EffectiveSpeed は [50,200] に丸めた速度パーセントを返します。
func (t ActionTags) EffectiveSpeed() int {
	speed := t.SpeedPercent
	if speed == 0 {
		speed = DefaultSpeedPercent
	}
	if speed < MinSpeedPercent {
		return MinSpeedPercent
	}
	if speed > MaxSpeedPercent {
		return MaxSpeedPercent
	}
	return speed
}

// BattlerData はロスターCSVの1行分のデータです。
type BattlerData struct {
	ID         string
	Name       string
	Team       TeamID
	IsLeader   bool
	HP         int
	Attack     int
	Defense    int
	Agility    int
	SkillName  string
	SkillPower int
	SkillNote  string
}

// GameEndResult はゲーム終了チェックの結果を保持します。
type GameEndResult struct {
	IsGameOver bool
	Winner     TeamID
	Message    string
}
