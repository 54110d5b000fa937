package event

import (
	"parry-ebiten/core"
)

// GameEvent は、ゲームロジックから発行されるすべてのイベントを示すマーカーインターフェースです。
type GameEvent interface {
	isGameEvent()
}

// MessageDisplayRequestGameEvent は、メッセージ表示が必要になったことを示すイベントです。
type MessageDisplayRequestGameEvent struct {
	Messages []string
}

func (e MessageDisplayRequestGameEvent) isGameEvent() {}

// ActionStartedGameEvent は、行動が開始されたことを示すイベントです。
type ActionStartedGameEvent struct {
	SubjectName string
	SkillName   string
	TargetNames []string
	Restored    bool // ゲートが閉じたときに復元された遅延行動
}

func (e ActionStartedGameEvent) isGameEvent() {}

// ActionDeferredGameEvent は、反撃ウィンドウ中の敵の行動が遅延されたことを示すイベントです。
type ActionDeferredGameEvent struct {
	SubjectName string
}

func (e ActionDeferredGameEvent) isGameEvent() {}

// ActionAppliedGameEvent は、行動が対象に適用されたことを示すイベントです。
type ActionAppliedGameEvent struct {
	Result core.ActionResult
}

func (e ActionAppliedGameEvent) isGameEvent() {}

// ParryStartedGameEvent は、パリィの入力受付が始まったことを示すイベントです。
type ParryStartedGameEvent struct {
	TargetName   string
	AttackerName string
	Total        float64
}

func (e ParryStartedGameEvent) isGameEvent() {}

// ParryResolvedGameEvent は、パリィの判定が確定したことを示すイベントです。
type ParryResolvedGameEvent struct {
	Outcome core.Outcome
}

func (e ParryResolvedGameEvent) isGameEvent() {}

// CounterAttackGameEvent は、PerfectParry 後の反撃が適用されたことを示すイベントです。
type CounterAttackGameEvent struct {
	Result core.ActionResult
}

func (e CounterAttackGameEvent) isGameEvent() {}

// TimingAttackStartedGameEvent は、タイミング攻撃のミニゲームが始まったことを示すイベントです。
type TimingAttackStartedGameEvent struct {
	AttackerName string
}

func (e TimingAttackStartedGameEvent) isGameEvent() {}

// TimingAttackFinishedGameEvent は、タイミング攻撃の結果が出たことを示すイベントです。
type TimingAttackFinishedGameEvent struct {
	AttackerName string
	Success      bool
}

func (e TimingAttackFinishedGameEvent) isGameEvent() {}

// BattlerDefeatedGameEvent は、戦闘参加者が倒れたことを示すイベントです。
type BattlerDefeatedGameEvent struct {
	Name string
}

func (e BattlerDefeatedGameEvent) isGameEvent() {}

// GameOverGameEvent は、戦闘が終了したことを示すイベントです。
type GameOverGameEvent struct {
	Result core.GameEndResult
}

func (e GameOverGameEvent) isGameEvent() {}
