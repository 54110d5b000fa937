package system

import (
	"math/rand"

	"github.com/yohamta/donburi"
	"go.uber.org/zap"

	"parry-ebiten/core"
	"parry-ebiten/data"
	"parry-ebiten/event"
	"parry-ebiten/timing"
)

// BattleContext は戦闘の各フェーズが共通して必要とする依存関係をまとめた構造体です。
type BattleContext struct {
	World        donburi.World
	Config       *data.Config
	Rand         *rand.Rand
	Input        core.InputSource
	Logger       *zap.Logger
	BattleLogger data.BattleLogger
	Messages     *data.MessageManager
	Tick         int

	DamageCalculator *DamageCalculator
	TargetSelector   *TargetSelector
}

// NewBattleContext は共有リソースから BattleContext を組み立てます。
func NewBattleContext(world donburi.World, res *data.SharedResources, input core.InputSource) *BattleContext {
	cfg := res.Config
	logger := res.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BattleContext{
		World:            world,
		Config:           &cfg,
		Rand:             res.Rand,
		Input:            input,
		Logger:           logger,
		BattleLogger:     res.BattleLogger,
		Messages:         res.Messages,
		DamageCalculator: NewDamageCalculator(res.BattleLogger),
		TargetSelector:   NewTargetSelector(world, res.Rand),
	}
}

// BattleState は戦闘マネージャの各フェーズが満たすべきインターフェースです。
type BattleState interface {
	Update(e *BattleEngine, dt float64) error
}

// --- TurnState ---

// TurnState は次に行動する参加者を決めます。
// 中断されていた行動の後処理、復元された遅延行動、通常の行動順の順に処理します。
type TurnState struct{}

func (s *TurnState) Update(e *BattleEngine, dt float64) error {
	if e.current != nil {
		e.endAction()
		return nil
	}
	if len(e.restored) > 0 {
		d := e.restored[0]
		e.restored = e.restored[1:]
		e.startRestoredAction(d)
		return nil
	}
	if e.wait > 0 {
		e.wait -= dt
		if e.wait > 0 {
			return nil
		}
	}
	e.startNextAction()
	return nil
}

// --- ActionState ---

// ActionState は現在の行動を対象ごとに適用します。
// パリィのセッションが始まった場合はそこで止まり、解決後に残りの対象から再開します。
type ActionState struct{}

func (s *ActionState) Update(e *BattleEngine, dt float64) error {
	cur := e.current
	if cur == nil {
		e.SetPhase(core.PhaseTurn)
		return nil
	}
	for cur.next < len(cur.targets) {
		target := cur.targets[cur.next]
		cur.next++
		if !target.Alive() {
			continue
		}
		if e.defense.InterceptApply(cur.action, target) {
			return nil
		}
		e.ApplyAction(cur.action, target, 1.0)
	}
	e.endAction()
	return nil
}

// --- TimingAttackState ---

// TimingAttackState はプレイヤー側の攻撃前のタイミング攻撃を進めます。
type TimingAttackState struct{}

func (s *TimingAttackState) Update(e *BattleEngine, dt float64) error {
	game := e.timingGame
	if game == nil || e.current == nil {
		e.SetPhase(core.PhaseAction)
		return nil
	}
	pressed := e.ctx.Input != nil && e.ctx.Input.WasJustPressed("ok")
	if game.Update(dt, pressed) == timing.StateRunning {
		return nil
	}

	e.timingGame = nil
	action := e.current.action
	bonus := 0
	if game.Succeeded() {
		action.bonusPercent = game.Config().DamageBonus
		bonus = action.bonusPercent
		e.message("timing_success", map[string]any{"bonus": bonus})
	} else {
		e.message("timing_fail", nil)
	}
	e.ctx.BattleLogger.LogTimingAttack(action.subject.Name(), game.Succeeded(), bonus)
	e.emit(event.TimingAttackFinishedGameEvent{AttackerName: action.subject.Name(), Success: game.Succeeded()})
	e.SetPhase(core.PhaseAction)
	return nil
}

// --- CounterDelayState ---

// CounterDelayState は反撃ウィンドウ中のターン進行です。
// 順番が来た敵の行動はゲートに捕捉されるので、ここでは開始だけを試みます。
// プレイヤー側の順番が来た場合はゲートが閉じるまで待ちます。
type CounterDelayState struct{}

func (s *CounterDelayState) Update(e *BattleEngine, dt float64) error {
	if e.wait > 0 {
		e.wait -= dt
		if e.wait > 0 {
			return nil
		}
	}
	next := PeekNextActorSystem(e.ctx.World)
	if next == nil || !BattlerOf(next).IsEnemy() {
		return nil
	}
	e.startNextAction()
	e.wait = e.ctx.Config.Battle.TurnInterval
	return nil
}

// --- WaitState ---

// WaitState は自分では何もしないフェーズです。パリィ待ちと戦闘終了が該当します。
type WaitState struct{}

func (s *WaitState) Update(e *BattleEngine, dt float64) error { return nil }
