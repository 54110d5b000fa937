package system

import (
	"fmt"

	"github.com/yohamta/donburi"
	"go.uber.org/zap"

	"parry-ebiten/core"
	"parry-ebiten/data"
	"parry-ebiten/ecs/component"
	"parry-ebiten/ecs/entity"
	"parry-ebiten/event"
	"parry-ebiten/parry"
	"parry-ebiten/timing"
)

// currentAction は進行中の行動と、まだ適用していない対象です。
type currentAction struct {
	action  *AttackAction
	targets []Battler
	next    int
}

// BattleEngine は参照用のターン制戦闘マネージャです。
// core.TurnEngine として parry.CombatDefenseContext をホストし、
// parry.Observer として判定結果を画面用のイベントに変換します。
type BattleEngine struct {
	ctx     *BattleContext
	defense *parry.CombatDefenseContext
	phase   *PhaseMachine
	states  map[core.Phase]BattleState
	logger  *zap.Logger

	current    *currentAction
	restored   []core.DeferredAction
	wait       float64
	timingGame *timing.Game
	result     core.GameEndResult
	events     []event.GameEvent
}

var (
	_ core.TurnEngine = (*BattleEngine)(nil)
	_ parry.Observer  = (*BattleEngine)(nil)
)

// NewBattleEngine はロスターから戦闘ワールドを初期化し、戦闘マネージャを生成します。
// observer には画面側のフック (タイミングバーや効果音) を渡します。nil でも構いません。
func NewBattleEngine(ctx *BattleContext, roster []core.BattlerData, observer parry.Observer) *BattleEngine {
	if ctx.Logger == nil {
		ctx.Logger = zap.NewNop()
	}
	if ctx.BattleLogger == nil {
		ctx.BattleLogger = data.NewBattleLogger(ctx.Logger)
	}
	if ctx.DamageCalculator == nil {
		ctx.DamageCalculator = NewDamageCalculator(ctx.BattleLogger)
	}
	if ctx.TargetSelector == nil {
		ctx.TargetSelector = NewTargetSelector(ctx.World, ctx.Rand)
	}
	logger := ctx.Logger.Named("engine")
	e := &BattleEngine{
		ctx:    ctx,
		phase:  NewPhaseMachine(logger),
		logger: logger,
		result: core.GameEndResult{Winner: core.TeamNone},
		states: map[core.Phase]BattleState{
			core.PhaseTurn:         &TurnState{},
			core.PhaseAction:       &ActionState{},
			core.PhaseTimingAttack: &TimingAttackState{},
			core.PhaseParryWait:    &WaitState{},
			core.PhaseCounterDelay: &CounterDelayState{},
			core.PhaseBattleEnd:    &WaitState{},
		},
	}
	observers := parry.Observers{e}
	if observer != nil {
		observers = append(observers, observer)
	}
	e.defense = parry.NewCombatDefenseContext(ctx.Config.ParryConfig(), e, ctx.Input, observers, ctx.Logger.Named("parry"))

	entity.InitializeBattleWorld(ctx.World, roster, logger)
	BuildTurnOrderSystem(ctx.World)
	e.message("battle_start", nil)
	return e
}

func (e *BattleEngine) Phase() core.Phase { return e.phase.Current() }
func (e *BattleEngine) Defense() *parry.CombatDefenseContext { return e.defense }
func (e *BattleEngine) Result() core.GameEndResult { return e.result }
func (e *BattleEngine) Finished() bool { return e.phase.Is(core.PhaseBattleEnd) }

// TimingGame は進行中のタイミング攻撃を返します。無い場合は nil です。
func (e *BattleEngine) TimingGame() *timing.Game { return e.timingGame }

// Battlers は描画用に全参加者をロスター順で返します。
func (e *BattleEngine) Battlers() []Battler {
	var battlers []Battler
	entity.BattlerQuery.Each(e.ctx.World, func(entry *donburi.Entry) {
		battlers = append(battlers, BattlerOf(entry))
	})
	return battlers
}

// Update は1フレーム分戦闘を進め、このフレームで発生したイベントを返します。
// パリィの処理はフェーズに関係なく毎フレーム進めます。
// 入力待ちと反撃の発動待ちの間はターン進行を止めます。
func (e *BattleEngine) Update(dt float64) ([]event.GameEvent, error) {
	e.ctx.Tick++
	e.defense.Tick(dt)

	if e.Finished() || e.defense.Session().Active() || e.defense.CounterPending() {
		return e.flush(), nil
	}
	state, ok := e.states[e.phase.Current()]
	if !ok {
		return e.flush(), fmt.Errorf("未知のフェーズです: %s", e.phase.Current())
	}
	if err := state.Update(e, dt); err != nil {
		return e.flush(), err
	}
	return e.flush(), nil
}

// Dispose は戦闘を破棄します。保留中のセッションや遅延行動はすべて捨てます。
func (e *BattleEngine) Dispose() {
	e.defense.Reset()
	e.current = nil
	e.restored = nil
	e.timingGame = nil
	e.events = nil
}

func (e *BattleEngine) emit(ev event.GameEvent) {
	e.events = append(e.events, ev)
}

func (e *BattleEngine) flush() []event.GameEvent {
	events := e.events
	e.events = nil
	return events
}

// message はテンプレートを埋めて画面表示用のメッセージイベントを発行します。
func (e *BattleEngine) message(id string, params map[string]any) {
	if e.ctx.Messages == nil {
		return
	}
	e.emit(event.MessageDisplayRequestGameEvent{Messages: []string{e.ctx.Messages.Format(id, params)}})
}

// --- 行動の開始と終了 ---

func (e *BattleEngine) startNextAction() {
	entry := PopNextActorSystem(e.ctx.World)
	if entry == nil {
		e.CheckBattleEnd()
		return
	}
	target := e.ctx.TargetSelector.SelectTarget(entry)
	if target == nil {
		e.CheckBattleEnd()
		return
	}
	subject := BattlerOf(entry)
	e.startAction(subject, NewSkillAction(subject), []Battler{BattlerOf(target)}, false)
}

// startRestoredAction はゲートが閉じたときに戻された遅延行動を開始します。
// 行動者が倒れていれば捨て、対象が全員倒れていれば選び直します。
func (e *BattleEngine) startRestoredAction(d core.DeferredAction) {
	subject, ok := d.Subject.(Battler)
	action, ok2 := d.Action.(*AttackAction)
	if !ok || !ok2 {
		e.logger.Error("復元できない遅延行動です", zap.Any("subject", d.Subject))
		return
	}
	if !subject.Alive() {
		e.logger.Debug("行動者が倒れているため遅延行動を破棄します", zap.String("subject", subject.Name()))
		return
	}
	var targets []Battler
	for _, t := range d.Targets {
		if b, ok := t.(Battler); ok && b.Alive() {
			targets = append(targets, b)
		}
	}
	if len(targets) == 0 {
		target := e.ctx.TargetSelector.SelectTarget(subject.Entry())
		if target == nil {
			e.CheckBattleEnd()
			return
		}
		targets = []Battler{BattlerOf(target)}
	}
	e.startAction(subject, action, targets, true)
}

func (e *BattleEngine) startAction(subject Battler, action *AttackAction, targets []Battler, restored bool) {
	coreTargets := make([]core.Battler, len(targets))
	for i, t := range targets {
		coreTargets[i] = t
	}
	if e.defense.BeforeStartAction(subject, action, coreTargets) {
		e.emit(event.ActionDeferredGameEvent{SubjectName: subject.Name()})
		return
	}

	e.current = &currentAction{action: action, targets: targets}
	e.SetPhase(core.PhaseAction)
	e.emit(event.ActionStartedGameEvent{SubjectName: subject.Name(), SkillName: action.Name(), TargetNames: battlerNames(targets), Restored: restored})
	e.message("attack", map[string]any{"attacker": subject.Name(), "skill": action.Name()})

	if e.ctx.Config.TimingAttack.Enabled && subject.IsActor() && !action.Tags().Counter && targets[0].IsEnemy() {
		e.timingGame = timing.NewGame(e.ctx.Config.TimingGameConfig(), e.ctx.Rand)
		e.SetPhase(core.PhaseTimingAttack)
		e.emit(event.TimingAttackStartedGameEvent{AttackerName: subject.Name()})
		e.message("timing_prompt", nil)
	}
}

// endAction は行動の後処理です。倒れた対象を退場させ、勝敗を判定します。
func (e *BattleEngine) endAction() {
	cur := e.current
	e.current = nil
	if cur != nil {
		for _, t := range cur.targets {
			if t.IsDead() && !t.Hidden() {
				e.PerformCollapse(t)
				e.HideBattler(t)
			}
		}
	}
	if e.CheckBattleEnd() {
		return
	}
	e.SetPhase(core.PhaseTurn)
	e.wait = e.ctx.Config.Battle.TurnInterval
}

func battlerNames(battlers []Battler) []string {
	names := make([]string, len(battlers))
	for i, b := range battlers {
		names[i] = b.Name()
	}
	return names
}

// --- core.TurnEngine ---

// ApplyAction は行動を target に適用し、HPを減らします。
func (e *BattleEngine) ApplyAction(action core.Action, target core.Battler, multiplier float64) core.ActionResult {
	atk, ok := action.(*AttackAction)
	tb, ok2 := target.(Battler)
	if !ok || !ok2 {
		e.logger.Error("適用できない行動です", zap.Any("action", action), zap.Any("target", target))
		return core.ActionResult{Subject: action.Subject(), Target: target, Multiplier: multiplier}
	}

	_, damage := e.ctx.DamageCalculator.CalculateDamage(atk.subject.Entry(), tb.Entry(), atk.power, atk.bonusPercent, multiplier)
	stats := component.StatsComponent.Get(tb.Entry())
	stats.HP = max(0, stats.HP-damage)

	result := core.ActionResult{
		Subject:    atk.subject,
		Target:     tb,
		Damage:     damage,
		Multiplier: multiplier,
		Defeated:   stats.HP == 0,
	}
	e.emit(event.ActionAppliedGameEvent{Result: result})
	// 反撃のメッセージは OnCounterAttack でまとめて出す
	if !atk.tags.Counter {
		if damage > 0 {
			e.message("damage", map[string]any{"target": tb.Name(), "damage": damage})
		} else {
			e.message("no_damage", map[string]any{"target": tb.Name()})
		}
	}
	return result
}

// NewAttackAction は subject の通常攻撃を作ります。反撃に使われます。
func (e *BattleEngine) NewAttackAction(subject core.Battler, tags core.ActionTags) core.Action {
	b, _ := subject.(Battler)
	return &AttackAction{subject: b, name: "攻撃", power: counterPower, tags: tags}
}

func (e *BattleEngine) PerformCollapse(b core.Battler) {
	battler, ok := b.(Battler)
	if !ok {
		return
	}
	cond := component.ConditionComponent.Get(battler.Entry())
	if cond.Collapsed {
		return
	}
	cond.Collapsed = true
	e.ctx.BattleLogger.LogDefeat(battler.Name())
	e.emit(event.BattlerDefeatedGameEvent{Name: battler.Name()})
	e.message("defeated", map[string]any{"name": battler.Name()})
}

func (e *BattleEngine) HideBattler(b core.Battler) {
	if battler, ok := b.(Battler); ok {
		component.ConditionComponent.Get(battler.Entry()).Hidden = true
	}
}

// CheckBattleEnd はどちらかのチームが全滅していれば戦闘を終了します。
func (e *BattleEngine) CheckBattleEnd() bool {
	if e.Finished() {
		return true
	}
	result := CheckGameEndSystem(e.ctx.World)
	if !result.IsGameOver {
		return false
	}
	e.result = result
	e.current = nil
	e.restored = nil
	e.timingGame = nil
	e.SetPhase(core.PhaseBattleEnd)
	e.ctx.BattleLogger.LogBattleEnd(result.Message)
	if result.Winner == core.Team1 {
		e.message("victory", nil)
	} else {
		e.message("defeat", nil)
	}
	e.emit(event.GameOverGameEvent{Result: result})
	return true
}

func (e *BattleEngine) SetPhase(p core.Phase) { e.phase.Set(p) }

// RestoreAction は遅延行動を次のターンで最初に実行する列に戻します。
func (e *BattleEngine) RestoreAction(d core.DeferredAction) {
	e.restored = append(e.restored, d)
}

// --- parry.Observer ---

func (e *BattleEngine) OnSessionStart(view parry.SessionView) {
	e.emit(event.ParryStartedGameEvent{
		TargetName:   view.Target.Name(),
		AttackerName: view.Attacker.Name(),
		Total:        view.Zones.Total,
	})
	e.message("parry_prompt", nil)
}

func (e *BattleEngine) OnInputRecorded(view parry.SessionView) {}

var tierMessages = map[core.Tier]string{
	core.TierNormalFail:   "parry_normal_fail",
	core.TierCriticalFail: "parry_critical_fail",
	core.TierGoodParry:    "parry_good",
	core.TierPerfectParry: "parry_perfect",
	core.TierNoInput:      "parry_no_input",
}

func (e *BattleEngine) OnSessionResolved(outcome core.Outcome) {
	e.emit(event.ParryResolvedGameEvent{Outcome: outcome})
	if id, ok := tierMessages[outcome.Tier]; ok {
		e.message(id, nil)
	}
}

func (e *BattleEngine) OnCounterAttack(result core.ActionResult) {
	e.emit(event.CounterAttackGameEvent{Result: result})
	e.message("counter_attack", map[string]any{
		"attacker": result.Subject.Name(),
		"target":   result.Target.Name(),
		"damage":   result.Damage,
	})
}

func (e *BattleEngine) OnGateOpened(endTime float64) {
	e.logger.Debug("反撃ウィンドウ開始", zap.Float64("endTime", endTime))
}

func (e *BattleEngine) OnGateClosed(battleEnded bool) {
	e.logger.Debug("反撃ウィンドウ終了", zap.Bool("battleEnded", battleEnded))
}
