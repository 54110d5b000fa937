package parry

import (
	"go.uber.org/zap"

	"parry-ebiten/core"
)

// Config は1回の戦闘で使うパリィ設定です。data.Config から生成されます。
type Config struct {
	ParryKey        string
	Tiers           core.TierConfig
	Multipliers     core.MultiplierTable
	CounterDelay    float64
	CounterStrikeAt float64
	Drain           core.DrainMode
}

// DefaultConfig は既定のパリィ設定を返します。
func DefaultConfig() Config {
	return Config{
		ParryKey:        "ok",
		Tiers:           core.DefaultTierConfig(),
		Multipliers:     core.DefaultMultipliers(),
		CounterDelay:    30,
		CounterStrikeAt: 12,
		Drain:           core.DrainOne,
	}
}

// FrameClock は Tick(dt) で進む時計です。
type FrameClock struct {
	now float64
}

func (c *FrameClock) Now() float64 { return c.now }

// Advance は dt だけ進めて現在時刻を返します。
func (c *FrameClock) Advance(dt float64) float64 {
	c.now += dt
	return c.now
}

type pendingApply struct {
	action core.Action
	target core.Battler
}

type pendingCounter struct {
	target   core.Battler // 反撃する側 (元の防御側)
	attacker core.Battler // 反撃を受ける側 (元の攻撃側)
	fireAt   float64
}

// CombatDefenseContext は戦闘1回分のパリィ関連の状態をまとめて所有します。
// 戦闘マネージャから毎フレーム Tick を呼び、戦闘の破棄時に Reset します。
type CombatDefenseContext struct {
	cfg      Config
	clock    *FrameClock
	session  *Session
	gate     *SchedulerGate
	counter  *CounterExecutor
	engine   core.TurnEngine
	input    core.InputSource
	observer Observer
	logger   *zap.Logger

	pending *pendingApply
	strike  *pendingCounter
}

// NewCombatDefenseContext は新しいコンテキストを生成します。input, observer, logger は nil でも構いません。
func NewCombatDefenseContext(cfg Config, engine core.TurnEngine, input core.InputSource, observer Observer, logger *zap.Logger) *CombatDefenseContext {
	if observer == nil {
		observer = NopObserver{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	clock := &FrameClock{}
	return &CombatDefenseContext{
		cfg:      cfg,
		clock:    clock,
		session:  NewSession(clock, cfg.Tiers, cfg.Multipliers, observer, logger.Named("session")),
		gate:     NewSchedulerGate(cfg.CounterDelay, cfg.Drain, logger.Named("gate")),
		counter:  NewCounterExecutor(engine, logger.Named("counter")),
		engine:   engine,
		input:    input,
		observer: observer,
		logger:   logger,
	}
}

func (c *CombatDefenseContext) Now() float64 { return c.clock.Now() }
func (c *CombatDefenseContext) Session() *Session { return c.session }
func (c *CombatDefenseContext) Gate() *SchedulerGate { return c.gate }
func (c *CombatDefenseContext) Config() Config { return c.cfg }
func (c *CombatDefenseContext) CounterPending() bool { return c.strike != nil }

// Holding は戦闘マネージャが自分のターン進行を止めるべきかどうかを返します。
func (c *CombatDefenseContext) Holding() bool {
	return c.session.Active() || c.gate.Active() || c.strike != nil
}

// Eligible は行動がパリィの対象になるかどうかを判定します。
// 敵から味方への HP ダメージ行動で、反撃ではなく、対象がパリィ可能な場合だけ true です。
func Eligible(action core.Action, target core.Battler) bool {
	if action == nil || target == nil {
		return false
	}
	subject := action.Subject()
	if subject == nil {
		return false
	}
	if action.Tags().Counter {
		return false
	}
	return subject.IsEnemy() && target.IsActor() && action.IsHPDamaging() && target.CanParry()
}

// InterceptApply は戦闘マネージャがダメージを確定する直前に呼ぶフックです。
// true を返した場合、行動の適用は保留され、セッション解決時にこのコンテキストが適用します。
func (c *CombatDefenseContext) InterceptApply(action core.Action, target core.Battler) bool {
	if !Eligible(action, target) {
		return false
	}
	if !c.session.Start(target, action.Subject(), action) {
		return false
	}
	c.pending = &pendingApply{action: action, target: target}
	c.engine.SetPhase(core.PhaseParryWait)
	return true
}

// BeforeStartAction は戦闘マネージャが行動を開始する直前に呼ぶフックです。
// ゲート中の敵の行動は捕捉され、true が返ります。
func (c *CombatDefenseContext) BeforeStartAction(subject core.Battler, action core.Action, targets []core.Battler) bool {
	return c.gate.Capture(core.DeferredAction{
		Subject: subject,
		Action:  action,
		Targets: append([]core.Battler(nil), targets...),
	})
}

// Tick は1フレーム分処理を進めます。
// 入力の取得、セッションのタイムアウト判定、保留中の行動の適用、反撃、ゲートの開閉の順に処理します。
func (c *CombatDefenseContext) Tick(dt float64) GateResult {
	now := c.clock.Advance(dt)

	// 入力はティックごとに1回だけ問い合わせる
	if c.input != nil && c.input.WasJustPressed(c.cfg.ParryKey) {
		c.session.RecordInput(now)
	}
	if res := c.session.Tick(now); res.Resolved {
		c.finish(res.Outcome, now)
	}

	if c.strike != nil && now >= c.strike.fireAt {
		strike := c.strike
		c.strike = nil
		if result, ok := c.counter.Execute(strike.target, strike.attacker); ok {
			c.observer.OnCounterAttack(result)
		}
	}

	// 反撃より先にゲートが閉じることはない (CounterStrikeAt <= CounterDelay)
	if c.strike != nil {
		return GateResult{}
	}
	result := c.gate.Update(now, c.engine)
	if result.Closed {
		c.observer.OnGateClosed(result.BattleEnded)
	}
	return result
}

// finish は解決済みのセッションの結果を保留中の行動に反映します。
func (c *CombatDefenseContext) finish(outcome core.Outcome, now float64) {
	target := c.session.Target()
	attacker := c.session.Attacker()
	pending := c.pending
	c.pending = nil
	c.session.Reset()

	if pending != nil && !SkipsApplication(outcome) {
		c.engine.ApplyAction(pending.action, pending.target, outcome.DamageMultiplier)
	}

	if !outcome.CounterEligible {
		c.engine.SetPhase(core.PhaseAction)
		return
	}

	c.gate.Open(now)
	c.engine.SetPhase(core.PhaseCounterDelay)
	c.observer.OnGateOpened(c.gate.EndTime())
	c.strike = &pendingCounter{
		target:   target,
		attacker: attacker,
		fireAt:   now + max(0, c.cfg.CounterStrikeAt),
	}
}

// ForceResolve は入力待ちを打ち切ってその場で解決します。
func (c *CombatDefenseContext) ForceResolve() (core.Outcome, bool) {
	if !c.session.Active() {
		return core.Outcome{}, false
	}
	outcome := c.session.Resolve()
	c.finish(outcome, c.clock.Now())
	return outcome, true
}

// Reset はセッション、ゲート、遅延行動、保留中の反撃をすべて破棄します。
// 戦闘開始時とシーン破棄時に呼びます。
func (c *CombatDefenseContext) Reset() {
	c.session.Reset()
	c.gate.Reset()
	c.pending = nil
	c.strike = nil
	c.clock.now = 0
}
