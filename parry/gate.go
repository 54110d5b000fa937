package parry

import (
	"context"

	"github.com/looplab/fsm"
	"go.uber.org/zap"

	"parry-ebiten/core"
)

const (
	GateNormal       = "normal"
	GateCounterDelay = "counterDelay"

	gateEventOpen  = "open"
	gateEventClose = "close"
)

// GateResult は SchedulerGate.Update の結果です。
type GateResult struct {
	Closed      bool
	BattleEnded bool
	Restored    int
}

// SchedulerGate は PerfectParry 後の反撃ウィンドウの間、戦闘マネージャの進行を止めるゲートです。
// ゲート中に開始されようとした敵の行動は FIFO に捕捉され、ゲートが閉じたときに復元されます。
type SchedulerGate struct {
	machine  *fsm.FSM
	delay    float64
	drain    core.DrainMode
	openTime float64
	endTime  float64
	deferred []core.DeferredAction
	logger   *zap.Logger
}

// NewSchedulerGate は Normal 状態のゲートを生成します。
func NewSchedulerGate(delay float64, drain core.DrainMode, logger *zap.Logger) *SchedulerGate {
	if logger == nil {
		logger = zap.NewNop()
	}
	if drain == "" {
		drain = core.DrainOne
	}
	g := &SchedulerGate{
		delay:  delay,
		drain:  drain,
		logger: logger,
	}
	g.machine = newGateFSM(logger)
	return g
}

func newGateFSM(logger *zap.Logger) *fsm.FSM {
	return fsm.NewFSM(
		GateNormal,
		fsm.Events{
			{Name: gateEventOpen, Src: []string{GateNormal}, Dst: GateCounterDelay},
			{Name: gateEventClose, Src: []string{GateCounterDelay}, Dst: GateNormal},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				logger.Debug("ゲート状態遷移", zap.String("from", e.Src), zap.String("to", e.Dst))
			},
		},
	)
}

// Active はゲートが CounterDelay 状態かどうかを返します。
func (g *SchedulerGate) Active() bool {
	return g.machine.Is(GateCounterDelay)
}

func (g *SchedulerGate) State() string { return g.machine.Current() }
func (g *SchedulerGate) OpenTime() float64 { return g.openTime }
func (g *SchedulerGate) EndTime() float64 { return g.endTime }
func (g *SchedulerGate) Pending() int { return len(g.deferred) }

// Open は Normal → CounterDelay に遷移し、endTime = now + delay を設定します。
// 既に開いている場合はウィンドウを延長するだけです。
func (g *SchedulerGate) Open(now float64) {
	g.openTime = now
	g.endTime = now + g.delay
	if g.Active() {
		g.logger.Debug("ゲートは既に開いています。終了時刻を延長します", zap.Float64("endTime", g.endTime))
		return
	}
	if err := g.machine.Event(context.Background(), gateEventOpen); err != nil {
		g.logger.Error("ゲートを開けませんでした", zap.Error(err))
	}
}

// Capture はゲート中に開始されようとした敵の行動を捕捉します。
// 捕捉した場合は true を返し、戦闘マネージャはその行動を終了して次のターンへ進みます。
func (g *SchedulerGate) Capture(d core.DeferredAction) bool {
	if !g.Active() || d.Subject == nil || !d.Subject.IsEnemy() {
		return false
	}
	g.deferred = append(g.deferred, d)
	g.logger.Debug("敵の行動を遅延させました",
		zap.String("subject", d.Subject.Name()),
		zap.Int("pending", len(g.deferred)))
	return true
}

// Update は now >= endTime でゲートを閉じます。
// 閉じるときはまず戦闘終了判定を行い、戦闘が続く場合だけ遅延行動を復元します。
func (g *SchedulerGate) Update(now float64, engine core.TurnEngine) GateResult {
	if !g.Active() || now < g.endTime {
		return GateResult{}
	}
	if err := g.machine.Event(context.Background(), gateEventClose); err != nil {
		g.logger.Error("ゲートを閉じられませんでした", zap.Error(err))
		return GateResult{}
	}

	engine.SetPhase(core.PhaseTurn)
	if engine.CheckBattleEnd() {
		g.logger.Debug("反撃ウィンドウ中に戦闘が終了しました", zap.Int("dropped", len(g.deferred)))
		g.deferred = nil
		return GateResult{Closed: true, BattleEnded: true}
	}

	restored := 0
	for len(g.deferred) > 0 {
		next := g.deferred[0]
		g.deferred = g.deferred[1:]
		engine.RestoreAction(next)
		restored++
		if g.drain == core.DrainOne {
			break
		}
	}
	g.logger.Debug("ゲートを閉じました", zap.Int("restored", restored), zap.Int("pending", len(g.deferred)))
	return GateResult{Closed: true, Restored: restored}
}

// Reset はゲートを閉じ、遅延行動をすべて破棄します。
func (g *SchedulerGate) Reset() {
	g.machine.SetState(GateNormal)
	g.openTime = 0
	g.endTime = 0
	g.deferred = nil
}
