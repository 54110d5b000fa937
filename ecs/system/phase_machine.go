package system

import (
	"context"

	"github.com/looplab/fsm"
	"go.uber.org/zap"

	"parry-ebiten/core"
)

var allPhases = []core.Phase{
	core.PhaseTurn,
	core.PhaseAction,
	core.PhaseParryWait,
	core.PhaseCounterDelay,
	core.PhaseTimingAttack,
	core.PhaseBattleEnd,
}

// phaseTransitions は各フェーズへ遷移できる元のフェーズです。戦闘終了からはどこへも遷移できません。
var phaseTransitions = map[core.Phase][]core.Phase{
	core.PhaseTurn:         {core.PhaseAction, core.PhaseCounterDelay, core.PhaseTimingAttack},
	core.PhaseAction:       {core.PhaseTurn, core.PhaseParryWait, core.PhaseTimingAttack},
	core.PhaseParryWait:    {core.PhaseAction},
	core.PhaseCounterDelay: {core.PhaseParryWait},
	core.PhaseTimingAttack: {core.PhaseAction},
	core.PhaseBattleEnd:    {core.PhaseTurn, core.PhaseAction, core.PhaseParryWait, core.PhaseCounterDelay, core.PhaseTimingAttack},
}

func phaseEvent(p core.Phase) string { return "to_" + string(p) }

// PhaseMachine は戦闘マネージャのフェーズを管理します。
type PhaseMachine struct {
	machine *fsm.FSM
	logger  *zap.Logger
}

// NewPhaseMachine は turn フェーズから始まる PhaseMachine を生成します。
func NewPhaseMachine(logger *zap.Logger) *PhaseMachine {
	if logger == nil {
		logger = zap.NewNop()
	}
	events := make(fsm.Events, 0, len(allPhases))
	for _, dst := range allPhases {
		src := make([]string, 0, len(phaseTransitions[dst]))
		for _, p := range phaseTransitions[dst] {
			src = append(src, string(p))
		}
		events = append(events, fsm.EventDesc{Name: phaseEvent(dst), Src: src, Dst: string(dst)})
	}
	return &PhaseMachine{
		machine: fsm.NewFSM(string(core.PhaseTurn), events, fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				logger.Debug("フェーズ遷移", zap.String("from", e.Src), zap.String("to", e.Dst))
			},
		}),
		logger: logger,
	}
}

func (m *PhaseMachine) Current() core.Phase { return core.Phase(m.machine.Current()) }
func (m *PhaseMachine) Is(p core.Phase) bool { return m.machine.Is(string(p)) }

// Set は p へ遷移します。定義されていない遷移は警告を出したうえで強制的に設定します。
func (m *PhaseMachine) Set(p core.Phase) {
	if m.Is(p) {
		return
	}
	if err := m.machine.Event(context.Background(), phaseEvent(p)); err != nil {
		m.logger.Warn("想定外のフェーズ遷移です",
			zap.String("from", m.machine.Current()),
			zap.String("to", string(p)),
			zap.Error(err))
		m.machine.SetState(string(p))
	}
}

// Reset は turn フェーズに戻します。
func (m *PhaseMachine) Reset() {
	m.machine.SetState(string(core.PhaseTurn))
}
