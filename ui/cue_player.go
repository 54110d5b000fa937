package ui

import (
	"github.com/hajimehoshi/ebiten/v2/audio"
	"go.uber.org/zap"

	"parry-ebiten/core"
	"parry-ebiten/parry"
)

// Cue はパリィ処理に合わせて鳴らす効果音の種類です。
type Cue string

const (
	CueSessionStart Cue = "bell"
	CueInput        Cue = "cursor"
	CueNormalFail   Cue = "buzzer2"
	CueCriticalFail Cue = "buzzer1"
	CueGoodParry    Cue = "absorb"
	CuePerfectParry Cue = "recovery"
	CueNoInput      Cue = "miss"
	CueCounter      Cue = "slash"
)

var cueTones = map[Cue][]tone{
	CueSessionStart: {{Freq: 1320, Seconds: 0.08}, {Freq: 1760, Seconds: 0.2}},
	CueInput:        {{Freq: 1200, Seconds: 0.05}},
	CueNormalFail:   {{Freq: 220, Seconds: 0.18, Square: true}},
	CueCriticalFail: {{Freq: 140, Seconds: 0.3, Square: true}},
	CueGoodParry:    {{Freq: 660, EndFreq: 990, Seconds: 0.2}},
	CuePerfectParry: {{Freq: 784, Seconds: 0.08}, {Freq: 988, Seconds: 0.08}, {Freq: 1319, Seconds: 0.25}},
	CueNoInput:      {{Freq: 330, EndFreq: 180, Seconds: 0.2}},
	CueCounter:      {{Freq: 900, EndFreq: 200, Seconds: 0.12, Square: true}},
}

var tierCues = map[core.Tier]Cue{
	core.TierNormalFail:   CueNormalFail,
	core.TierCriticalFail: CueCriticalFail,
	core.TierGoodParry:    CueGoodParry,
	core.TierPerfectParry: CuePerfectParry,
	core.TierNoInput:      CueNoInput,
}

// CuePlayer はパリィの進行に合わせて効果音を鳴らす parry.Observer です。
// audio.Context が無い環境では鳴らした記録だけを残します。
type CuePlayer struct {
	parry.NopObserver
	players map[Cue]*audio.Player
	played  []Cue
	logger  *zap.Logger
}

var _ parry.Observer = (*CuePlayer)(nil)

// NewCuePlayer は効果音をあらかじめ合成して CuePlayer を作ります。ctx は nil でも構いません。
func NewCuePlayer(ctx *audio.Context, logger *zap.Logger) *CuePlayer {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &CuePlayer{players: map[Cue]*audio.Player{}, logger: logger}
	if ctx == nil {
		return p
	}
	for cue, tones := range cueTones {
		p.players[cue] = ctx.NewPlayerFromBytes(synthesize(ctx.SampleRate(), 0.3, tones...))
	}
	return p
}

// Play は cue を頭から再生します。
func (p *CuePlayer) Play(cue Cue) {
	p.played = append(p.played, cue)
	player, ok := p.players[cue]
	if !ok {
		return
	}
	if err := player.Rewind(); err != nil {
		p.logger.Warn("効果音を巻き戻せませんでした", zap.String("cue", string(cue)), zap.Error(err))
		return
	}
	player.Play()
}

// Played はこれまでに鳴らした効果音を返します。
func (p *CuePlayer) Played() []Cue {
	return append([]Cue(nil), p.played...)
}

func (p *CuePlayer) OnSessionStart(parry.SessionView) { p.Play(CueSessionStart) }
func (p *CuePlayer) OnInputRecorded(parry.SessionView) { p.Play(CueInput) }
func (p *CuePlayer) OnCounterAttack(core.ActionResult) { p.Play(CueCounter) }

func (p *CuePlayer) OnSessionResolved(outcome core.Outcome) {
	if cue, ok := tierCues[outcome.Tier]; ok {
		p.Play(cue)
	}
}
