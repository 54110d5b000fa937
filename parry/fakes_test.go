package parry

import (
	"fmt"

	"parry-ebiten/core"
)

type fakeBattler struct {
	name     string
	enemy    bool
	hp       int
	noParry  bool
	hidden   bool
	collapse bool
}

func newActor(name string, hp int) *fakeBattler { return &fakeBattler{name: name, hp: hp} }
func newEnemy(name string, hp int) *fakeBattler { return &fakeBattler{name: name, enemy: true, hp: hp} }

func (b *fakeBattler) Name() string { return b.name }
func (b *fakeBattler) IsEnemy() bool { return b.enemy }
func (b *fakeBattler) IsActor() bool { return !b.enemy }
func (b *fakeBattler) IsDead() bool { return b.hp <= 0 }
func (b *fakeBattler) CanParry() bool { return !b.noParry && !b.IsDead() }

type fakeAction struct {
	subject core.Battler
	damage  int
	hpDmg   bool
	tags    core.ActionTags
}

func newAttack(subject core.Battler, damage int) *fakeAction {
	return &fakeAction{subject: subject, damage: damage, hpDmg: true}
}

func (a *fakeAction) Subject() core.Battler { return a.subject }
func (a *fakeAction) IsHPDamaging() bool { return a.hpDmg }
func (a *fakeAction) Tags() core.ActionTags { return a.tags }

// fakeEngine は呼び出し順を calls に記録します。
type fakeEngine struct {
	calls       []string
	phase       core.Phase
	battleEnded bool
	counterDmg  int
	counterTags core.ActionTags
	restored    []core.DeferredAction
}

func (e *fakeEngine) ApplyAction(action core.Action, target core.Battler, multiplier float64) core.ActionResult {
	a := action.(*fakeAction)
	dmg := int(float64(a.damage) * multiplier)
	if b, ok := target.(*fakeBattler); ok {
		b.hp -= dmg
	}
	e.calls = append(e.calls, fmt.Sprintf("apply %s->%s x%.2f", action.Subject().Name(), target.Name(), multiplier))
	return core.ActionResult{Subject: action.Subject(), Target: target, Damage: dmg, Multiplier: multiplier}
}

func (e *fakeEngine) NewAttackAction(subject core.Battler, tags core.ActionTags) core.Action {
	e.counterTags = tags
	return &fakeAction{subject: subject, damage: e.counterDmg, hpDmg: true, tags: tags}
}

func (e *fakeEngine) PerformCollapse(b core.Battler) {
	b.(*fakeBattler).collapse = true
	e.calls = append(e.calls, "collapse "+b.Name())
}

func (e *fakeEngine) HideBattler(b core.Battler) {
	b.(*fakeBattler).hidden = true
	e.calls = append(e.calls, "hide "+b.Name())
}

func (e *fakeEngine) CheckBattleEnd() bool {
	e.calls = append(e.calls, "checkBattleEnd")
	return e.battleEnded
}

func (e *fakeEngine) SetPhase(p core.Phase) {
	e.phase = p
	e.calls = append(e.calls, "phase "+string(p))
}

func (e *fakeEngine) RestoreAction(d core.DeferredAction) {
	e.restored = append(e.restored, d)
	e.calls = append(e.calls, "restore "+d.Subject.Name())
}

// scriptedInput は指定したティックでだけ押下を返します。
type scriptedInput struct {
	tick    int
	pressAt map[int]bool
	asked   []string
}

func (in *scriptedInput) WasJustPressed(key string) bool {
	in.tick++
	in.asked = append(in.asked, key)
	return in.pressAt[in.tick]
}

type manualClock struct{ now float64 }

func (c *manualClock) Now() float64 { return c.now }

// recordingObserver は通知を文字列として記録します。
type recordingObserver struct {
	NopObserver
	events   []string
	outcomes []core.Outcome
}

func (o *recordingObserver) OnSessionStart(v SessionView) {
	o.events = append(o.events, "start "+v.Target.Name())
}

func (o *recordingObserver) OnInputRecorded(SessionView) {
	o.events = append(o.events, "input")
}

func (o *recordingObserver) OnSessionResolved(out core.Outcome) {
	o.outcomes = append(o.outcomes, out)
	o.events = append(o.events, "resolved "+out.Tier.String())
}

func (o *recordingObserver) OnCounterAttack(r core.ActionResult) {
	o.events = append(o.events, fmt.Sprintf("counter %d", r.Damage))
}

func (o *recordingObserver) OnGateOpened(end float64) {
	o.events = append(o.events, fmt.Sprintf("gateOpened %.0f", end))
}

func (o *recordingObserver) OnGateClosed(ended bool) {
	o.events = append(o.events, fmt.Sprintf("gateClosed %v", ended))
}
