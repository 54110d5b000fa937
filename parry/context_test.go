package parry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"parry-ebiten/core"
)

type contextFixture struct {
	ctx    *CombatDefenseContext
	engine *fakeEngine
	input  *scriptedInput
	obs    *recordingObserver
	hero   *fakeBattler
	slime  *fakeBattler
}

func newContextFixture(cfg Config, pressAt ...int) *contextFixture {
	f := &contextFixture{
		engine: &fakeEngine{counterDmg: 12},
		input:  &scriptedInput{pressAt: map[int]bool{}},
		obs:    &recordingObserver{},
		hero:   newActor("Hero", 100),
		slime:  newEnemy("Slime", 30),
	}
	for _, p := range pressAt {
		f.input.pressAt[p] = true
	}
	f.ctx = NewCombatDefenseContext(cfg, f.engine, f.input, f.obs, zap.NewNop())
	return f
}

func (f *contextFixture) tickTo(now float64) {
	for f.ctx.Now() < now {
		f.ctx.Tick(1)
	}
}

func TestContextPerfectParryFlow(t *testing.T) {
	f := newContextFixture(DefaultConfig(), 40)
	attack := newAttack(f.slime, 20)

	require.True(t, f.ctx.InterceptApply(attack, f.hero))
	assert.Equal(t, core.PhaseParryWait, f.engine.phase)
	assert.True(t, f.ctx.Holding())

	f.tickTo(45)
	assert.False(t, f.ctx.Session().Active())
	assert.True(t, f.ctx.Gate().Active())
	assert.Equal(t, core.PhaseCounterDelay, f.engine.phase)
	assert.Equal(t, 100, f.hero.hp, "PerfectParry で倍率 0 なら適用自体を省略する")

	// ゲート中の敵の行動は捕捉される
	bat := newEnemy("Bat", 10)
	assert.True(t, f.ctx.BeforeStartAction(bat, newAttack(bat, 5), []core.Battler{f.hero}))
	assert.False(t, f.ctx.BeforeStartAction(f.hero, newAttack(f.hero, 5), []core.Battler{f.slime}))

	f.tickTo(56)
	assert.True(t, f.ctx.CounterPending())
	f.tickTo(57)
	assert.False(t, f.ctx.CounterPending())
	assert.Equal(t, 18, f.slime.hp)

	f.tickTo(74)
	assert.True(t, f.ctx.Holding())
	f.tickTo(75)
	assert.False(t, f.ctx.Holding())

	assert.Equal(t, []string{
		"phase parryWait",
		"phase counterDelay",
		"apply Hero->Slime x1.00",
		"phase turn",
		"checkBattleEnd",
		"restore Bat",
	}, f.engine.calls)
	assert.Equal(t, []string{
		"start Hero",
		"input",
		"resolved perfectParry",
		"gateOpened 75",
		"counter 12",
		"gateClosed false",
	}, f.obs.events)
}

func TestContextAppliesScaledDamage(t *testing.T) {
	tests := []struct {
		name    string
		pressAt []int
		want    string
		hp      int
	}{
		{"NormalFail", []int{5}, "apply Slime->Hero x1.00", 80},
		{"CriticalFail", []int{20}, "apply Slime->Hero x1.25", 75},
		{"GoodParry", []int{30}, "apply Slime->Hero x0.75", 85},
		{"NoInput", nil, "apply Slime->Hero x1.00", 80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newContextFixture(DefaultConfig(), tt.pressAt...)
			require.True(t, f.ctx.InterceptApply(newAttack(f.slime, 20), f.hero))
			f.tickTo(45)

			assert.Equal(t, []string{"phase parryWait", tt.want, "phase action"}, f.engine.calls)
			assert.Equal(t, tt.hp, f.hero.hp)
			assert.False(t, f.ctx.Holding())
			assert.False(t, f.ctx.Gate().Active())
		})
	}
}

func TestContextPerfectParryWithNonZeroMultiplierStillApplies(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Multipliers.PerfectParry = 0.5
	f := newContextFixture(cfg, 40)
	require.True(t, f.ctx.InterceptApply(newAttack(f.slime, 20), f.hero))
	f.tickTo(45)

	assert.Equal(t, 90, f.hero.hp)
	assert.True(t, f.ctx.Gate().Active())
}

func TestContextEligibility(t *testing.T) {
	hero, slime := newActor("Hero", 100), newEnemy("Slime", 30)
	cant := newActor("Guard", 100)
	cant.noParry = true

	heal := newAttack(slime, 5)
	heal.hpDmg = false
	counter := newAttack(slime, 5)
	counter.tags = core.ActionTags{Counter: true}
	unparryable := newAttack(slime, 5)
	unparryable.tags = core.ActionTags{Unparryable: true}

	tests := []struct {
		name   string
		action core.Action
		target core.Battler
		want   bool
	}{
		{"敵から味方への攻撃", newAttack(slime, 5), hero, true},
		{"味方から敵への攻撃", newAttack(hero, 5), slime, false},
		{"HP ダメージではない", heal, hero, false},
		{"反撃", counter, hero, false},
		{"パリィできない対象", newAttack(slime, 5), cant, false},
		{"主体が無い", newAttack(nil, 5), hero, false},
		{"対象が無い", newAttack(slime, 5), nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newContextFixture(DefaultConfig())
			assert.Equal(t, tt.want, Eligible(tt.action, tt.target))
			assert.Equal(t, tt.want, f.ctx.InterceptApply(tt.action, tt.target))
		})
	}

	f := newContextFixture(DefaultConfig())
	assert.False(t, f.ctx.InterceptApply(unparryable, hero), "パリィ不可の行動はそのまま適用させる")
	assert.False(t, f.ctx.Session().Active())
}

func TestContextRejectsSecondSessionWhileActive(t *testing.T) {
	f := newContextFixture(DefaultConfig())
	require.True(t, f.ctx.InterceptApply(newAttack(f.slime, 20), f.hero))
	assert.False(t, f.ctx.InterceptApply(newAttack(newEnemy("Bat", 10), 5), newActor("Mage", 50)))
	assert.Equal(t, "Hero", f.ctx.Session().Target().Name())
}

func TestContextCounterKillEndsBattleAtGateClose(t *testing.T) {
	f := newContextFixture(DefaultConfig(), 40)
	f.engine.counterDmg = 99
	f.engine.battleEnded = true
	require.True(t, f.ctx.InterceptApply(newAttack(f.slime, 20), f.hero))
	f.tickTo(45)

	bat := newEnemy("Bat", 10)
	require.True(t, f.ctx.BeforeStartAction(bat, newAttack(bat, 5), nil))

	f.tickTo(57)
	assert.True(t, f.slime.collapse)
	assert.True(t, f.slime.hidden)
	assert.NotContains(t, f.engine.calls, "checkBattleEnd", "反撃の時点では戦闘終了判定をしない")

	f.tickTo(75)
	assert.Contains(t, f.engine.calls, "checkBattleEnd")
	assert.Empty(t, f.engine.restored)
	assert.Equal(t, "gateClosed true", f.obs.events[len(f.obs.events)-1])
}

func TestContextDrainAllReplaysEveryDeferredAction(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Drain = core.DrainAll
	f := newContextFixture(cfg, 40)
	require.True(t, f.ctx.InterceptApply(newAttack(f.slime, 20), f.hero))
	f.tickTo(45)

	for _, name := range []string{"Bat", "Rat"} {
		b := newEnemy(name, 10)
		require.True(t, f.ctx.BeforeStartAction(b, newAttack(b, 5), nil))
	}
	f.tickTo(75)
	require.Len(t, f.engine.restored, 2)
	assert.Equal(t, "Bat", f.engine.restored[0].Subject.Name())
	assert.Equal(t, "Rat", f.engine.restored[1].Subject.Name())
}

func TestContextForceResolve(t *testing.T) {
	f := newContextFixture(DefaultConfig())
	_, ok := f.ctx.ForceResolve()
	assert.False(t, ok)

	require.True(t, f.ctx.InterceptApply(newAttack(f.slime, 20), f.hero))
	f.tickTo(10)
	out, ok := f.ctx.ForceResolve()
	require.True(t, ok)
	assert.Equal(t, core.TierNoInput, out.Tier)
	assert.Equal(t, 80, f.hero.hp)
}

func TestContextResetDropsEverything(t *testing.T) {
	f := newContextFixture(DefaultConfig(), 40)
	require.True(t, f.ctx.InterceptApply(newAttack(f.slime, 20), f.hero))
	f.tickTo(45)
	bat := newEnemy("Bat", 10)
	require.True(t, f.ctx.BeforeStartAction(bat, newAttack(bat, 5), nil))

	f.ctx.Reset()
	assert.False(t, f.ctx.Holding())
	assert.False(t, f.ctx.CounterPending())
	assert.Zero(t, f.ctx.Gate().Pending())
	assert.Zero(t, f.ctx.Now())
	assert.False(t, f.ctx.Session().InputReceived())

	// リセット後のティックでは何も起きない
	calls := len(f.engine.calls)
	for i := 0; i < 100; i++ {
		f.ctx.Tick(1)
	}
	assert.Len(t, f.engine.calls, calls)
	assert.Equal(t, 30, f.slime.hp)

	// 新しいセッションはきれいな状態から始まる
	require.True(t, f.ctx.InterceptApply(newAttack(f.slime, 20), f.hero))
	assert.False(t, f.ctx.Session().InputReceived())
	assert.Equal(t, f.ctx.Now(), f.ctx.Session().View().StartTime)
}

func TestContextResetMidSessionDiscardsPendingApply(t *testing.T) {
	f := newContextFixture(DefaultConfig())
	require.True(t, f.ctx.InterceptApply(newAttack(f.slime, 20), f.hero))
	f.tickTo(20)
	f.ctx.Reset()
	f.tickTo(100)
	assert.Equal(t, 100, f.hero.hp)
	assert.Equal(t, []string{"phase parryWait"}, f.engine.calls)
}
