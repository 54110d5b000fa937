package system

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
	"go.uber.org/zap/zaptest"

	"parry-ebiten/core"
	"parry-ebiten/ecs/component"
	"parry-ebiten/ecs/entity"
)

func newTestWorld(t *testing.T, roster ...core.BattlerData) (donburi.World, []*donburi.Entry) {
	t.Helper()
	world := donburi.NewWorld()
	entity.EnsureActionQueueEntity(world)
	return world, entity.CreateBattlerEntities(world, roster)
}

func TestBattlerIdentity(t *testing.T) {
	_, entries := newTestWorld(t,
		battler("hero", "Hero", core.Team1, 100, 30, 10, 5, ""),
		battler("slime", "Slime", core.Team2, 50, 20, 4, 10, ""),
	)
	hero := BattlerOf(entries[0])
	var asCore core.Battler = hero

	assert.Equal(t, asCore, core.Battler(BattlerOf(entries[0])))
	assert.NotEqual(t, asCore, core.Battler(BattlerOf(entries[1])))
	assert.True(t, hero.IsActor())
	assert.True(t, hero.CanParry())
	assert.False(t, BattlerOf(entries[1]).CanParry(), "敵側はパリィしない")

	component.ConditionComponent.Get(entries[0]).Hidden = true
	assert.False(t, hero.CanParry())
}

func TestCreateBattlerEntitiesParsesSkillTags(t *testing.T) {
	_, entries := newTestWorld(t,
		battler("wolf", "Wolf", core.Team2, 70, 22, 6, 14, "<parrySpeed:150>"),
		battler("golem", "Golem", core.Team2, 110, 28, 14, 4, "<noParry>"),
	)
	assert.Equal(t, 150, component.SkillComponent.Get(entries[0]).Tags.SpeedPercent)
	assert.True(t, component.SkillComponent.Get(entries[1]).Tags.Unparryable)
	assert.Equal(t, 1, component.SettingsComponent.Get(entries[1]).DrawIndex)
}

func TestTurnOrderByAgility(t *testing.T) {
	world, entries := newTestWorld(t,
		battler("a", "A", core.Team1, 10, 1, 1, 5, ""),
		battler("b", "B", core.Team2, 10, 1, 1, 9, ""),
		battler("c", "C", core.Team2, 10, 1, 1, 5, ""),
		battler("d", "D", core.Team1, 0, 1, 1, 99, ""),
	)
	assert.Equal(t, 3, BuildTurnOrderSystem(world))

	var order []string
	for i := 0; i < 3; i++ {
		order = append(order, BattlerOf(PopNextActorSystem(world)).Name())
	}
	assert.Equal(t, []string{"B", "A", "C"}, order, "同じ素早さはロスター順、HP0は除外")

	// 空になったら次のラウンドを組み直す
	assert.Equal(t, "B", BattlerOf(PeekNextActorSystem(world)).Name())
	assert.Equal(t, 2, entity.GetActionQueueComponent(world).Round)

	// 途中で倒れた参加者は飛ばす
	component.StatsComponent.Get(entries[1]).HP = 0
	assert.Equal(t, "A", BattlerOf(PopNextActorSystem(world)).Name())
}

func TestCheckGameEndSystem(t *testing.T) {
	world, entries := newTestWorld(t,
		battler("hero", "Hero", core.Team1, 100, 30, 10, 5, ""),
		battler("slime", "Slime", core.Team2, 50, 20, 4, 10, ""),
	)
	assert.False(t, CheckGameEndSystem(world).IsGameOver)

	component.ConditionComponent.Get(entries[1]).Hidden = true
	result := CheckGameEndSystem(world)
	assert.True(t, result.IsGameOver)
	assert.Equal(t, core.Team1, result.Winner)

	component.StatsComponent.Get(entries[0]).HP = 0
	result = CheckGameEndSystem(world)
	assert.Equal(t, core.Team2, result.Winner, "同時全滅はプレイヤー側の負け")
}

func TestDamageCalculator(t *testing.T) {
	_, entries := newTestWorld(t,
		battler("hero", "Hero", core.Team1, 100, 30, 10, 5, ""),
		battler("slime", "Slime", core.Team2, 50, 20, 4, 10, ""),
		battler("golem", "Golem", core.Team2, 50, 1, 99, 10, ""),
	)
	dc := NewDamageCalculator(nil)

	tests := []struct {
		name       string
		attacker   *donburi.Entry
		target     *donburi.Entry
		power      int
		bonus      int
		multiplier float64
		wantBase   int
		wantDamage int
	}{
		{"通常", entries[0], entries[1], 100, 0, 1.0, 28, 28},
		{"威力", entries[0], entries[1], 150, 0, 1.0, 43, 43},
		{"ボーナス", entries[0], entries[1], 100, 10, 1.0, 30, 30},
		{"倍率は切り捨て", entries[1], entries[0], 100, 0, 0.75, 15, 11},
		{"PerfectParry", entries[1], entries[0], 100, 0, 0.0, 15, 0},
		{"最低1", entries[2], entries[2], 100, 0, 1.0, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, damage := dc.CalculateDamage(tt.attacker, tt.target, tt.power, tt.bonus, tt.multiplier)
			assert.Equal(t, tt.wantBase, base)
			assert.Equal(t, tt.wantDamage, damage)
		})
	}
}

func TestTargetSelector(t *testing.T) {
	world, entries := newTestWorld(t,
		battler("hero", "Hero", core.Team1, 100, 30, 10, 5, ""),
		battler("slime", "Slime", core.Team2, 50, 20, 4, 10, ""),
		battler("bat", "Bat", core.Team2, 20, 20, 4, 10, ""),
	)
	ts := NewTargetSelector(world, rand.New(rand.NewSource(1)))

	assert.Len(t, ts.GetTargetableEnemies(entries[0]), 2)
	assert.Equal(t, "Bat", BattlerOf(ts.SelectTarget(entries[0])).Name(), "プレイヤー側は弱った敵を狙う")
	assert.Equal(t, "Hero", BattlerOf(ts.SelectTarget(entries[1])).Name())

	component.ConditionComponent.Get(entries[2]).Hidden = true
	assert.Equal(t, "Slime", BattlerOf(ts.SelectTarget(entries[0])).Name())

	component.StatsComponent.Get(entries[0]).HP = 0
	assert.Nil(t, ts.SelectTarget(entries[1]))
}

func TestPhaseMachine(t *testing.T) {
	m := NewPhaseMachine(zaptest.NewLogger(t))
	require.True(t, m.Is(core.PhaseTurn))

	for _, p := range []core.Phase{
		core.PhaseAction,
		core.PhaseParryWait,
		core.PhaseCounterDelay,
		core.PhaseTurn,
		core.PhaseAction,
		core.PhaseTimingAttack,
		core.PhaseAction,
		core.PhaseBattleEnd,
	} {
		m.Set(p)
		assert.Equal(t, p, m.Current())
	}

	// 定義されていない遷移も強制的に反映する
	m.Set(core.PhaseParryWait)
	assert.Equal(t, core.PhaseParryWait, m.Current())

	m.Reset()
	assert.Equal(t, core.PhaseTurn, m.Current())
}
