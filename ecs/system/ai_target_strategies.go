package system

import (
	"math/rand"
	"sort"

	"github.com/yohamta/donburi"

	"parry-ebiten/core"
	"parry-ebiten/ecs/component"
	"parry-ebiten/ecs/entity"
)

// TargetStrategy は候補の中から攻撃対象を1体選びます。候補は空ではありません。
type TargetStrategy func(candidates []*donburi.Entry, r *rand.Rand) *donburi.Entry

// RandomTargetStrategy は候補から一様に選びます。
func RandomTargetStrategy(candidates []*donburi.Entry, r *rand.Rand) *donburi.Entry {
	return candidates[r.Intn(len(candidates))]
}

// WeakestTargetStrategy は残りHPが最も少ない候補を選びます。同じ場合は先頭を優先します。
func WeakestTargetStrategy(candidates []*donburi.Entry, _ *rand.Rand) *donburi.Entry {
	sorted := append([]*donburi.Entry(nil), candidates...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return component.StatsComponent.Get(sorted[i]).HP < component.StatsComponent.Get(sorted[j]).HP
	})
	return sorted[0]
}

// TargetSelector はチームごとの戦略でターゲットを決定します。
type TargetSelector struct {
	world      donburi.World
	rand       *rand.Rand
	strategies map[core.TeamID]TargetStrategy
}

// NewTargetSelector は新しい TargetSelector を生成します。
// プレイヤー側は弱った敵を狙い、敵側はランダムに狙います。
func NewTargetSelector(world donburi.World, r *rand.Rand) *TargetSelector {
	return &TargetSelector{
		world: world,
		rand:  r,
		strategies: map[core.TeamID]TargetStrategy{
			core.Team1: WeakestTargetStrategy,
			core.Team2: RandomTargetStrategy,
		},
	}
}

// SetStrategy はチームの戦略を差し替えます。
func (ts *TargetSelector) SetStrategy(team core.TeamID, strategy TargetStrategy) {
	ts.strategies[team] = strategy
}

// GetTargetableEnemies は actingEntry から見て、まだ戦える相手チームの参加者を返します。
func (ts *TargetSelector) GetTargetableEnemies(actingEntry *donburi.Entry) []*donburi.Entry {
	team := component.SettingsComponent.Get(actingEntry).Team
	var candidates []*donburi.Entry
	entity.BattlerQuery.Each(ts.world, func(entry *donburi.Entry) {
		if component.SettingsComponent.Get(entry).Team != team && BattlerOf(entry).Alive() {
			candidates = append(candidates, entry)
		}
	})
	return candidates
}

// SelectTarget は対象を選びます。候補がいない場合は nil を返します。
func (ts *TargetSelector) SelectTarget(actingEntry *donburi.Entry) *donburi.Entry {
	candidates := ts.GetTargetableEnemies(actingEntry)
	if len(candidates) == 0 {
		return nil
	}
	strategy, ok := ts.strategies[component.SettingsComponent.Get(actingEntry).Team]
	if !ok {
		strategy = RandomTargetStrategy
	}
	return strategy(candidates, ts.rand)
}
