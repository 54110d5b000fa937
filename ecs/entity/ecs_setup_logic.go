package entity

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
	"github.com/yohamta/donburi/query"
	"go.uber.org/zap"

	"parry-ebiten/core"
	"parry-ebiten/ecs/component"
	"parry-ebiten/parry"
)

// BattlerQuery は戦闘参加者すべてに一致します。
var BattlerQuery = query.NewQuery(filter.Contains(
	component.SettingsComponent,
	component.StatsComponent,
	component.ConditionComponent,
))

// InitializeBattleWorld は戦闘ワールドのECSエンティティを初期化します。
func InitializeBattleWorld(world donburi.World, roster []core.BattlerData, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	EnsureActionQueueEntity(world)
	CreateBattlerEntities(world, roster)
	logger.Debug("戦闘参加者のエンティティを生成しました", zap.Int("count", len(roster)))
}

// CreateBattlerEntities はロスターから戦闘参加者のエンティティを生成します。
// プレイヤー側の参加者には ParryableTag を付けます。
func CreateBattlerEntities(world donburi.World, roster []core.BattlerData) []*donburi.Entry {
	drawIndex := map[core.TeamID]int{}
	entries := make([]*donburi.Entry, 0, len(roster))
	for _, d := range roster {
		components := []donburi.IComponentType{
			component.SettingsComponent,
			component.StatsComponent,
			component.ConditionComponent,
			component.SkillComponent,
		}
		if d.Team == core.Team1 {
			components = append(components, component.ParryableTag)
		}
		entry := world.Entry(world.Create(components...))

		component.SettingsComponent.SetValue(entry, component.Settings{
			ID:        d.ID,
			Name:      d.Name,
			Team:      d.Team,
			IsLeader:  d.IsLeader,
			DrawIndex: drawIndex[d.Team],
		})
		drawIndex[d.Team]++
		component.StatsComponent.SetValue(entry, component.Stats{
			HP:      d.HP,
			MaxHP:   d.HP,
			Attack:  d.Attack,
			Defense: d.Defense,
			Agility: d.Agility,
		})
		component.ConditionComponent.SetValue(entry, component.Condition{})
		component.SkillComponent.SetValue(entry, component.Skill{
			Name:  d.SkillName,
			Power: d.SkillPower,
			Note:  d.SkillNote,
			Tags:  parry.ParseTags(d.SkillNote),
		})
		entries = append(entries, entry)
	}
	return entries
}
