package entity

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
	"github.com/yohamta/donburi/query"

	"parry-ebiten/ecs/component"
)

var actionQueueQuery = query.NewQuery(filter.And(
	filter.Contains(component.ActionQueueComponentType),
	filter.Contains(component.WorldStateTag),
))

// GetActionQueueComponent はワールド状態エンティティから ActionQueueComponentData を取得します。
// InitializeBattleWorld で作成されていない場合は panic します。
func GetActionQueueComponent(world donburi.World) *component.ActionQueueComponentData {
	entry, ok := actionQueueQuery.First(world)
	if !ok {
		panic("ActionQueueComponent がワールドに見つかりません。InitializeBattleWorld で初期化する必要があります。")
	}
	return component.ActionQueueComponentType.Get(entry)
}

// EnsureActionQueueEntity は ActionQueueComponentType と WorldStateTag を持つエンティティが存在することを保証します。
func EnsureActionQueueEntity(world donburi.World) *donburi.Entry {
	if entry, ok := actionQueueQuery.First(world); ok {
		return entry
	}
	newEntry := world.Entry(world.Create(component.ActionQueueComponentType, component.WorldStateTag))
	component.ActionQueueComponentType.SetValue(newEntry, component.ActionQueueComponentData{
		Queue: make([]*donburi.Entry, 0),
	})
	return newEntry
}
