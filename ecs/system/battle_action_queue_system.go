package system

import (
	"sort"

	"github.com/yohamta/donburi"

	"parry-ebiten/ecs/component"
	"parry-ebiten/ecs/entity"
)

// BuildTurnOrderSystem は戦える参加者を素早さの高い順に並べ、新しいラウンドの行動順を作ります。
// 素早さが同じ場合はロスターの順番を保ちます。
func BuildTurnOrderSystem(world donburi.World) int {
	queueComp := entity.GetActionQueueComponent(world)
	queueComp.Queue = queueComp.Queue[:0]
	entity.BattlerQuery.Each(world, func(entry *donburi.Entry) {
		if BattlerOf(entry).Alive() {
			queueComp.Queue = append(queueComp.Queue, entry)
		}
	})
	sort.SliceStable(queueComp.Queue, func(i, j int) bool {
		agiI := component.StatsComponent.Get(queueComp.Queue[i]).Agility
		agiJ := component.StatsComponent.Get(queueComp.Queue[j]).Agility
		return agiI > agiJ
	})
	queueComp.Round++
	return len(queueComp.Queue)
}

// PeekNextActorSystem は次に行動する、まだ戦える参加者を取り出さずに返します。
// 行動順が空になった場合は次のラウンドを組み直します。誰も戦えない場合は nil を返します。
func PeekNextActorSystem(world donburi.World) *donburi.Entry {
	queueComp := entity.GetActionQueueComponent(world)
	for attempt := 0; attempt < 2; attempt++ {
		for len(queueComp.Queue) > 0 {
			next := queueComp.Queue[0]
			if next.Valid() && BattlerOf(next).Alive() {
				return next
			}
			queueComp.Queue = queueComp.Queue[1:]
		}
		if BuildTurnOrderSystem(world) == 0 {
			return nil
		}
	}
	return nil
}

// PopNextActorSystem は次に行動する参加者を行動順から取り出します。
func PopNextActorSystem(world donburi.World) *donburi.Entry {
	next := PeekNextActorSystem(world)
	if next != nil {
		queueComp := entity.GetActionQueueComponent(world)
		queueComp.Queue = queueComp.Queue[1:]
	}
	return next
}
