package system

import (
	"github.com/yohamta/donburi"

	"parry-ebiten/core"
	"parry-ebiten/ecs/component"
)

// Battler は戦闘参加者のエンティティを core.Battler として扱うための値型です。
// 同じエンティティを指す Battler 同士は == で等しくなります。
type Battler struct {
	world  donburi.World
	entity donburi.Entity
}

// BattlerOf はエントリから Battler を作ります。
func BattlerOf(entry *donburi.Entry) Battler {
	return Battler{world: entry.World, entity: entry.Entity()}
}

// Entry は参加者のエントリを返します。
func (b Battler) Entry() *donburi.Entry {
	return b.world.Entry(b.entity)
}

func (b Battler) settings() *component.Settings {
	return component.SettingsComponent.Get(b.Entry())
}

func (b Battler) Name() string { return b.settings().Name }
func (b Battler) Team() core.TeamID { return b.settings().Team }
func (b Battler) IsEnemy() bool { return b.Team() == core.Team2 }
func (b Battler) IsActor() bool { return b.Team() == core.Team1 }
func (b Battler) HP() int { return component.StatsComponent.Get(b.Entry()).HP }
func (b Battler) IsDead() bool { return b.HP() <= 0 }
func (b Battler) Hidden() bool { return component.ConditionComponent.Get(b.Entry()).Hidden }
func (b Battler) Collapsed() bool { return component.ConditionComponent.Get(b.Entry()).Collapsed }

// Alive は戦闘に参加し続けている (HPが残っていて非表示でない) かどうかを返します。
func (b Battler) Alive() bool {
	return !b.IsDead() && !b.Hidden()
}

// CanParry はプレイヤー側で、まだ戦える参加者だけ true を返します。
func (b Battler) CanParry() bool {
	return b.Entry().HasComponent(component.ParryableTag) && b.Alive()
}
