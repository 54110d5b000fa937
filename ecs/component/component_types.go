package component

import (
	"github.com/yohamta/donburi"
)

// --- Componentの型定義 ---
var (
	SettingsComponent  = donburi.NewComponentType[Settings]()
	StatsComponent     = donburi.NewComponentType[Stats]()
	ConditionComponent = donburi.NewComponentType[Condition]()
	SkillComponent     = donburi.NewComponentType[Skill]()

	// ParryableTag はパリィのミニゲームに参加できる参加者に付けます (プレイヤー側)。
	ParryableTag = donburi.NewTag()

	// --- Battle Action Queue Component ---
	ActionQueueComponentType = donburi.NewComponentType[ActionQueueComponentData]()
)

// WorldStateTag はワールド状態エンティティを識別するためのタグコンポーネントです。
var WorldStateTag = donburi.NewTag()
