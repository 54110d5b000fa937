package component

// ECSのCに相当するコンポーネント定義を集約します。

import (
	"github.com/yohamta/donburi"

	"parry-ebiten/core"
)

// Settings は戦闘参加者の変化しない情報です。
type Settings struct {
	ID       string
	Name     string
	Team     core.TeamID
	IsLeader bool
	// DrawIndex はチーム内での並び順です。描画位置の決定に使用されます。
	DrawIndex int
}

// Stats は能力値と現在のHPです。
type Stats struct {
	HP      int
	MaxHP   int
	Attack  int
	Defense int
	Agility int
}

// Condition は倒れ演出と非表示の状態です。
// Hidden になった参加者はターゲットにも勝敗判定にも含めません。
type Condition struct {
	Collapsed bool
	Hidden    bool
}

// Skill は通常行動です。Tags はメモ欄から読み取った上書き設定です。
type Skill struct {
	Name  string
	Power int
	Note  string
	Tags  core.ActionTags
}

// ActionQueueComponentData はこのラウンドでまだ行動していない参加者を素早さ順に保持します。
type ActionQueueComponentData struct {
	Queue []*donburi.Entry
	Round int
}
