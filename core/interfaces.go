package core

// Battler は戦闘参加者を表します。同一の参加者は == で比較できる値でなければなりません。
type Battler interface {
	Name() string
	IsEnemy() bool
	IsActor() bool
	IsDead() bool
	// CanParry はパリィのミニゲームに参加できる状態かどうかを返します。
	CanParry() bool
}

// Action は戦闘マネージャが適用する1回分の行動です。
type Action interface {
	Subject() Battler
	IsHPDamaging() bool
	Tags() ActionTags
}

// DeferredAction はゲート中に捕捉された敵の行動のスナップショットです。
type DeferredAction struct {
	Subject Battler
	Action  Action
	Targets []Battler
}

// ActionResult は ApplyAction の結果です。
type ActionResult struct {
	Subject    Battler
	Target     Battler
	Damage     int
	Multiplier float64
	Defeated   bool
}

// TurnEngine はパリィ処理が必要とする戦闘マネージャ側の機能です。
// ecs/system.BattleEngine が参照実装です。
type TurnEngine interface {
	// ApplyAction は行動を target に適用します。ダメージは multiplier 倍 (切り捨て) されます。
	ApplyAction(action Action, target Battler, multiplier float64) ActionResult
	// NewAttackAction は subject の通常攻撃を tags 付きで生成します。
	NewAttackAction(subject Battler, tags ActionTags) Action
	PerformCollapse(b Battler)
	HideBattler(b Battler)
	// CheckBattleEnd は戦闘終了条件を評価し、終了していれば true を返します。
	CheckBattleEnd() bool
	SetPhase(p Phase)
	// RestoreAction は遅延行動を現在の行動スロットへ戻します。
	RestoreAction(d DeferredAction)
}

// InputSource はエッジトリガーの入力源です。1ティックに1回だけ問い合わせます。
type InputSource interface {
	WasJustPressed(key string) bool
}

// Clock は単調増加する時刻源 (ティック単位) です。
type Clock interface {
	Now() float64
}
