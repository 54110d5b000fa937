package parry

import (
	"go.uber.org/zap"

	"parry-ebiten/core"
)

// CounterExecutor は PerfectParry 後の反撃を実行します。
type CounterExecutor struct {
	engine core.TurnEngine
	logger *zap.Logger
}

func NewCounterExecutor(engine core.TurnEngine, logger *zap.Logger) *CounterExecutor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CounterExecutor{engine: engine, logger: logger}
}

// Execute は counterTarget (元の防御側) から counterAttacker (元の攻撃側) への通常攻撃を適用します。
// 倒した場合は倒れ演出と非表示化まで行いますが、戦闘終了判定はゲートが閉じるときに任せます。
func (c *CounterExecutor) Execute(counterTarget, counterAttacker core.Battler) (core.ActionResult, bool) {
	if counterTarget == nil || counterAttacker == nil {
		c.logger.Warn("反撃の引数が不正です",
			zap.Bool("counterTarget", counterTarget != nil),
			zap.Bool("counterAttacker", counterAttacker != nil))
		return core.ActionResult{}, false
	}

	action := c.engine.NewAttackAction(counterTarget, core.ActionTags{
		Counter:      true,
		Unparryable:  true,
		SpeedPercent: core.DefaultSpeedPercent,
	})
	result := c.engine.ApplyAction(action, counterAttacker, 1.0)

	if counterAttacker.IsDead() {
		c.engine.PerformCollapse(counterAttacker)
		c.engine.HideBattler(counterAttacker)
		result.Defeated = true
	}
	c.logger.Info("反撃",
		zap.String("attacker", counterTarget.Name()),
		zap.String("target", counterAttacker.Name()),
		zap.Int("damage", result.Damage),
		zap.Bool("defeated", result.Defeated))
	return result, true
}
