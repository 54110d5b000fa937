package system

import (
	"math"

	"github.com/yohamta/donburi"

	"parry-ebiten/data"
	"parry-ebiten/ecs/component"
	"parry-ebiten/timing"
)

// DamageCalculator はダメージ計算に関連するロジックを担当します。
type DamageCalculator struct {
	logger data.BattleLogger
}

// NewDamageCalculator は新しい DamageCalculator のインスタンスを生成します。
func NewDamageCalculator(logger data.BattleLogger) *DamageCalculator {
	return &DamageCalculator{logger: logger}
}

// CalculateDamage は倍率を掛ける前の値 base と、最終ダメージを返します。
//
//	base   = max(1, 攻撃力 * 威力 / 100 - 防御力 / 2) + タイミング攻撃のボーナス
//	damage = floor(base * multiplier)
func (dc *DamageCalculator) CalculateDamage(attacker, target *donburi.Entry, power, bonusPercent int, multiplier float64) (int, int) {
	atk := component.StatsComponent.Get(attacker)
	def := component.StatsComponent.Get(target)

	base := atk.Attack*power/100 - def.Defense/2
	if base < 1 {
		base = 1
	}
	base += timing.BonusDamage(base, bonusPercent)

	damage := int(math.Floor(float64(base) * multiplier))
	if damage < 0 {
		damage = 0
	}
	if dc.logger != nil {
		dc.logger.LogDamage(
			component.SettingsComponent.Get(attacker).Name,
			component.SettingsComponent.Get(target).Name,
			base, damage, multiplier)
	}
	return base, damage
}
