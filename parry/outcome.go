package parry

import "parry-ebiten/core"

// Resolve は判定結果と倍率表から Outcome を作ります。純粋関数です。
func Resolve(tier core.Tier, multipliers core.MultiplierTable) core.Outcome {
	switch tier {
	case core.TierNormalFail:
		return core.Outcome{Tier: tier, DamageMultiplier: multipliers.NormalFail}
	case core.TierCriticalFail:
		return core.Outcome{Tier: tier, DamageMultiplier: multipliers.CriticalFail}
	case core.TierGoodParry:
		return core.Outcome{Tier: tier, DamageMultiplier: multipliers.GoodParry}
	case core.TierPerfectParry:
		return core.Outcome{Tier: tier, DamageMultiplier: multipliers.PerfectParry, CounterEligible: true}
	case core.TierNoInput:
		return core.Outcome{Tier: tier, DamageMultiplier: multipliers.NoInput}
	}
	// セッションが無い場合など。通常ダメージとして扱う。
	return core.Outcome{Tier: core.TierNone, DamageMultiplier: multipliers.NormalFail}
}

// SkipsApplication は行動の適用自体を省略してよい結果かどうかを返します。
// PerfectParry かつ倍率 0 のときはダメージ計算を呼ばずに攻撃を無効化します。
func SkipsApplication(outcome core.Outcome) bool {
	return outcome.Tier == core.TierPerfectParry && outcome.DamageMultiplier == 0
}
