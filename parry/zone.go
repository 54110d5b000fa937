package parry

import "parry-ebiten/core"

// Interval はゾーン1つ分の区間です。
type Interval struct {
	Start float64
	End   float64
}

// Len は区間の長さを返します。
func (i Interval) Len() float64 {
	return i.End - i.Start
}

// Zones は TierConfig から計算した4つのゾーンの境界です。
// PerfectParry だけが閉区間 [Start, End] で、残りは半開区間 [Start, End) です。
type Zones struct {
	NormalFail   Interval
	CriticalFail Interval
	GoodParry    Interval
	PerfectParry Interval
	Total        float64
}

// ComputeZones はゾーン境界を計算します。
// 実効時間が幅の合計より長い場合、余った時間は PerfectParry に含まれます。
func ComputeZones(cfg core.TierConfig) Zones {
	w := cfg.Widths
	normalEnd := w.NormalFail
	criticalEnd := normalEnd + w.CriticalFail
	goodEnd := criticalEnd + w.GoodParry
	total := cfg.Total()

	return Zones{
		NormalFail:   Interval{Start: 0, End: normalEnd},
		CriticalFail: Interval{Start: normalEnd, End: criticalEnd},
		GoodParry:    Interval{Start: criticalEnd, End: goodEnd},
		PerfectParry: Interval{Start: goodEnd, End: total},
		Total:        total,
	}
}

// Classify は経過時間がどのゾーンに入るかを返します。
// 範囲外 (負の値や Total を超える値) は NormalFail に落とします。
func (z Zones) Classify(elapsed float64) core.Tier {
	switch {
	case elapsed >= z.NormalFail.Start && elapsed < z.NormalFail.End:
		return core.TierNormalFail
	case elapsed >= z.CriticalFail.Start && elapsed < z.CriticalFail.End:
		return core.TierCriticalFail
	case elapsed >= z.GoodParry.Start && elapsed < z.GoodParry.End:
		return core.TierGoodParry
	case elapsed >= z.PerfectParry.Start && elapsed <= z.PerfectParry.End:
		return core.TierPerfectParry
	}
	return core.TierNormalFail
}

// Classify は cfg から毎回ゾーンを計算して判定します。
// セッション中はキャッシュ済みの Zones.Classify を使います。
func Classify(elapsed float64, cfg core.TierConfig) core.Tier {
	return ComputeZones(cfg).Classify(elapsed)
}

// ScaleConfig は行動の速度パーセントに応じてゾーン幅と時間を伸縮します。
// 速度 200 なら全ての幅と時間がちょうど半分になります。
func ScaleConfig(cfg core.TierConfig, tags core.ActionTags) core.TierConfig {
	speed := tags.EffectiveSpeed()
	if speed == core.DefaultSpeedPercent {
		return cfg
	}
	factor := float64(core.DefaultSpeedPercent) / float64(speed)
	return core.TierConfig{
		Widths:        cfg.Widths.Scale(factor),
		TotalDuration: cfg.TotalDuration * factor,
	}
}
