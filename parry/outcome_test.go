package parry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"parry-ebiten/core"
)

func TestResolve(t *testing.T) {
	m := core.DefaultMultipliers()
	tests := []struct {
		tier    core.Tier
		mult    float64
		counter bool
	}{
		{core.TierNormalFail, 1.0, false},
		{core.TierCriticalFail, 1.25, false},
		{core.TierGoodParry, 0.75, false},
		{core.TierPerfectParry, 0.0, true},
		{core.TierNoInput, 1.0, false},
	}
	for _, tt := range tests {
		t.Run(tt.tier.String(), func(t *testing.T) {
			got := Resolve(tt.tier, m)
			assert.Equal(t, tt.tier, got.Tier)
			assert.Equal(t, tt.mult, got.DamageMultiplier)
			assert.Equal(t, tt.counter, got.CounterEligible)
			assert.Equal(t, got, Resolve(tt.tier, m), "同じ入力には同じ結果")
		})
	}
}

func TestResolveUnknownTier(t *testing.T) {
	got := Resolve(core.TierNone, core.DefaultMultipliers())
	assert.Equal(t, core.Outcome{Tier: core.TierNone, DamageMultiplier: 1.0}, got)
}

func TestResolveCustomMultipliers(t *testing.T) {
	m := core.MultiplierTable{NormalFail: 1, CriticalFail: 2, GoodParry: 0.5, PerfectParry: 0.25, NoInput: 1.5}
	assert.Equal(t, 0.25, Resolve(core.TierPerfectParry, m).DamageMultiplier)
	assert.Equal(t, 1.5, Resolve(core.TierNoInput, m).DamageMultiplier)
}

func TestSkipsApplication(t *testing.T) {
	assert.True(t, SkipsApplication(core.Outcome{Tier: core.TierPerfectParry, DamageMultiplier: 0}))
	assert.False(t, SkipsApplication(core.Outcome{Tier: core.TierPerfectParry, DamageMultiplier: 0.25}))
	assert.False(t, SkipsApplication(core.Outcome{Tier: core.TierGoodParry, DamageMultiplier: 0}))
}
