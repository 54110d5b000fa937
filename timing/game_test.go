package timing

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratedZonesStayInLastPartOfBar(t *testing.T) {
	cfg := DefaultConfig()
	for seed := int64(0); seed < 200; seed++ {
		g := NewGame(cfg, rand.New(rand.NewSource(seed)))
		zones := g.Zones()
		require.NotEmpty(t, zones, "seed=%d", seed)
		assert.LessOrEqual(t, len(zones), 4)
		for i, z := range zones {
			assert.GreaterOrEqual(t, z.Start, 136.0, "seed=%d", seed)
			assert.LessOrEqual(t, z.End, cfg.BarWidth, "seed=%d", seed)
			size := z.End - z.Start
			assert.GreaterOrEqual(t, size, float64(cfg.ZoneMinSize))
			assert.LessOrEqual(t, size, float64(cfg.ZoneMaxSize))
			if i > 0 {
				assert.GreaterOrEqual(t, z.Start, zones[i-1].End, "ゾーンは重ならない")
			}
		}
	}
}

func TestZoneCountFollowsChances(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	assert.Equal(t, 1, zoneCount([4]int{100, 0, 0, 0}, r))
	assert.Equal(t, 4, zoneCount([4]int{0, 0, 0, 100}, r))
	assert.Equal(t, 3, zoneCount([4]int{0, 0, 100, 0}, r))
}

func TestGameSucceedsWhenEveryZoneHit(t *testing.T) {
	cfg := DefaultConfig()
	g := NewGameWithZones(cfg, []Zone{{Start: 250, End: 290}, {Start: 150, End: 200}})

	// 中央が 175 と 270 付近に来たときに押す
	for !g.Done() {
		next := g.Cursor() + cfg.CursorSpeed + cfg.CursorSize/2
		pressed := (next >= 175 && next < 178) || (next >= 270 && next < 273)
		g.Update(1, pressed)
	}
	assert.Equal(t, StateSucceeded, g.State())
	assert.Equal(t, 2, g.HitCount())
}

func TestGameFailsOnMissedPress(t *testing.T) {
	g := NewGameWithZones(DefaultConfig(), []Zone{{Start: 200, End: 240}})
	g.Update(1, false)
	assert.Equal(t, StateFailed, g.Update(1, true), "ゾーン外で押すと即失敗")
	assert.Equal(t, StateFailed, g.Update(1, true), "終了後は状態が変わらない")
}

func TestGameFailsWhenZoneSkipped(t *testing.T) {
	g := NewGameWithZones(DefaultConfig(), []Zone{{Start: 200, End: 240}})
	for !g.Done() {
		g.Update(1, false)
	}
	assert.Equal(t, StateFailed, g.State())
	assert.GreaterOrEqual(t, g.Cursor(), 396.0)
}

func TestGameFailsOnSecondPressInSameZone(t *testing.T) {
	g := NewGameWithZones(DefaultConfig(), []Zone{{Start: 0, End: 60}})
	g.Update(1, true)
	assert.Equal(t, StateRunning, g.State())
	assert.Equal(t, StateFailed, g.Update(1, true))
}

func TestGameTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timeout = 10
	g := NewGameWithZones(cfg, []Zone{{Start: 300, End: 340}})
	for i := 0; i < 10; i++ {
		g.Update(1, false)
	}
	assert.False(t, g.Done())
	assert.Equal(t, StateFailed, g.Update(1, false))
}

func TestBonusDamage(t *testing.T) {
	assert.Equal(t, 3, BonusDamage(35, 10))
	assert.Equal(t, 0, BonusDamage(9, 10))
	assert.Equal(t, 10, BonusDamage(100, 10))
	assert.Equal(t, 0, BonusDamage(0, 10))
	assert.Equal(t, 0, BonusDamage(50, 0))
}
