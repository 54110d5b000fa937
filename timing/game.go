package timing

import (
	"math"
	"math/rand"
	"sort"
)

// Config はタイミング攻撃ミニゲームの設定です。長さはバー上の単位、時間はティックです。
type Config struct {
	BarWidth    float64
	CursorSpeed float64
	CursorSize  float64
	ZoneMinSize int
	ZoneMaxSize int
	// ZoneChances は緑ゾーンが 1〜4 個になる確率 (%) です。
	ZoneChances [4]int
	Timeout     float64
	DamageBonus int // 成功時の追加ダメージ (%)
}

// DefaultConfig は既定の設定を返します。タイムアウトは 60 TPS で 8 秒です。
func DefaultConfig() Config {
	return Config{
		BarWidth:    400,
		CursorSpeed: 3,
		CursorSize:  4,
		ZoneMinSize: 30,
		ZoneMaxSize: 60,
		ZoneChances: [4]int{15, 30, 30, 25},
		Timeout:     480,
		DamageBonus: 10,
	}
}

// State はミニゲームの進行状態です。
type State int

const (
	StateRunning State = iota
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "running"
	}
}

// Zone は緑ゾーン1つ分です。両端を含みます。
type Zone struct {
	Start float64
	End   float64
	Hit   bool
}

// Game は1回分のタイミング攻撃です。カーソルは一方向に1回だけ流れます。
type Game struct {
	cfg     Config
	zones   []Zone
	cursor  float64
	elapsed float64
	state   State
}

// NewGame はゾーンを配置した新しいゲームを生成します。
func NewGame(cfg Config, r *rand.Rand) *Game {
	return &Game{cfg: cfg, zones: generateZones(cfg, r)}
}

// NewGameWithZones は配置済みのゾーンでゲームを生成します。
func NewGameWithZones(cfg Config, zones []Zone) *Game {
	zs := append([]Zone(nil), zones...)
	sort.Slice(zs, func(i, j int) bool { return zs[i].Start < zs[j].Start })
	return &Game{cfg: cfg, zones: zs}
}

// zoneCount は ZoneChances に従ってゾーン数を決めます。
func zoneCount(chances [4]int, r *rand.Rand) int {
	roll := r.Intn(100)
	acc := 0
	for i, c := range chances[:3] {
		acc += c
		if roll < acc {
			return i + 1
		}
	}
	return 4
}

// generateZones はバーの後ろ 66% に重ならないようにゾーンを置きます。
// 重なった候補は置き直さずに捨てるので、実際の数は決めた数より少なくなることがあります。
func generateZones(cfg Config, r *rand.Rand) []Zone {
	n := zoneCount(cfg.ZoneChances, r)
	startArea := math.Floor(cfg.BarWidth * 0.34)
	available := int(cfg.BarWidth - startArea)

	zones := make([]Zone, 0, n)
	for i := 0; i < n; i++ {
		size := r.Intn(cfg.ZoneMaxSize-cfg.ZoneMinSize+1) + cfg.ZoneMinSize
		maxPos := available - size
		if maxPos <= 0 {
			continue
		}
		pos := float64(r.Intn(maxPos)) + startArea
		end := pos + float64(size)

		overlap := false
		for _, z := range zones {
			if pos < z.End && end > z.Start {
				overlap = true
				break
			}
		}
		if !overlap {
			zones = append(zones, Zone{Start: pos, End: end})
		}
	}
	sort.Slice(zones, func(i, j int) bool { return zones[i].Start < zones[j].Start })
	return zones
}

// Update は1ティック進めます。pressed はこのティックの決定キーの押下です。
func (g *Game) Update(dt float64, pressed bool) State {
	if g.state != StateRunning {
		return g.state
	}
	g.elapsed += dt
	if g.elapsed > g.cfg.Timeout {
		g.state = StateFailed
		return g.state
	}

	g.cursor += g.cfg.CursorSpeed * dt
	if g.cursor >= g.cfg.BarWidth-g.cfg.CursorSize {
		if g.HitCount() == len(g.zones) {
			g.state = StateSucceeded
		} else {
			g.state = StateFailed
		}
		return g.state
	}

	if pressed {
		g.press()
	}
	return g.state
}

// press はカーソル中央がまだ当てていないゾーンに入っていれば当たりにし、外れなら失敗で終了します。
func (g *Game) press() {
	center := g.cursor + g.cfg.CursorSize/2
	for i := range g.zones {
		z := &g.zones[i]
		if !z.Hit && center >= z.Start && center <= z.End {
			z.Hit = true
			return
		}
	}
	g.state = StateFailed
}

func (g *Game) State() State { return g.state }
func (g *Game) Done() bool { return g.state != StateRunning }
func (g *Game) Succeeded() bool { return g.state == StateSucceeded }
func (g *Game) Cursor() float64 { return g.cursor }
func (g *Game) Elapsed() float64 { return g.elapsed }
func (g *Game) Config() Config { return g.cfg }

// Zones は描画用にゾーンのコピーを返します。
func (g *Game) Zones() []Zone {
	return append([]Zone(nil), g.zones...)
}

// HitCount は当てたゾーンの数です。
func (g *Game) HitCount() int {
	n := 0
	for _, z := range g.zones {
		if z.Hit {
			n++
		}
	}
	return n
}

// BonusDamage は成功時に加算するダメージ floor(damage * percent / 100) を返します。
func BonusDamage(damage, percent int) int {
	if damage <= 0 || percent <= 0 {
		return 0
	}
	return int(math.Floor(float64(damage) * float64(percent) / 100))
}
