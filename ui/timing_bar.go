package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"parry-ebiten/core"
	"parry-ebiten/data"
	"parry-ebiten/parry"
	"parry-ebiten/timing"
)

const flashFrames = 45

var tierLabels = map[core.Tier]string{
	core.TierNormalFail:   "EARLY",
	core.TierCriticalFail: "CRITICAL",
	core.TierGoodParry:    "GOOD",
	core.TierPerfectParry: "PERFECT!",
	core.TierNoInput:      "MISS",
}

// TimingBar はパリィの判定ゾーンとタイミング攻撃のバーを描画するオーバーレイです。
// parry.Observer として判定結果を受け取り、しばらくの間ラベルを表示します。
type TimingBar struct {
	parry.NopObserver
	colors data.ParsedColors
	font   text.Face
	rect   rect

	flashLabel  string
	flashColor  color.Color
	flashFrames int
}

type rect struct {
	X, Y, W, H float32
}

var _ parry.Observer = (*TimingBar)(nil)

// NewTimingBar は画面幅に合わせた位置にバーを作ります。
func NewTimingBar(cfg *data.Config, font text.Face) *TimingBar {
	w := float32(cfg.UI.Screen.Width) * 0.6
	return &TimingBar{
		colors: cfg.UI.Colors,
		font:   font,
		rect: rect{
			X: (float32(cfg.UI.Screen.Width) - w) / 2,
			Y: float32(cfg.UI.Screen.Height) * 0.45,
			W: w,
			H: 16,
		},
	}
}

func (b *TimingBar) OnSessionResolved(outcome core.Outcome) {
	b.flash(tierLabels[outcome.Tier], b.tierColor(outcome.Tier))
}

func (b *TimingBar) OnCounterAttack(result core.ActionResult) {
	b.flash("COUNTER!", b.colors.PerfectParry)
}

func (b *TimingBar) flash(label string, c color.Color) {
	b.flashLabel = label
	b.flashColor = c
	b.flashFrames = flashFrames
}

// Flash は表示中のラベルを返します。表示していない場合は空文字です。
func (b *TimingBar) Flash() string {
	if b.flashFrames <= 0 {
		return ""
	}
	return b.flashLabel
}

// Update はラベルの表示時間を1フレーム分減らします。
func (b *TimingBar) Update() {
	if b.flashFrames > 0 {
		b.flashFrames--
	}
}

func (b *TimingBar) tierColor(t core.Tier) color.Color {
	switch t {
	case core.TierCriticalFail:
		return b.colors.CriticalFail
	case core.TierGoodParry:
		return b.colors.GoodParry
	case core.TierPerfectParry:
		return b.colors.PerfectParry
	default:
		return b.colors.NormalFail
	}
}

// barX はバー上の位置 pos (0〜total) を画面座標に変換します。
func (b *TimingBar) barX(pos, total float64) float32 {
	if total <= 0 {
		return b.rect.X
	}
	ratio := min(max(pos/total, 0), 1)
	return b.rect.X + float32(ratio)*b.rect.W
}

// DrawSession はパリィの判定ゾーン、経過時間のカーソル、入力位置を描画します。
func (b *TimingBar) DrawSession(screen *ebiten.Image, view parry.SessionView) {
	if view.Active {
		z := view.Zones
		r := b.rect
		for _, seg := range []struct {
			iv parry.Interval
			c  color.Color
		}{
			{z.NormalFail, b.colors.NormalFail},
			{z.CriticalFail, b.colors.CriticalFail},
			{z.GoodParry, b.colors.GoodParry},
			{z.PerfectParry, b.colors.PerfectParry},
		} {
			x0 := b.barX(seg.iv.Start, z.Total)
			x1 := b.barX(seg.iv.End, z.Total)
			vector.DrawFilledRect(screen, x0, r.Y, x1-x0, r.H, seg.c, false)
		}
		vector.StrokeRect(screen, r.X, r.Y, r.W, r.H, 1, color.White, false)

		cx := b.barX(view.Elapsed(), z.Total)
		vector.DrawFilledRect(screen, cx-1, r.Y-4, 3, r.H+8, b.colors.Cursor, false)
		if view.InputReceived {
			ix := b.barX(view.InputElapsed(), z.Total)
			vector.DrawFilledRect(screen, ix-1, r.Y-6, 3, r.H+12, b.colors.Input, false)
		}
	}
	b.drawFlash(screen)
}

// DrawTimingGame はタイミング攻撃のバー、緑ゾーン、カーソルを描画します。
func (b *TimingBar) DrawTimingGame(screen *ebiten.Image, g *timing.Game) {
	if g == nil {
		return
	}
	cfg := g.Config()
	r := b.rect
	y := r.Y + 40
	vector.DrawFilledRect(screen, r.X, y, r.W, r.H, b.colors.Background, false)
	for _, z := range g.Zones() {
		c := b.colors.TimingZone
		if z.Hit {
			c = b.colors.TimingHit
		}
		x0 := b.barX(z.Start, cfg.BarWidth)
		x1 := b.barX(z.End, cfg.BarWidth)
		vector.DrawFilledRect(screen, x0, y, x1-x0, r.H, c, false)
	}
	vector.StrokeRect(screen, r.X, y, r.W, r.H, 1, color.White, false)
	cx := b.barX(g.Cursor(), cfg.BarWidth)
	cw := b.barX(g.Cursor()+cfg.CursorSize, cfg.BarWidth) - cx
	vector.DrawFilledRect(screen, cx, y-4, max(cw, 2), r.H+8, b.colors.Cursor, false)
}

func (b *TimingBar) drawFlash(screen *ebiten.Image) {
	label := b.Flash()
	if label == "" || b.font == nil {
		return
	}
	op := &text.DrawOptions{}
	w, _ := text.Measure(label, b.font, 0)
	op.GeoM.Translate(float64(b.rect.X+b.rect.W/2)-w/2, float64(b.rect.Y-28))
	op.ColorScale.ScaleWithColor(b.flashColor)
	text.Draw(screen, label, b.font, op)
}
