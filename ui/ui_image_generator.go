package ui

import (
	"image/color"
	"math"

	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// UIImageGenerator はUIコンポーネントの画像生成ロジックをカプセル化します。
type UIImageGenerator struct{}

func NewUIImageGenerator() *UIImageGenerator {
	return &UIImageGenerator{}
}

// createButtonImageSet はグラデーションと立体的な枠線のボタン画像セットを生成します。
func (g *UIImageGenerator) createButtonImageSet(thickness float32) *widget.ButtonImage {
	return &widget.ButtonImage{
		Idle:    g.createBeveledNineSlice(color.RGBA{R: 0x20, G: 0x28, B: 0x48, A: 0xff}, color.RGBA{R: 0x30, G: 0x40, B: 0x70, A: 0xff}, color.RGBA{R: 0x60, G: 0x90, B: 0xff, A: 0xff}, thickness),
		Hover:   g.createBeveledNineSlice(color.RGBA{R: 0x30, G: 0x40, B: 0x70, A: 0xff}, color.RGBA{R: 0x40, G: 0x60, B: 0xa0, A: 0xff}, color.RGBA{R: 0xf0, G: 0xd0, B: 0x30, A: 0xff}, thickness),
		Pressed: g.createBeveledNineSlice(color.RGBA{R: 0x10, G: 0x18, B: 0x30, A: 0xff}, color.RGBA{R: 0x20, G: 0x28, B: 0x48, A: 0xff}, color.RGBA{R: 0xf0, G: 0xd0, B: 0x30, A: 0xff}, thickness),
	}
}

// createPanelNineSlice はメッセージウィンドウ用のパネル画像を生成します。
func (g *UIImageGenerator) createPanelNineSlice(thickness float32) *image.NineSlice {
	return g.createBeveledNineSlice(
		color.RGBA{R: 0x10, G: 0x14, B: 0x28, A: 0xe0},
		color.RGBA{R: 0x20, G: 0x28, B: 0x50, A: 0xe0},
		color.RGBA{R: 0x80, G: 0x90, B: 0xc0, A: 0xff},
		thickness)
}

func (g *UIImageGenerator) createBeveledNineSlice(startColor, endColor, borderColor color.Color, thickness float32) *image.NineSlice {
	tileSize := 64
	borderInset := int(thickness)

	img := ebiten.NewImage(tileSize, tileSize)
	g.drawGradient(img, startColor, endColor)

	highlightColor, shadowColor := g.createHighlightAndShadowColors(borderColor)
	size := float32(tileSize)
	vector.StrokeLine(img, 0, 0, size, 0, thickness, highlightColor, false)
	vector.StrokeLine(img, 0, 0, 0, size, thickness, highlightColor, false)
	vector.StrokeLine(img, 0, size, size, size, thickness, shadowColor, false)
	vector.StrokeLine(img, size, 0, size, size, thickness, shadowColor, false)

	return image.NewNineSlice(img,
		[3]int{borderInset, tileSize - 2*borderInset, borderInset},
		[3]int{borderInset, tileSize - 2*borderInset, borderInset})
}

// drawGradient は縦方向の線形グラデーションを描画します。
func (g *UIImageGenerator) drawGradient(img *ebiten.Image, startColor, endColor color.Color) {
	size := img.Bounds().Size()
	for y := 0; y < size.Y; y++ {
		c := lerpColor(startColor, endColor, float64(y)/float64(size.Y-1))
		for x := 0; x < size.X; x++ {
			img.Set(x, y, c)
		}
	}
}

// createHighlightAndShadowColors はベースカラーから明るい色と暗い色を生成します。
func (g *UIImageGenerator) createHighlightAndShadowColors(baseColor color.Color) (color.Color, color.Color) {
	r, gVal, b, a := baseColor.RGBA()
	highlight := color.RGBA64{
		R: uint16(math.Min(0xffff, float64(r)*1.5)),
		G: uint16(math.Min(0xffff, float64(gVal)*1.5)),
		B: uint16(math.Min(0xffff, float64(b)*1.5)),
		A: uint16(a),
	}
	shadow := color.RGBA64{R: uint16(r / 2), G: uint16(gVal / 2), B: uint16(b / 2), A: uint16(a)}
	return highlight, shadow
}

// lerpColor は2色を ratio (0〜1) で線形補間します。
func lerpColor(start, end color.Color, ratio float64) color.RGBA64 {
	sr, sg, sb, sa := start.RGBA()
	er, eg, eb, ea := end.RGBA()
	lerp := func(s, e uint32) uint16 {
		return uint16(float64(s)*(1-ratio) + float64(e)*ratio)
	}
	return color.RGBA64{R: lerp(sr, er), G: lerp(sg, eg), B: lerp(sb, eb), A: lerp(sa, ea)}
}
