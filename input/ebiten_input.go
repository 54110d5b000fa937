package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// keyBindings はパリィキー名ごとの物理キーです。
var keyBindings = map[string][]ebiten.Key{
	"ok":    {ebiten.KeyEnter, ebiten.KeyNumpadEnter, ebiten.KeySpace, ebiten.KeyZ},
	"space": {ebiten.KeySpace},
	"enter": {ebiten.KeyEnter, ebiten.KeyNumpadEnter},
	"z":     {ebiten.KeyZ},
	"x":     {ebiten.KeyX},
	"shift": {ebiten.KeyShiftLeft, ebiten.KeyShiftRight},
}

// EbitenInput は inpututil による core.InputSource の実装です。
// "ok" だけはマウス左ボタンとゲームパッドの決定ボタンも受け付けます。
type EbitenInput struct{}

func NewEbitenInput() *EbitenInput {
	return &EbitenInput{}
}

// WasJustPressed は key に割り当てられた入力がこのフレームで押されたかどうかを返します。
// 同じフレーム内なら何度呼んでも同じ結果になります。
func (in *EbitenInput) WasJustPressed(key string) bool {
	for _, k := range keyBindings[key] {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	if key != "ok" {
		return false
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return true
	}
	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom) {
			return true
		}
	}
	return false
}

// Bound は key に物理キーが割り当てられているかどうかを返します。
func Bound(key string) bool {
	_, ok := keyBindings[key]
	return ok
}
