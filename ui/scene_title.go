package ui

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"

	"parry-ebiten/data"
)

// TitleScene はタイトル画面のシーンです
type TitleScene struct {
	resources *data.SharedResources
	manager   *SceneManager
	ui        *ebitenui.UI
}

// NewTitleScene は新しいタイトルシーンを作成します
func NewTitleScene(res *data.SharedResources, manager *SceneManager) *TitleScene {
	t := &TitleScene{
		resources: res,
		manager:   manager,
	}
	factory := NewUIFactory(&res.Config, res.Font, res.Messages)

	rootContainer := createRootContainer()
	panel := createCenteredPanel(rootContainer, 20)

	panel.AddChild(factory.NewText("Parry Battle", color.White))
	panel.AddChild(factory.NewText(
		fmt.Sprintf("敵の攻撃に合わせて [%s] でパリィ", res.Config.ParryKey),
		res.Config.UI.Colors.PerfectParry))
	panel.AddChild(factory.NewButton("Battle", func(args *widget.ButtonClickedEventArgs) {
		t.manager.GoToBattleScene()
	}))

	t.ui = &ebitenui.UI{Container: rootContainer}
	return t
}

// Update はUIの状態を更新します。bamennに準拠し、errorのみを返します。
func (t *TitleScene) Update() error {
	t.ui.Update()
	return nil
}

func (t *TitleScene) Draw(screen *ebiten.Image) {
	screen.Fill(t.resources.Config.UI.Colors.Background)
	t.ui.Draw(screen)
}

// Layout はEbitenのレイアウト計算を行います。bamennのシーンとして必須です。
func (t *TitleScene) Layout(outsideWidth, outsideHeight int) (int, int) {
	return t.resources.Config.UI.Screen.Width, t.resources.Config.UI.Screen.Height
}
