package ui

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"parry-ebiten/core"
	"parry-ebiten/data"
)

// ResultScene は勝敗を表示するシーンです。クリックでタイトルに戻ります。
type ResultScene struct {
	resources *data.SharedResources
	manager   *SceneManager
	ui        *ebitenui.UI
}

// NewResultScene は新しいリザルトシーンを作成します
func NewResultScene(res *data.SharedResources, manager *SceneManager, result core.GameEndResult) *ResultScene {
	r := &ResultScene{
		resources: res,
		manager:   manager,
	}
	factory := NewUIFactory(&res.Config, res.Font, res.Messages)

	rootContainer := createRootContainer()
	panel := createCenteredPanel(rootContainer, 20)

	headline := "defeat"
	headlineColor := res.Config.UI.Colors.Team2
	if result.Winner == core.Team1 {
		headline = "victory"
		headlineColor = res.Config.UI.Colors.PerfectParry
	}
	panel.AddChild(factory.NewText(res.Messages.Format(headline, nil), headlineColor))
	panel.AddChild(factory.NewText(result.Message, color.White))
	panel.AddChild(factory.NewText("クリックしてタイトルに戻る", res.Config.UI.Colors.NormalFail))

	r.ui = &ebitenui.UI{Container: rootContainer}
	return r
}

func (r *ResultScene) Update() error {
	r.ui.Update()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		r.manager.GoToTitleScene()
	}
	return nil
}

func (r *ResultScene) Draw(screen *ebiten.Image) {
	screen.Fill(r.resources.Config.UI.Colors.Background)
	r.ui.Draw(screen)
}

func (r *ResultScene) Layout(outsideWidth, outsideHeight int) (int, int) {
	return r.resources.Config.UI.Screen.Width, r.resources.Config.UI.Screen.Height
}
