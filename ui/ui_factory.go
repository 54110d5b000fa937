package ui

import (
	"image/color"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"parry-ebiten/data"
)

// UIFactory はUIコンポーネントの生成とスタイリングを一元的に管理します。
type UIFactory struct {
	Config         *data.Config
	Font           text.Face
	MessageManager *data.MessageManager
	imageGenerator *UIImageGenerator
}

// NewUIFactory は新しいUIFactoryのインスタンスを作成します。
func NewUIFactory(config *data.Config, font text.Face, messageManager *data.MessageManager) *UIFactory {
	return &UIFactory{
		Config:         config,
		Font:           font,
		MessageManager: messageManager,
		imageGenerator: NewUIImageGenerator(),
	}
}

// NewButton は共通スタイルのボタンを生成します。
func (f *UIFactory) NewButton(label string, clickedHandler func(args *widget.ButtonClickedEventArgs)) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(f.imageGenerator.createButtonImageSet(3)),
		widget.ButtonOpts.Text(label, f.Font, &widget.ButtonTextColor{Idle: color.White}),
		widget.ButtonOpts.TextPadding(widget.NewInsetsSimple(10)),
		widget.ButtonOpts.ClickedHandler(clickedHandler),
	)
}

// NewText は共通フォントのテキストを生成します。
func (f *UIFactory) NewText(label string, c color.Color) *widget.Text {
	return widget.NewText(
		widget.TextOpts.Text(label, f.Font, c),
		widget.TextOpts.Position(widget.TextPositionCenter, widget.TextPositionCenter),
	)
}
