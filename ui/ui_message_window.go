package ui

import (
	"image/color"

	"github.com/ebitenui/ebitenui/widget"
)

// MessageWindow は戦闘メッセージを新しい順に数行だけ表示するUIコンポーネントです。
type MessageWindow struct {
	widget *widget.Container
	lines  []*widget.Text
	texts  []string
}

// NewMessageWindow は rows 行分のメッセージウィンドウを作成します。
func NewMessageWindow(uiFactory *UIFactory, rows int) *MessageWindow {
	container := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(uiFactory.imageGenerator.createPanelNineSlice(3)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(12)),
			widget.RowLayoutOpts.Spacing(4),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionEnd,
				StretchHorizontal:  true,
			}),
		),
	)
	m := &MessageWindow{widget: container}
	for i := 0; i < rows; i++ {
		line := widget.NewText(widget.TextOpts.Text("", uiFactory.Font, color.White))
		m.lines = append(m.lines, line)
		container.AddChild(line)
	}
	return m
}

// Widget はこのコンポーネントのルートウィジェットを返します。
func (m *MessageWindow) Widget() *widget.Container {
	return m.widget
}

// Push はメッセージを末尾に追加し、古いものからあふれた分を捨てます。
func (m *MessageWindow) Push(messages ...string) {
	m.texts = append(m.texts, messages...)
	if over := len(m.texts) - len(m.lines); over > 0 {
		m.texts = m.texts[over:]
	}
	for i, line := range m.lines {
		if i < len(m.texts) {
			line.Label = m.texts[i]
		} else {
			line.Label = ""
		}
	}
}

// Messages は表示中のメッセージを古い順に返します。
func (m *MessageWindow) Messages() []string {
	return append([]string(nil), m.texts...)
}
