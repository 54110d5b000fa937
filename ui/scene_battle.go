package ui

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"

	"parry-ebiten/core"
	"parry-ebiten/data"
	"parry-ebiten/ecs/component"
	"parry-ebiten/ecs/system"
	"parry-ebiten/event"
	"parry-ebiten/input"
	"parry-ebiten/parry"
)

// resultDelay は戦闘終了からリザルト画面に移るまでのフレーム数です。
const resultDelay = 90

type BattleScene struct {
	resources *data.SharedResources
	manager   *SceneManager
	engine    *system.BattleEngine
	logger    *zap.Logger

	ui            *ebitenui.UI
	messageWindow *MessageWindow
	timingBar     *TimingBar
	cues          *CuePlayer

	tickCount int
	endedAt   int
	config    *data.Config
}

func NewBattleScene(res *data.SharedResources, manager *SceneManager) *BattleScene {
	cfg := res.Config
	bs := &BattleScene{
		resources: res,
		manager:   manager,
		logger:    res.Logger.Named("battle"),
		config:    &cfg,
		endedAt:   -1,
	}

	factory := NewUIFactory(bs.config, res.Font, res.Messages)
	bs.messageWindow = NewMessageWindow(factory, 5)
	rootContainer := createRootContainer()
	rootContainer.AddChild(bs.messageWindow.Widget())
	bs.ui = &ebitenui.UI{Container: rootContainer}

	bs.timingBar = NewTimingBar(bs.config, res.Font)
	bs.cues = NewCuePlayer(res.Audio, bs.logger)

	ctx := system.NewBattleContext(donburi.NewWorld(), res, input.NewEbitenInput())
	ctx.Config = bs.config
	bs.engine = system.NewBattleEngine(ctx, res.Roster, parry.Observers{bs.timingBar, bs.cues})
	return bs
}

func (bs *BattleScene) Update() error {
	bs.tickCount++
	bs.ui.Update()
	bs.timingBar.Update()

	if bs.endedAt >= 0 {
		if bs.tickCount-bs.endedAt >= resultDelay {
			bs.manager.GoToResultScene(bs.engine.Result())
		}
		return nil
	}

	events, err := bs.engine.Update(1)
	if err != nil {
		return fmt.Errorf("戦闘の更新に失敗しました: %w", err)
	}
	bs.handleEvents(events)
	return nil
}

func (bs *BattleScene) handleEvents(events []event.GameEvent) {
	for _, ev := range events {
		switch e := ev.(type) {
		case event.MessageDisplayRequestGameEvent:
			bs.messageWindow.Push(e.Messages...)
		case event.GameOverGameEvent:
			bs.endedAt = bs.tickCount
			bs.logger.Info("戦闘終了", zap.String("message", e.Result.Message))
		}
	}
}

// Dispose はシーンの破棄時に戦闘の状態をすべて捨てます。
func (bs *BattleScene) Dispose() {
	bs.engine.Dispose()
}

func (bs *BattleScene) Draw(screen *ebiten.Image) {
	screen.Fill(bs.config.UI.Colors.Background)
	for _, b := range bs.engine.Battlers() {
		bs.drawBattler(screen, b)
	}
	bs.timingBar.DrawSession(screen, bs.engine.Defense().Session().View())
	bs.timingBar.DrawTimingGame(screen, bs.engine.TimingGame())
	if bs.engine.Defense().Gate().Active() {
		bs.drawText(screen, "COUNTER WINDOW", 10, 10, bs.config.UI.Colors.PerfectParry)
	}
	bs.ui.Draw(screen)
}

// drawBattler は参加者の名前とHPバーを描画します。敵は上段、味方は下段に並べます。
func (bs *BattleScene) drawBattler(screen *ebiten.Image, b system.Battler) {
	if b.Hidden() {
		return
	}
	settings := component.SettingsComponent.Get(b.Entry())
	stats := component.StatsComponent.Get(b.Entry())

	const w, h = 120, 10
	x := float32(40 + settings.DrawIndex*(w+30))
	y := float32(60)
	c := bs.config.UI.Colors.Team2
	if settings.Team == core.Team1 {
		y = float32(bs.config.UI.Screen.Height) * 0.6
		c = bs.config.UI.Colors.Team1
	}

	name := settings.Name
	if settings.IsLeader {
		name = "*" + name
	}
	bs.drawText(screen, fmt.Sprintf("%s %d/%d", name, stats.HP, stats.MaxHP), float64(x), float64(y)-16, color.White)

	ratio := float32(0)
	if stats.MaxHP > 0 {
		ratio = float32(stats.HP) / float32(stats.MaxHP)
	}
	vector.DrawFilledRect(screen, x, y, w, h, color.RGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xff}, false)
	vector.DrawFilledRect(screen, x, y, w*ratio, h, c, false)
	vector.StrokeRect(screen, x, y, w, h, 1, color.White, false)
}

func (bs *BattleScene) drawText(screen *ebiten.Image, s string, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, bs.resources.Font, op)
}

func (bs *BattleScene) Layout(outsideWidth, outsideHeight int) (int, int) {
	return bs.config.UI.Screen.Width, bs.config.UI.Screen.Height
}
