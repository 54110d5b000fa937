package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"go.uber.org/zap"

	"parry-ebiten/data"
	"parry-ebiten/ui"
)

func main() {
	config, err := data.LoadConfig(data.DefaultAssetPaths())
	if err != nil {
		// ロガーがまだ無いので標準の log を使います
		log.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	logger, err := data.NewLogger(config.Debug)
	if err != nil {
		log.Fatalf("ロガーの初期化に失敗しました: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	audioContext := audio.NewContext(44100)
	loader := data.NewLoader(audioContext, config.AssetPaths, logger)

	roster, err := data.LoadRosterResource(loader, logger)
	if err != nil {
		logger.Fatal("ロスターの読み込みに失敗しました", zap.Error(err))
	}
	messages, err := data.LoadMessagesResource(loader, logger)
	if err != nil {
		logger.Fatal("メッセージの読み込みに失敗しました", zap.Error(err))
	}

	res := data.NewSharedResources(config, roster, messages, loader, logger)
	res.Audio = audioContext

	watcher, err := data.NewConfigWatcher(config.AssetPaths, logger)
	if err != nil {
		logger.Warn("設定ファイルの監視を開始できませんでした", zap.Error(err))
	} else {
		res.Watcher = watcher
		defer watcher.Close()
	}

	manager := ui.NewSceneManager(res)

	ebiten.SetTPS(config.Battle.TicksPerSecond)
	ebiten.SetWindowSize(config.UI.Screen.Width, config.UI.Screen.Height)
	ebiten.SetWindowTitle("Parry Battle (bamenn)")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(manager.Sequence); err != nil {
		logger.Fatal("ゲームの実行に失敗しました", zap.Error(err))
	}
}
