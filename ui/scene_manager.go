package ui

import (
	"github.com/noppikinatta/bamenn"
	"go.uber.org/zap"

	"parry-ebiten/core"
	"parry-ebiten/data"
)

// SceneManagerはbamennのシーケンスと共有リソースを管理します
type SceneManager struct {
	Sequence  *bamenn.Sequence
	resources *data.SharedResources
	current   Scene
	logger    *zap.Logger
}

// NewSceneManagerは新しいシーンマネージャを作成し、タイトルシーンから始めます
func NewSceneManager(res *data.SharedResources) *SceneManager {
	m := &SceneManager{
		resources: res,
		logger:    res.Logger.Named("scene"),
	}
	m.current = NewTitleScene(res, m)
	m.Sequence = bamenn.NewSequence(m.current)
	return m
}

// Current は表示中のシーンを返します。
func (m *SceneManager) Current() Scene {
	return m.current
}

// switchTo は現在のシーンを破棄してから次のシーンへ切り替えます。
func (m *SceneManager) switchTo(name string, next Scene) {
	if d, ok := m.current.(Disposer); ok {
		d.Dispose()
	}
	m.current = next
	m.Sequence.Switch(next)
	m.logger.Debug("シーンを切り替えました", zap.String("scene", name))
}

// GoTo... メソッド群は、各シーンから呼び出され、指定されたシーンに遷移させます

func (m *SceneManager) GoToTitleScene() {
	m.switchTo("title", NewTitleScene(m.resources, m))
}

// GoToBattleScene は設定ファイルの更新を取り込んでから新しい戦闘を始めます。
func (m *SceneManager) GoToBattleScene() {
	if m.resources.RefreshConfig() {
		m.logger.Info("更新された設定を次の戦闘から適用します")
	}
	m.switchTo("battle", NewBattleScene(m.resources, m))
}

func (m *SceneManager) GoToResultScene(result core.GameEndResult) {
	m.switchTo("result", NewResultScene(m.resources, m, result))
}
