package data

import (
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	resource "github.com/quasilyte/ebitengine-resource"
	"go.uber.org/zap"
	"golang.org/x/image/font/basicfont"

	"parry-ebiten/core"
)

// SharedResources はシーン間で共有されるリソースを保持します。
type SharedResources struct {
	Config       Config
	Roster       []core.BattlerData
	Messages     *MessageManager
	Font         text.Face
	Rand         *rand.Rand
	Logger       *zap.Logger
	BattleLogger BattleLogger
	Loader       *resource.Loader
	// Audio は効果音の再生に使います。無い場合は効果音を鳴らしません。
	Audio *audio.Context
	// Watcher は設定ファイルの変更を受け取ります。監視できない環境では nil です。
	Watcher *ConfigWatcher
}

// NewSharedResources は SharedResources を初期化して返します。
func NewSharedResources(config Config, roster []core.BattlerData, messages *MessageManager, loader *resource.Loader, logger *zap.Logger) *SharedResources {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SharedResources{
		Config:       config,
		Roster:       roster,
		Messages:     messages,
		Font:         text.NewGoXFace(basicfont.Face7x13),
		Rand:         rand.New(rand.NewSource(config.Battle.RandomSeed)),
		Logger:       logger,
		BattleLogger: NewBattleLogger(logger),
		Loader:       loader,
	}
}

// RefreshConfig は監視中の設定ファイルに更新があれば取り込みます。
// 戦闘の開始時にだけ呼び、進行中の戦闘には影響させません。
func (s *SharedResources) RefreshConfig() bool {
	if s.Watcher == nil {
		return false
	}
	cfg, ok := s.Watcher.Latest()
	if !ok {
		return false
	}
	cfg.AssetPaths = s.Config.AssetPaths
	s.Config = cfg
	return true
}
