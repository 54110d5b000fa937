package data

import (
	"bytes"
	"io"
	"os"

	"github.com/hajimehoshi/ebiten/v2/audio"
	resource "github.com/quasilyte/ebitengine-resource"
	"go.uber.org/zap"

	"parry-ebiten/core"
)

// NewLoader はリソースローダーを初期化してそのインスタンスを返します。
// ロスターとメッセージは生データとして登録し、必要になった時点で読み込みます。
func NewLoader(audioContext *audio.Context, assetPaths AssetPaths, logger *zap.Logger) *resource.Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	loader := resource.NewLoader(audioContext)
	loader.OpenAssetFunc = func(path string) io.ReadCloser {
		data, err := os.ReadFile(path)
		if err != nil {
			// ローダーはエラーを返せないため、アセット欠落は起動時の致命的エラーとして扱う
			logger.Fatal("アセットを開けませんでした", zap.String("path", path), zap.Error(err))
		}
		return io.NopCloser(bytes.NewReader(data))
	}

	loader.RawRegistry.Assign(map[resource.RawID]resource.RawInfo{
		RawRosterCSV:    {Path: assetPaths.Roster},
		RawMessagesJSON: {Path: assetPaths.Messages},
	})
	return loader
}

// LoadRosterResource はローダー経由でロスターCSVを読み込みます。
func LoadRosterResource(loader *resource.Loader, logger *zap.Logger) ([]core.BattlerData, error) {
	res := loader.LoadRaw(RawRosterCSV)
	return LoadRoster(bytes.NewReader(res.Data), logger)
}

// LoadMessagesResource はローダー経由でメッセージテンプレートを読み込みます。
func LoadMessagesResource(loader *resource.Loader, logger *zap.Logger) (*MessageManager, error) {
	res := loader.LoadRaw(RawMessagesJSON)
	return NewMessageManager(res.Data, logger)
}
