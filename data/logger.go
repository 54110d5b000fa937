package data

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger はゲーム全体で使うロガーを生成します。
// debug のときはコンソール形式で Debug レベルまで、それ以外は JSON 形式で Info 以上を出力します。
func NewLogger(debug bool) (*zap.Logger, error) {
	if debug {
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		return cfg.Build()
	}
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Sampling = nil
	return cfg.Build()
}
