package data

import (
	"go.uber.org/zap"
)

// BattleLogger は戦闘中の計算過程をデバッグ目的でログに出力するためのインターフェースです。
// 画面に表示するメッセージの生成は ui 側が担当します。
type BattleLogger interface {
	LogDamage(attackerName, targetName string, base, damage int, multiplier float64)
	LogTimingAttack(attackerName string, success bool, bonus int)
	LogDefeat(name string)
	LogBattleEnd(winner string)
}

// BattleLoggerImpl は zap による BattleLogger の実装です。
type BattleLoggerImpl struct {
	logger *zap.Logger
}

// NewBattleLogger は新しい BattleLoggerImpl のインスタンスを生成します。
func NewBattleLogger(logger *zap.Logger) BattleLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BattleLoggerImpl{logger: logger.Named("battle")}
}

// LogDamage はダメージ計算の結果を出力します。base は倍率を掛ける前の値です。
func (l *BattleLoggerImpl) LogDamage(attackerName, targetName string, base, damage int, multiplier float64) {
	l.logger.Debug("ダメージ計算",
		zap.String("attacker", attackerName),
		zap.String("target", targetName),
		zap.Int("base", base),
		zap.Float64("multiplier", multiplier),
		zap.Int("damage", damage))
}

// LogTimingAttack はタイミング攻撃の結果を出力します。
func (l *BattleLoggerImpl) LogTimingAttack(attackerName string, success bool, bonus int) {
	l.logger.Debug("タイミング攻撃",
		zap.String("attacker", attackerName),
		zap.Bool("success", success),
		zap.Int("bonus", bonus))
}

// LogDefeat は戦闘不能を出力します。
func (l *BattleLoggerImpl) LogDefeat(name string) {
	l.logger.Info("戦闘不能", zap.String("name", name))
}

// LogBattleEnd は勝敗を出力します。
func (l *BattleLoggerImpl) LogBattleEnd(winner string) {
	l.logger.Info("戦闘終了", zap.String("winner", winner))
}
