package parry

import "parry-ebiten/core"

// SessionView は描画や効果音のためのセッションの読み取り専用スナップショットです。
type SessionView struct {
	Active        bool
	Target        core.Battler
	Attacker      core.Battler
	Zones         Zones
	StartTime     float64
	CurrentTime   float64
	InputReceived bool
	InputTime     float64
}

// Elapsed はセッション開始からの経過時間です。
func (v SessionView) Elapsed() float64 {
	return v.CurrentTime - v.StartTime
}

// InputElapsed は入力時点の経過時間です。入力が無い場合は -1 を返します。
func (v SessionView) InputElapsed() float64 {
	if !v.InputReceived {
		return -1
	}
	return v.InputTime - v.StartTime
}

// Observer はパリィ処理の副作用 (UI生成、効果音など) を受け取る表示側のフックです。
// コア自身は何も描画しません。
type Observer interface {
	OnSessionStart(view SessionView)
	OnInputRecorded(view SessionView)
	OnSessionResolved(outcome core.Outcome)
	OnCounterAttack(result core.ActionResult)
	OnGateOpened(endTime float64)
	OnGateClosed(battleEnded bool)
}

// NopObserver は何もしない Observer です。必要なメソッドだけ上書きするために埋め込みます。
type NopObserver struct{}

func (NopObserver) OnSessionStart(SessionView) {}
func (NopObserver) OnInputRecorded(SessionView) {}
func (NopObserver) OnSessionResolved(core.Outcome) {}
func (NopObserver) OnCounterAttack(core.ActionResult) {}
func (NopObserver) OnGateOpened(float64) {}
func (NopObserver) OnGateClosed(bool) {}

// Observers は複数の Observer に順番に通知します。
type Observers []Observer

func (o Observers) OnSessionStart(view SessionView) {
	for _, obs := range o {
		obs.OnSessionStart(view)
	}
}

func (o Observers) OnInputRecorded(view SessionView) {
	for _, obs := range o {
		obs.OnInputRecorded(view)
	}
}

func (o Observers) OnSessionResolved(outcome core.Outcome) {
	for _, obs := range o {
		obs.OnSessionResolved(outcome)
	}
}

func (o Observers) OnCounterAttack(result core.ActionResult) {
	for _, obs := range o {
		obs.OnCounterAttack(result)
	}
}

func (o Observers) OnGateOpened(endTime float64) {
	for _, obs := range o {
		obs.OnGateOpened(endTime)
	}
}

func (o Observers) OnGateClosed(battleEnded bool) {
	for _, obs := range o {
		obs.OnGateClosed(battleEnded)
	}
}
