package parry

import (
	"go.uber.org/zap"

	"parry-ebiten/core"
)

// TickResult は Session.Tick の結果です。
type TickResult struct {
	StillActive bool
	// Resolved はこのティックでタイムアウトにより解決したときに true になります。
	Resolved bool
	Outcome  core.Outcome
}

// Session は進行中の防御1回分の状態機械です。
// 戦闘ごとに1つのスロットとして再利用され、同時に有効なセッションは1つだけです。
type Session struct {
	clock       core.Clock
	base        core.TierConfig
	multipliers core.MultiplierTable
	observer    Observer
	logger      *zap.Logger

	active        bool
	startTime     float64
	currentTime   float64
	target        core.Battler
	attacker      core.Battler
	pendingAction core.Action
	inputReceived bool
	inputTime     float64
	config        core.TierConfig
	zones         Zones
}

// NewSession は新しい Session を生成します。observer と logger は nil でも構いません。
func NewSession(clock core.Clock, base core.TierConfig, multipliers core.MultiplierTable, observer Observer, logger *zap.Logger) *Session {
	if observer == nil {
		observer = NopObserver{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		clock:       clock,
		base:        base,
		multipliers: multipliers,
		observer:    observer,
		logger:      logger,
		config:      base,
		zones:       ComputeZones(base),
	}
}

// Start はパリィのミニゲームを開始します。
// 引数が欠けている場合、行動がパリィ不可の場合、既にセッションが有効な場合は
// 状態を変更せずに false を返します。
func (s *Session) Start(target, attacker core.Battler, action core.Action) bool {
	if target == nil || attacker == nil || action == nil {
		s.logger.Warn("パリィ開始の引数が不正です",
			zap.Bool("target", target != nil),
			zap.Bool("attacker", attacker != nil),
			zap.Bool("action", action != nil))
		return false
	}
	if s.active {
		s.logger.Debug("パリィセッションが既に有効なため開始を拒否しました",
			zap.String("target", target.Name()),
			zap.String("attacker", attacker.Name()))
		return false
	}
	tags := action.Tags()
	if tags.Unparryable {
		s.logger.Debug("パリィ不可の行動です", zap.String("attacker", attacker.Name()))
		return false
	}

	cfg := ScaleConfig(s.base, tags)
	now := s.clock.Now()

	s.active = true
	s.startTime = now
	s.currentTime = now
	s.target = target
	s.attacker = attacker
	s.pendingAction = action
	s.inputReceived = false
	s.inputTime = 0
	s.config = cfg
	s.zones = ComputeZones(cfg)

	s.logger.Debug("パリィセッション開始",
		zap.String("target", target.Name()),
		zap.String("attacker", attacker.Name()),
		zap.Int("speed", tags.EffectiveSpeed()),
		zap.Float64("total", s.zones.Total))
	s.observer.OnSessionStart(s.View())
	return true
}

// RecordInput はパリィ入力を記録します。セッションごとに最初の1回だけが有効です。
func (s *Session) RecordInput(now float64) bool {
	if !s.active || s.inputReceived {
		return false
	}
	s.inputReceived = true
	s.inputTime = now
	s.observer.OnInputRecorded(s.View())
	return true
}

// Tick は現在時刻を更新し、判定時間を過ぎていればタイムアウトとして解決します。
// 解決済みのセッションに対しては何もしません。
func (s *Session) Tick(now float64) TickResult {
	if !s.active {
		return TickResult{}
	}
	s.currentTime = now
	if now-s.startTime >= s.zones.Total {
		return TickResult{Resolved: true, Outcome: s.Resolve()}
	}
	return TickResult{StillActive: true}
}

// Resolve はセッションを終了し、入力タイミングから Outcome を計算します。
// 入力が無ければ NoInput になります。
func (s *Session) Resolve() core.Outcome {
	if !s.active {
		return Resolve(core.TierNone, s.multipliers)
	}
	s.active = false

	tier := core.TierNoInput
	if s.inputReceived {
		tier = s.zones.Classify(s.inputTime - s.startTime)
	}
	outcome := Resolve(tier, s.multipliers)

	s.logger.Debug("パリィセッション解決",
		zap.Stringer("tier", outcome.Tier),
		zap.Float64("multiplier", outcome.DamageMultiplier),
		zap.Float64("elapsed", s.currentTime-s.startTime))
	s.observer.OnSessionResolved(outcome)
	return outcome
}

// Reset は全ての状態を初期値に戻します。
func (s *Session) Reset() {
	s.active = false
	s.startTime = 0
	s.currentTime = 0
	s.target = nil
	s.attacker = nil
	s.pendingAction = nil
	s.inputReceived = false
	s.inputTime = 0
	s.config = s.base
	s.zones = ComputeZones(s.base)
}

func (s *Session) Active() bool { return s.active }
func (s *Session) InputReceived() bool { return s.inputReceived }
func (s *Session) Target() core.Battler { return s.target }
func (s *Session) Attacker() core.Battler { return s.attacker }
func (s *Session) PendingAction() core.Action { return s.pendingAction }
func (s *Session) Config() core.TierConfig { return s.config }
func (s *Session) Zones() Zones { return s.zones }

// View は現在の状態のスナップショットを返します。
func (s *Session) View() SessionView {
	return SessionView{
		Active:        s.active,
		Target:        s.target,
		Attacker:      s.attacker,
		Zones:         s.zones,
		StartTime:     s.startTime,
		CurrentTime:   s.currentTime,
		InputReceived: s.inputReceived,
		InputTime:     s.inputTime,
	}
}
