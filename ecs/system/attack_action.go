package system

import (
	"parry-ebiten/core"
	"parry-ebiten/ecs/component"
)

// counterPower は反撃 (通常攻撃) の威力です。
const counterPower = 100

// AttackAction は参照用戦闘マネージャの単体攻撃です。
type AttackAction struct {
	subject Battler
	name    string
	power   int
	tags    core.ActionTags
	// bonusPercent はタイミング攻撃が成功したときに加算するダメージ (%) です。
	bonusPercent int
}

// NewSkillAction は参加者のスキルから行動を作ります。
func NewSkillAction(subject Battler) *AttackAction {
	skill := component.SkillComponent.Get(subject.Entry())
	return &AttackAction{
		subject: subject,
		name:    skill.Name,
		power:   skill.Power,
		tags:    skill.Tags,
	}
}

func (a *AttackAction) Subject() core.Battler { return a.subject }
func (a *AttackAction) IsHPDamaging() bool { return a.power > 0 }
func (a *AttackAction) Tags() core.ActionTags { return a.tags }
func (a *AttackAction) Name() string { return a.name }
func (a *AttackAction) Power() int { return a.power }
func (a *AttackAction) BonusPercent() int { return a.bonusPercent }
