package parry

import (
	"regexp"
	"strconv"
	"strings"

	"parry-ebiten/core"
)

var parrySpeedPattern = regexp.MustCompile(`(?i)<parrySpeed:(\d+)>`)

// ParseTags はスキルのメモ欄から <noParry> と <parrySpeed:N> を読み取ります。
// 速度は [50,200] に丸めます。
func ParseTags(note string) core.ActionTags {
	tags := core.ActionTags{SpeedPercent: core.DefaultSpeedPercent}
	if strings.Contains(strings.ToLower(note), "<noparry>") {
		tags.Unparryable = true
	}
	if m := parrySpeedPattern.FindStringSubmatch(note); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			tags.SpeedPercent = v
		}
	}
	tags.SpeedPercent = tags.EffectiveSpeed()
	return tags
}
