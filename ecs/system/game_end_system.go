package system

import (
	"github.com/yohamta/donburi"

	"parry-ebiten/core"
	"parry-ebiten/ecs/component"
	"parry-ebiten/ecs/entity"
)

// CheckGameEndSystem はゲーム終了条件をチェックします。
// 戦える参加者 (HPが残っていて非表示でない) が0になったチームの負けです。
// 両チーム同時に全滅した場合はプレイヤー側の負けとします。
func CheckGameEndSystem(world donburi.World) core.GameEndResult {
	team1Count := 0
	team2Count := 0
	entity.BattlerQuery.Each(world, func(entry *donburi.Entry) {
		if !BattlerOf(entry).Alive() {
			return
		}
		if component.SettingsComponent.Get(entry).Team == core.Team1 {
			team1Count++
		} else {
			team2Count++
		}
	})

	switch {
	case team1Count == 0:
		return core.GameEndResult{IsGameOver: true, Winner: core.Team2, Message: "チーム1が全滅！ チーム2の勝利！"}
	case team2Count == 0:
		return core.GameEndResult{IsGameOver: true, Winner: core.Team1, Message: "チーム2が全滅！ チーム1の勝利！"}
	default:
		return core.GameEndResult{Winner: core.TeamNone}
	}
}
