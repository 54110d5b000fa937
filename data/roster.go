package data

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"parry-ebiten/core"
)

// ErrInvalidRoster はロスターが戦闘を開始できない内容のときに返されます。
var ErrInvalidRoster = errors.New("invalid roster")

const rosterColumns = 11

// LoadRoster はロスターCSVを読み込みます。
// 列は id,name,team,is_leader,hp,attack,defense,agility,skill_name,skill_power,skill_note です。
// 壊れた行は警告を出して読み飛ばします。どちらかのチームが空ならエラーです。
func LoadRoster(r io.Reader, logger *zap.Logger) ([]core.BattlerData, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	if _, err := reader.Read(); err != nil { // ヘッダー
		return nil, fmt.Errorf("ロスターのヘッダーを読み込めませんでした: %w", err)
	}

	var roster []core.BattlerData
	teams := map[core.TeamID]int{}
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Warn("ロスターの行を読み込めませんでした", zap.Int("line", line), zap.Error(err))
			continue
		}
		if len(record) < rosterColumns-1 {
			logger.Warn("列が足りない行を読み飛ばします", zap.Int("line", line), zap.Strings("record", record))
			continue
		}
		b := core.BattlerData{
			ID:         strings.TrimSpace(record[0]),
			Name:       strings.TrimSpace(record[1]),
			Team:       core.TeamID(parseInt(record[2], 0)),
			IsLeader:   parseBool(record[3]),
			HP:         parseInt(record[4], 1),
			Attack:     parseInt(record[5], 0),
			Defense:    parseInt(record[6], 0),
			Agility:    parseInt(record[7], 0),
			SkillName:  strings.TrimSpace(record[8]),
			SkillPower: parseInt(record[9], 100),
		}
		if len(record) >= rosterColumns {
			b.SkillNote = record[10]
		}
		if b.ID == "" || b.HP <= 0 || (b.Team != core.Team1 && b.Team != core.Team2) {
			logger.Warn("不正な行を読み飛ばします", zap.Int("line", line), zap.String("id", b.ID))
			continue
		}
		roster = append(roster, b)
		teams[b.Team]++
	}

	if teams[core.Team1] == 0 || teams[core.Team2] == 0 {
		return nil, fmt.Errorf("%w: 両方のチームに1体以上必要です (team1=%d, team2=%d)", ErrInvalidRoster, teams[core.Team1], teams[core.Team2])
	}
	return roster, nil
}

// parseInt は文字列をintに変換します。変換できない場合はdefaultValueを返します。
func parseInt(s string, defaultValue int) int {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return defaultValue
	}
	return i
}

// parseBool は "true" (大文字小文字を区別しない) の場合のみtrueを返します。
func parseBool(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}
