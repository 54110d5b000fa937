package data

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

var placeholderRegex = regexp.MustCompile(`{(\w+)}`)

// MessageTemplate は messages.json の1件分です。
type MessageTemplate struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// MessageManager は戦闘メッセージのテンプレートを保持し、{key} を埋めて返します。
type MessageManager struct {
	messages map[string]string
	logger   *zap.Logger
}

// NewMessageManager は JSON のバイト列から MessageManager を生成します。
// ファイルパスではなくバイトデータを受け取るので、リソースローダーからもテストからも同じように使えます。
func NewMessageManager(jsonData []byte, logger *zap.Logger) (*MessageManager, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if jsonData == nil {
		return nil, fmt.Errorf("メッセージデータがnilです")
	}
	var templates []MessageTemplate
	if err := json.Unmarshal(jsonData, &templates); err != nil {
		return nil, fmt.Errorf("メッセージデータのJSONパースに失敗しました: %w", err)
	}

	messages := make(map[string]string, len(templates))
	for _, t := range templates {
		messages[t.ID] = t.Text
	}
	logger.Debug("メッセージをロードしました", zap.Int("count", len(messages)))
	return &MessageManager{messages: messages, logger: logger}, nil
}

// Format は id のテンプレートの {key} を params[key] で置き換えます。
// 見つからない id はそのまま返すので、画面上で気づけます。
func (mm *MessageManager) Format(id string, params map[string]any) string {
	template, ok := mm.messages[id]
	if !ok {
		mm.logger.Warn("メッセージが見つかりません", zap.String("id", id))
		return id
	}
	return placeholderRegex.ReplaceAllStringFunc(template, func(match string) string {
		key := strings.Trim(match, "{}")
		if val, ok := params[key]; ok {
			return fmt.Sprint(val)
		}
		mm.logger.Warn("プレースホルダーに対応する値がありません", zap.String("id", id), zap.String("placeholder", match))
		return match
	})
}
