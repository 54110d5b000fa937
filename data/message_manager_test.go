package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMessageManagerFormat(t *testing.T) {
	mm, err := NewMessageManager([]byte(`[
		{"id": "damage", "text": "{target}に{damage}のダメージ！"},
		{"id": "plain", "text": "戦闘開始"}
	]`), zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "Slimeに12のダメージ！", mm.Format("damage", map[string]any{"target": "Slime", "damage": 12}))
	assert.Equal(t, "戦闘開始", mm.Format("plain", nil))
	assert.Equal(t, "{target}に3のダメージ！", mm.Format("damage", map[string]any{"damage": 3}))
	assert.Equal(t, "unknown", mm.Format("unknown", nil))
}

func TestNewMessageManagerErrors(t *testing.T) {
	_, err := NewMessageManager(nil, nil)
	assert.Error(t, err)
	_, err = NewMessageManager([]byte("{"), nil)
	assert.Error(t, err)
}

func TestShippedMessagesLoad(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", DefaultAssetPaths().Messages))
	require.NoError(t, err)
	mm, err := NewMessageManager(data, zap.NewNop())
	require.NoError(t, err)
	for _, id := range []string{"battle_start", "parry_perfect", "counter_attack", "victory", "defeat"} {
		assert.NotEqual(t, id, mm.Format(id, map[string]any{}), id)
	}
}
