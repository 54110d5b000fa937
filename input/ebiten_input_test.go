package input

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"parry-ebiten/core"
)

func TestEveryParryKeyIsBound(t *testing.T) {
	for _, key := range core.ParryKeys {
		assert.True(t, Bound(key), key)
	}
	assert.False(t, Bound("escape"))
}
