//go:build js && wasm

package dom

import (
	"syscall/js"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBorderHeight(t *testing.T) {
	padded := js.ValueOf(map[string]any{
		"borderBoxSize": []any{map[string]any{"blockSize": 440}},
		"contentRect":   map[string]any{"height": 400},
	})
	assert.Equal(t, 440.0, borderHeight(padded))

	single := js.ValueOf(map[string]any{
		"borderBoxSize": map[string]any{"blockSize": 420},
		"contentRect":   map[string]any{"height": 400},
	})
	assert.Equal(t, 420.0, borderHeight(single))

	legacy := js.ValueOf(map[string]any{
		"contentRect": map[string]any{"height": 400},
	})
	assert.Equal(t, 400.0, borderHeight(legacy))
}
