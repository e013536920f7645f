package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"model-config-service/internal/core/domain"
)

func TestDecode_JSON(t *testing.T) {
	raw, err := Decode([]byte(`{"diffusion": [["a", "b"]], "upscaling": [{"name": "x", "source": "y", "scale": 4}]}`))
	require.NoError(t, err)

	doc := raw.(map[string]any)
	assert.Equal(t, []any{[]any{"a", "b"}}, doc["diffusion"])
	assert.Equal(t, []any{map[string]any{"name": "x", "source": "y", "scale": 4}}, doc["upscaling"])
}

func TestDecode_YAML(t *testing.T) {
	raw, err := Decode([]byte(`
correction:
  - [GFPGANv1.3, "https://example.com/GFPGANv1.3.pth"]
strings:
  en:
    errors:
      server: Server Error
    1: numeric key
`))
	require.NoError(t, err)

	doc := raw.(map[string]any)
	assert.Equal(t, []any{[]any{"GFPGANv1.3", "https://example.com/GFPGANv1.3.pth"}}, doc["correction"])
	en := doc["strings"].(map[string]any)["en"].(map[string]any)
	assert.Equal(t, map[string]any{"server": "Server Error"}, en["errors"])
	assert.Equal(t, "numeric key", en["1"])
}

func TestDecode_Empty(t *testing.T) {
	raw, err := Decode([]byte("  \n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{}, raw)
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode([]byte("diffusion: [a, b"))
	assert.ErrorIs(t, err, domain.ErrInvalidDocument)
}

func TestDigest_Stable(t *testing.T) {
	a := Digest([]byte("diffusion: []"))
	b := Digest([]byte("diffusion: []"))
	c := Digest([]byte("diffusion: [[a, b]]"))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NoError(t, a.Validate())
}
