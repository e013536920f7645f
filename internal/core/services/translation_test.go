package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"model-config-service/internal/core/domain"
	"model-config-service/internal/core/schema"
)

func testStrings(t *testing.T) domain.Strings {
	t.Helper()
	doc, errs := schema.Validate(map[string]any{
		"strings": map[string]any{
			"en": map[string]any{
				"errors.server": "Server Error",
				"errors": map[string]any{
					"server": map[string]any{"unreachable": "Server unreachable"},
				},
			},
			"de": map[string]any{
				"errors": map[string]any{
					"server": map[string]any{"unreachable": "Server nicht erreichbar"},
				},
			},
		},
	})
	require.Empty(t, errs)
	return doc.Strings
}

func TestResolve(t *testing.T) {
	tree := testStrings(t)

	tests := []struct {
		name     string
		locale   string
		keyPath  []string
		expected string
		err      error
	}{
		{name: "dotted key is one segment", locale: "en", keyPath: []string{"errors.server"}, expected: "Server Error"},
		{name: "nested path", locale: "en", keyPath: []string{"errors", "server", "unreachable"}, expected: "Server unreachable"},
		{name: "other locale", locale: "de", keyPath: []string{"errors", "server", "unreachable"}, expected: "Server nicht erreichbar"},
		{name: "missing segment", locale: "en", keyPath: []string{"errors", "missing"}, err: domain.ErrTranslationNotFound},
		{name: "leaf before end", locale: "en", keyPath: []string{"errors.server", "extra"}, err: domain.ErrTranslationNotFound},
		{name: "branch at end", locale: "en", keyPath: []string{"errors", "server"}, err: domain.ErrTranslationNotFound},
		{name: "unknown locale", locale: "fr", keyPath: []string{"errors.server"}, err: domain.ErrTranslationNotFound},
		{name: "empty path", locale: "en", keyPath: nil, err: domain.ErrInvalidKeyPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := Resolve(tree, tt.locale, tt.keyPath)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, value)
		})
	}
}

func TestResolve_NoImplicitFallback(t *testing.T) {
	tree := testStrings(t)

	_, err := Resolve(tree, "de", []string{"errors.server"})
	assert.ErrorIs(t, err, domain.ErrTranslationNotFound)
}

func TestResolveFirst(t *testing.T) {
	tree := testStrings(t)

	value, locale, err := ResolveFirst(tree, []string{"fr", "de", "en"}, []string{"errors", "server", "unreachable"})
	require.NoError(t, err)
	assert.Equal(t, "de", locale)
	assert.Equal(t, "Server nicht erreichbar", value)

	value, locale, err = ResolveFirst(tree, []string{"de", "en"}, []string{"errors.server"})
	require.NoError(t, err)
	assert.Equal(t, "en", locale)
	assert.Equal(t, "Server Error", value)

	_, _, err = ResolveFirst(tree, []string{"de", "en"}, []string{"nope"})
	assert.ErrorIs(t, err, domain.ErrTranslationNotFound)

	_, _, err = ResolveFirst(tree, nil, []string{"errors.server"})
	assert.ErrorIs(t, err, domain.ErrTranslationNotFound)
}
