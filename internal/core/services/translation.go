package services

import (
	"errors"
	"fmt"
	"strings"

	"model-config-service/internal/core/domain"
)

// Resolve descends the translation tree of one locale along keyPath. Keys are
// matched literally, so a key containing dots is a single segment.
func Resolve(tree domain.Strings, locale string, keyPath []string) (string, error) {
	if len(keyPath) == 0 {
		return "", domain.ErrInvalidKeyPath
	}

	branch, ok := tree[locale]
	if !ok {
		return "", notFound(locale, keyPath)
	}

	var node domain.TranslationNode = branch
	for _, segment := range keyPath {
		b, ok := node.(domain.TranslationBranch)
		if !ok {
			return "", notFound(locale, keyPath)
		}
		node, ok = b[segment]
		if !ok {
			return "", notFound(locale, keyPath)
		}
	}

	leaf, ok := node.(domain.TranslationLeaf)
	if !ok {
		return "", notFound(locale, keyPath)
	}
	return string(leaf), nil
}

// ResolveFirst tries each locale in order and returns the first hit together
// with the locale that produced it.
func ResolveFirst(tree domain.Strings, locales []string, keyPath []string) (string, string, error) {
	for _, locale := range locales {
		value, err := Resolve(tree, locale, keyPath)
		if err == nil {
			return value, locale, nil
		}
		if errors.Is(err, domain.ErrInvalidKeyPath) {
			return "", "", err
		}
	}
	return "", "", fmt.Errorf("%w: %s in %v", domain.ErrTranslationNotFound, strings.Join(keyPath, "/"), locales)
}

func notFound(locale string, keyPath []string) error {
	return fmt.Errorf("%w: %s/%s", domain.ErrTranslationNotFound, locale, strings.Join(keyPath, "/"))
}
