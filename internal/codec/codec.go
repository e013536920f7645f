// Package codec turns configuration bytes into the untyped tree consumed by
// the schema validator.
package codec

import (
	"bytes"
	"fmt"

	"github.com/opencontainers/go-digest"
	"gopkg.in/yaml.v3"

	"model-config-service/internal/core/domain"
)

// Decode parses a JSON or YAML document. Mappings become map[string]any,
// sequences []any. Empty input decodes to an empty document.
func Decode(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]any{}, nil
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDocument, err)
	}
	return normalizeKeys(raw), nil
}

// Digest returns the canonical content digest of a document.
func Digest(data []byte) digest.Digest {
	return digest.Canonical.FromBytes(data)
}

// normalizeKeys rewrites mappings with non-string keys, which YAML allows,
// into string-keyed maps.
func normalizeKeys(v any) any {
	switch node := v.(type) {
	case map[string]any:
		for k, child := range node {
			node[k] = normalizeKeys(child)
		}
		return node
	case map[any]any:
		out := make(map[string]any, len(node))
		for k, child := range node {
			out[fmt.Sprint(k)] = normalizeKeys(child)
		}
		return out
	case []any:
		for i, child := range node {
			node[i] = normalizeKeys(child)
		}
		return node
	}
	return v
}
