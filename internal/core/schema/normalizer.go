package schema

import (
	"fmt"

	"model-config-service/internal/core/domain"
)

// Normalize converts one category item into its canonical object form.
//
// Objects are returned unchanged. Sequences are legacy tuples and are mapped
// position by position onto the category's Legacy ordering; null and missing
// trailing positions stay absent. A malformed tuple yields a
// domain.ValidationError of kind LegacyFormatError whose path is relative to
// the item.
func Normalize(category domain.Category, item any) (map[string]any, error) {
	s, err := SchemaFor(category)
	if err != nil {
		return nil, err
	}

	switch v := item.(type) {
	case map[string]any:
		return v, nil
	case []any:
		return normalizeTuple(s, v)
	default:
		return nil, domain.NewValidationError("", domain.KindTypeMismatch,
			"expected %s object or legacy tuple, got %s", s.Name, describe(item))
	}
}

func normalizeTuple(s *EntitySchema, tuple []any) (map[string]any, error) {
	if s.Legacy == nil {
		return nil, domain.NewValidationError("", domain.KindLegacyFormatError,
			"%s does not accept legacy tuples", s.Name)
	}
	if len(tuple) > len(s.Legacy) {
		return nil, domain.NewValidationError("", domain.KindLegacyFormatError,
			"legacy %s tuple has %d positions, at most %d are allowed", s.Name, len(tuple), len(s.Legacy))
	}

	obj := make(map[string]any, len(tuple))
	for i, name := range s.Legacy {
		field, _ := s.Field(name)
		var value any
		if i < len(tuple) {
			value = tuple[i]
		}

		if value == nil {
			if field.Required {
				return nil, domain.NewValidationError(fmt.Sprintf("[%d]", i), domain.KindLegacyFormatError,
					"required field %q is missing from legacy tuple", name)
			}
			continue
		}
		if !isScalar(value) {
			return nil, domain.NewValidationError(fmt.Sprintf("[%d]", i), domain.KindLegacyFormatError,
				"legacy tuple position for %q must be a scalar, got %s", name, describe(value))
		}
		if field.Required && !matchesType(field.Type, value) {
			return nil, domain.NewValidationError(fmt.Sprintf("[%d]", i), domain.KindLegacyFormatError,
				"legacy tuple position for %q must be %s, got %s", name, field.Type, describe(value))
		}
		obj[name] = value
	}
	return obj, nil
}

func isScalar(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return false
	}
	return true
}

func matchesType(t FieldType, v any) bool {
	switch t {
	case TypeString:
		_, ok := v.(string)
		return ok
	case TypeBool:
		_, ok := v.(bool)
		return ok
	case TypeInteger:
		_, ok := asInt(v)
		return ok
	case TypeNumber:
		_, ok := asFloat(v)
		return ok
	case TypeObjectList:
		_, ok := v.([]any)
		return ok
	}
	return false
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	}
	if _, ok := asFloat(v); ok {
		return "number"
	}
	return fmt.Sprintf("%T", v)
}
