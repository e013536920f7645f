package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/mitchellh/mapstructure"

	"model-config-service/internal/core/domain"
)

const rootPath = "$"

// Validate checks a raw document against the entity schema and returns the
// normalized document together with every issue found.
//
// Validation never stops at the first issue. Items with error-severity issues
// are left out of the returned document, duplicate names keep their first
// occurrence. Only a root that is not an object aborts validation, in which
// case the returned document is nil.
func Validate(raw any) (*domain.ConfigDocument, domain.ValidationErrors) {
	root, ok := raw.(map[string]any)
	if !ok {
		return nil, domain.ValidationErrors{
			domain.NewValidationError(rootPath, domain.KindTypeMismatch, "document must be an object, got %s", describe(raw)),
		}
	}

	v := &validator{}
	doc := &domain.ConfigDocument{}

	for _, key := range sortedKeys(root) {
		if !isDocumentKey(key) {
			v.add(domain.NewValidationError(rootPath+"."+key, domain.KindUnknownField, "unknown top-level key %q", key))
		}
	}

	v.category(root, domain.CategoryDiffusion, func(obj map[string]any) error {
		var m domain.DiffusionModel
		if err := decodeEntity(obj, &m); err != nil {
			return err
		}
		doc.Diffusion = append(doc.Diffusion, m)
		return nil
	})
	v.category(root, domain.CategoryCorrection, func(obj map[string]any) error {
		var m domain.CorrectionModel
		if err := decodeEntity(obj, &m); err != nil {
			return err
		}
		doc.Correction = append(doc.Correction, m)
		return nil
	})
	v.category(root, domain.CategoryUpscaling, func(obj map[string]any) error {
		var m domain.UpscalingModel
		if err := decodeEntity(obj, &m); err != nil {
			return err
		}
		doc.Upscaling = append(doc.Upscaling, m)
		return nil
	})
	v.category(root, domain.CategoryNetworks, func(obj map[string]any) error {
		var n domain.SourceNetwork
		if err := decodeEntity(obj, &n); err != nil {
			return err
		}
		doc.Networks = append(doc.Networks, n)
		return nil
	})
	v.category(root, domain.CategorySources, func(obj map[string]any) error {
		var s domain.SourceModel
		if err := decodeEntity(obj, &s); err != nil {
			return err
		}
		doc.Sources = append(doc.Sources, s)
		return nil
	})

	if raw, ok := root["strings"]; ok && raw != nil {
		doc.Strings = v.strings(raw)
	}

	return doc, v.errs
}

type validator struct {
	errs domain.ValidationErrors
}

func (v *validator) add(errs ...domain.ValidationError) {
	v.errs = append(v.errs, errs...)
}

// category validates every item of one category and hands the canonical
// object of each valid, non-duplicate item to accept.
func (v *validator) category(root map[string]any, category domain.Category, accept func(map[string]any) error) {
	raw, ok := root[string(category)]
	if !ok || raw == nil {
		return
	}
	path := string(category)
	items, ok := raw.([]any)
	if !ok {
		v.add(domain.NewValidationError(path, domain.KindTypeMismatch, "expected array, got %s", describe(raw)))
		return
	}

	s, _ := SchemaFor(category)
	seen := map[string]string{}
	for i, item := range items {
		itemPath := fmt.Sprintf("%s[%d]", path, i)

		obj, err := Normalize(category, item)
		if err != nil {
			var verr domain.ValidationError
			if errors.As(err, &verr) {
				v.add(verr.Under(itemPath))
			} else {
				v.add(domain.NewValidationError(itemPath, domain.KindLegacyFormatError, "%v", err))
			}
			continue
		}

		canonical, errs := checkObject(s, obj, itemPath)
		if len(errs) > 0 {
			v.add(errs...)
			continue
		}

		name := canonical["name"].(string)
		if first, dup := seen[name]; dup {
			v.add(domain.ValidationError{
				Path:     itemPath + ".name",
				Kind:     domain.KindDuplicateName,
				Detail:   fmt.Sprintf("duplicate name %q in %s, first defined at %s", name, category, first),
				Severity: domain.SeverityWarning,
			})
			continue
		}
		seen[name] = itemPath

		if err := accept(canonical); err != nil {
			v.add(domain.NewValidationError(itemPath, domain.KindTypeMismatch, "%v", err))
		}
	}
}

// checkObject validates obj against s and returns a copy holding canonical
// value types: int for integers, float64 for numbers.
func checkObject(s *EntitySchema, obj map[string]any, path string) (map[string]any, domain.ValidationErrors) {
	var errs domain.ValidationErrors
	out := make(map[string]any, len(obj))

	for _, key := range sortedKeys(obj) {
		if _, ok := s.Field(key); !ok {
			errs = append(errs, domain.NewValidationError(path+"."+key, domain.KindUnknownField,
				"unknown field %q for %s", key, s.Name))
		}
	}

	for _, field := range s.Fields {
		fieldPath := path + "." + field.Name
		value, ok := obj[field.Name]
		if !ok || value == nil {
			if field.Required {
				errs = append(errs, domain.NewValidationError(fieldPath, domain.KindMissingRequiredField,
					"%s requires field %q", s.Name, field.Name))
			}
			continue
		}

		switch field.Type {
		case TypeString:
			str, ok := value.(string)
			if !ok {
				errs = append(errs, typeMismatch(fieldPath, field.Type, value))
				continue
			}
			if field.Required && str == "" {
				errs = append(errs, domain.NewValidationError(fieldPath, domain.KindMissingRequiredField,
					"%s requires a non-empty %q", s.Name, field.Name))
				continue
			}
			if field.Enum != "" && !IsKnownEnumValue(field.Enum, str) {
				errs = append(errs, domain.NewValidationError(fieldPath, domain.KindInvalidEnumValue,
					"%q is not one of %v", str, enums[field.Enum]))
				continue
			}
			out[field.Name] = str
		case TypeBool:
			b, ok := value.(bool)
			if !ok {
				errs = append(errs, typeMismatch(fieldPath, field.Type, value))
				continue
			}
			out[field.Name] = b
		case TypeInteger:
			n, ok := asInt(value)
			if !ok {
				errs = append(errs, typeMismatch(fieldPath, field.Type, value))
				continue
			}
			out[field.Name] = n
		case TypeNumber:
			f, ok := asFloat(value)
			if !ok {
				errs = append(errs, typeMismatch(fieldPath, field.Type, value))
				continue
			}
			out[field.Name] = f
		case TypeObjectList:
			list, ok := value.([]any)
			if !ok {
				errs = append(errs, typeMismatch(fieldPath, field.Type, value))
				continue
			}
			items := make([]any, 0, len(list))
			for i, item := range list {
				itemPath := fmt.Sprintf("%s[%d]", fieldPath, i)
				nested, ok := item.(map[string]any)
				if !ok {
					errs = append(errs, domain.NewValidationError(itemPath, domain.KindTypeMismatch,
						"expected %s object, got %s", field.Items.Name, describe(item)))
					continue
				}
				canonical, nestedErrs := checkObject(field.Items, nested, itemPath)
				errs = append(errs, nestedErrs...)
				items = append(items, canonical)
			}
			if len(items) > 0 {
				out[field.Name] = items
			}
		}
	}

	return out, errs
}

// strings validates the locale table; invalid entries are dropped.
func (v *validator) strings(raw any) domain.Strings {
	table, ok := raw.(map[string]any)
	if !ok {
		v.add(domain.NewValidationError("strings", domain.KindTypeMismatch, "expected object, got %s", describe(raw)))
		return nil
	}

	out := domain.Strings{}
	for _, locale := range sortedKeys(table) {
		path := "strings." + locale
		if !IsLocale(locale) {
			v.add(domain.NewValidationError(path, domain.KindInvalidTranslationKey,
				"locale %q must be a two-letter code", locale))
			continue
		}
		tree, ok := table[locale].(map[string]any)
		if !ok {
			v.add(domain.NewValidationError(path, domain.KindTypeMismatch,
				"expected translation object, got %s", describe(table[locale])))
			continue
		}
		out[locale] = v.translation(tree, path)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func (v *validator) translation(tree map[string]any, path string) domain.TranslationBranch {
	branch := domain.TranslationBranch{}
	for _, key := range sortedKeys(tree) {
		keyPath := path + "." + key
		if !IsTranslationKey(key) {
			v.add(domain.NewValidationError(keyPath, domain.KindInvalidTranslationKey,
				"translation key %q may only contain word characters, dots and hyphens", key))
			continue
		}
		switch node := tree[key].(type) {
		case string:
			branch[key] = domain.TranslationLeaf(node)
		case map[string]any:
			branch[key] = v.translation(node, keyPath)
		default:
			v.add(domain.NewValidationError(keyPath, domain.KindTypeMismatch,
				"translation must be a string or object, got %s", describe(node)))
		}
	}
	return branch
}

func decodeEntity(obj map[string]any, target any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Squash:  true,
		Result:  target,
	})
	if err != nil {
		return err
	}
	return dec.Decode(obj)
}

func typeMismatch(path string, want FieldType, got any) domain.ValidationError {
	return domain.NewValidationError(path, domain.KindTypeMismatch, "expected %s, got %s", want, describe(got))
}

func isDocumentKey(key string) bool {
	for _, k := range domain.DocumentKeys {
		if k == key {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// asInt accepts any integral value that fits in int. Out-of-range values are
// rejected instead of wrapping.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		if n < math.MinInt || n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case uint:
		if uint64(n) > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		if uint64(n) > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case uint64:
		if n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	}
	f, ok := asFloat(v)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	// float64(math.MinInt) is exact; its negation is the first value past MaxInt.
	if f < float64(math.MinInt) || f >= -float64(math.MinInt) {
		return 0, false
	}
	return int(f), true
}

// asFloat accepts finite numbers only. NaN and infinities cannot be
// serialized back to JSON.
func asFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
