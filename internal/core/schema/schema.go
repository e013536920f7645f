// Package schema holds the entity schema of the model configuration document
// together with the legacy tuple normalizer and the document validator.
package schema

import (
	"fmt"
	"regexp"

	"model-config-service/internal/core/domain"
)

// FieldType is the value type a field accepts.
type FieldType string

const (
	TypeString     FieldType = "string"
	TypeBool       FieldType = "boolean"
	TypeInteger    FieldType = "integer"
	TypeNumber     FieldType = "number"
	TypeObjectList FieldType = "array"
)

// Enum names a closed set of string values.
type Enum string

const (
	EnumModelFormat     Enum = "model-format"
	EnumPipeline        Enum = "pipeline"
	EnumVersion         Enum = "version"
	EnumCorrectionModel Enum = "correction-model"
	EnumUpscalingModel  Enum = "upscaling-model"
	EnumNetworkType     Enum = "network-type"
	EnumNetworkModel    Enum = "network-model"
	EnumInversionFormat Enum = "inversion-format"
)

var enums = map[Enum][]string{
	EnumModelFormat:     {"bin", "ckpt", "onnx", "pt", "pth", "safetensors"},
	EnumPipeline:        {"controlnet", "img2img", "inpaint", "lpw", "panorama", "pix2pix", "txt2img", "upscale"},
	EnumVersion:         {"v1", "v2", "v2.1"},
	EnumCorrectionModel: {"codeformer", "gfpgan"},
	EnumUpscalingModel:  {"bsrgan", "resrgan", "swinir"},
	EnumNetworkType:     {string(domain.NetworkTypeInversion), string(domain.NetworkTypeLora)},
	EnumNetworkModel:    {"concept", "embeddings", "cloneofsimo", "sd-scripts"},
	EnumInversionFormat: {"concept", "embeddings"},
}

var (
	localePattern = regexp.MustCompile(`^[a-z]{2}$`)
	keyPattern    = regexp.MustCompile(`^[\w.-]+$`)
)

// Field describes one key of an entity object.
type Field struct {
	Name     string
	Type     FieldType
	Required bool
	Enum     Enum
	Items    *EntitySchema
}

// EntitySchema describes the object shape of one entity type.
type EntitySchema struct {
	Name   string
	Fields []Field
	// Legacy is the positional field ordering of the tuple encoding; nil when
	// the entity has no tuple encoding.
	Legacy []string
}

// Field looks up a field by name.
func (s *EntitySchema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Required lists the names of the mandatory fields.
func (s *EntitySchema) Required() []string {
	var out []string
	for _, f := range s.Fields {
		if f.Required {
			out = append(out, f.Name)
		}
	}
	return out
}

// Values returns the members of an enum, or nil for an unknown enum.
func Values(e Enum) []string {
	return append([]string(nil), enums[e]...)
}

// IsKnownEnumValue reports whether value belongs to the closed set e.
func IsKnownEnumValue(e Enum, value string) bool {
	for _, v := range enums[e] {
		if v == value {
			return true
		}
	}
	return false
}

// IsLocale reports whether key is a valid locale code of the strings table.
func IsLocale(key string) bool {
	return localePattern.MatchString(key)
}

// IsTranslationKey reports whether key is a valid translation tree key.
func IsTranslationKey(key string) bool {
	return keyPattern.MatchString(key)
}

// ============================================================================
// Entity schemas
// ============================================================================

func baseFields() []Field {
	return []Field{
		{Name: "name", Type: TypeString, Required: true},
		{Name: "source", Type: TypeString, Required: true},
		{Name: "label", Type: TypeString},
		{Name: "format", Type: TypeString, Enum: EnumModelFormat},
		{Name: "half", Type: TypeBool},
		{Name: "opset", Type: TypeInteger},
	}
}

var (
	LoraNetworkSchema = &EntitySchema{
		Name: "LoraNetwork",
		Fields: []Field{
			{Name: "name", Type: TypeString, Required: true},
			{Name: "source", Type: TypeString, Required: true},
			{Name: "label", Type: TypeString},
			{Name: "weight", Type: TypeNumber},
		},
	}

	TextualInversionNetworkSchema = &EntitySchema{
		Name: "TextualInversionNetwork",
		Fields: []Field{
			{Name: "name", Type: TypeString, Required: true},
			{Name: "source", Type: TypeString, Required: true},
			{Name: "format", Type: TypeString, Enum: EnumInversionFormat},
			{Name: "label", Type: TypeString},
			{Name: "token", Type: TypeString},
			{Name: "weight", Type: TypeNumber},
		},
	}

	DiffusionModelSchema = &EntitySchema{
		Name: "DiffusionModel",
		Fields: append(baseFields(),
			Field{Name: "pipeline", Type: TypeString, Enum: EnumPipeline},
			Field{Name: "version", Type: TypeString, Enum: EnumVersion},
			Field{Name: "config", Type: TypeString},
			Field{Name: "hash", Type: TypeString},
			Field{Name: "image_size", Type: TypeInteger},
			Field{Name: "vae", Type: TypeString},
			Field{Name: "inversions", Type: TypeObjectList, Items: TextualInversionNetworkSchema},
			Field{Name: "loras", Type: TypeObjectList, Items: LoraNetworkSchema},
		),
		Legacy: []string{"name", "source", "format", "half", "opset", "label", "pipeline", "version", "config", "hash", "image_size", "vae"},
	}

	CorrectionModelSchema = &EntitySchema{
		Name: "CorrectionModel",
		Fields: append(baseFields(),
			Field{Name: "model", Type: TypeString, Enum: EnumCorrectionModel},
		),
		Legacy: []string{"name", "source", "format", "half", "opset", "label", "model"},
	}

	UpscalingModelSchema = &EntitySchema{
		Name: "UpscalingModel",
		Fields: append(baseFields(),
			Field{Name: "model", Type: TypeString, Enum: EnumUpscalingModel},
			Field{Name: "scale", Type: TypeInteger, Required: true},
		),
		Legacy: []string{"name", "source", "scale", "format", "half", "opset", "label", "model"},
	}

	SourceNetworkSchema = &EntitySchema{
		Name: "SourceNetwork",
		Fields: []Field{
			{Name: "name", Type: TypeString, Required: true},
			{Name: "source", Type: TypeString, Required: true},
			{Name: "type", Type: TypeString, Required: true, Enum: EnumNetworkType},
			{Name: "format", Type: TypeString, Enum: EnumModelFormat},
			{Name: "model", Type: TypeString, Enum: EnumNetworkModel},
		},
	}

	SourceModelSchema = &EntitySchema{
		Name: "SourceModel",
		Fields: []Field{
			{Name: "name", Type: TypeString, Required: true},
			{Name: "source", Type: TypeString, Required: true},
			{Name: "dest", Type: TypeString},
			{Name: "format", Type: TypeString},
		},
		Legacy: []string{"name", "source", "dest", "format"},
	}
)

var categorySchemas = map[domain.Category]*EntitySchema{
	domain.CategoryDiffusion:  DiffusionModelSchema,
	domain.CategoryCorrection: CorrectionModelSchema,
	domain.CategoryUpscaling:  UpscalingModelSchema,
	domain.CategoryNetworks:   SourceNetworkSchema,
	domain.CategorySources:    SourceModelSchema,
}

// SchemaFor returns the entity schema of a category.
func SchemaFor(category domain.Category) (*EntitySchema, error) {
	s, ok := categorySchemas[category]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownCategory, category)
	}
	return s, nil
}
