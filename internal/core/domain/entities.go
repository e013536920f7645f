package domain

// ============================================================================
// Categories
// ============================================================================

// Category names a top-level collection of the configuration document.
type Category string

const (
	CategoryDiffusion  Category = "diffusion"
	CategoryCorrection Category = "correction"
	CategoryUpscaling  Category = "upscaling"
	CategoryNetworks   Category = "networks"
	CategorySources    Category = "sources"
)

// Categories lists every model category in document order.
var Categories = []Category{
	CategoryDiffusion,
	CategoryCorrection,
	CategoryUpscaling,
	CategoryNetworks,
	CategorySources,
}

// IsValid checks if the category is one of the known collections
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Entity is any validated record held by the registry.
type Entity interface {
	EntityName() string
	EntitySource() string
}

// ============================================================================
// Models
// ============================================================================

// BaseModel carries the fields shared by every runtime model.
type BaseModel struct {
	Name   string `json:"name"`
	Source string `json:"source"`
	Label  string `json:"label,omitempty"`
	Format string `json:"format,omitempty"`
	Half   *bool  `json:"half,omitempty"`
	Opset  *int   `json:"opset,omitempty"`
}

func (m BaseModel) EntityName() string   { return m.Name }
func (m BaseModel) EntitySource() string { return m.Source }

// DiffusionModel is a diffusion pipeline with its optional networks.
type DiffusionModel struct {
	BaseModel
	Pipeline   string                    `json:"pipeline,omitempty"`
	Version    string                    `json:"version,omitempty"`
	Config     string                    `json:"config,omitempty"`
	Hash       string                    `json:"hash,omitempty"`
	ImageSize  *int                      `json:"image_size,omitempty"`
	VAE        string                    `json:"vae,omitempty"`
	Inversions []TextualInversionNetwork `json:"inversions,omitempty"`
	Loras      []LoraNetwork             `json:"loras,omitempty"`
}

// CorrectionModel is a face/image correction model.
type CorrectionModel struct {
	BaseModel
	Model string `json:"model,omitempty"`
}

// UpscalingModel is a super-resolution model with a fixed scale.
type UpscalingModel struct {
	BaseModel
	Model string `json:"model,omitempty"`
	Scale int    `json:"scale"`
}

// ============================================================================
// Networks & Sources
// ============================================================================

type LoraNetwork struct {
	Name   string   `json:"name"`
	Source string   `json:"source"`
	Label  string   `json:"label,omitempty"`
	Weight *float64 `json:"weight,omitempty"`
}

func (n LoraNetwork) EntityName() string   { return n.Name }
func (n LoraNetwork) EntitySource() string { return n.Source }

type TextualInversionNetwork struct {
	Name   string   `json:"name"`
	Source string   `json:"source"`
	Format string   `json:"format,omitempty"`
	Label  string   `json:"label,omitempty"`
	Token  string   `json:"token,omitempty"`
	Weight *float64 `json:"weight,omitempty"`
}

func (n TextualInversionNetwork) EntityName() string   { return n.Name }
func (n TextualInversionNetwork) EntitySource() string { return n.Source }

// SourceModel is a downloadable bundle, not a runtime model.
type SourceModel struct {
	Name   string `json:"name"`
	Source string `json:"source"`
	Dest   string `json:"dest,omitempty"`
	Format string `json:"format,omitempty"`
}

func (s SourceModel) EntityName() string   { return s.Name }
func (s SourceModel) EntitySource() string { return s.Source }

// NetworkType selects the semantic category of a SourceNetwork.
type NetworkType string

const (
	NetworkTypeInversion NetworkType = "inversion"
	NetworkTypeLora      NetworkType = "lora"
)

// SourceNetwork is a downloadable LoRA or textual inversion.
type SourceNetwork struct {
	Name   string      `json:"name"`
	Source string      `json:"source"`
	Type   NetworkType `json:"type"`
	Format string      `json:"format,omitempty"`
	Model  string      `json:"model,omitempty"`
}

func (n SourceNetwork) EntityName() string   { return n.Name }
func (n SourceNetwork) EntitySource() string { return n.Source }
