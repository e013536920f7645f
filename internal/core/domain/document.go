package domain

import (
	"encoding/json"
	"fmt"
)

// DocumentKeys are the only keys accepted at the root of a configuration document.
var DocumentKeys = []string{
	string(CategoryDiffusion),
	string(CategoryCorrection),
	string(CategoryUpscaling),
	string(CategoryNetworks),
	string(CategorySources),
	"strings",
}

// ConfigDocument is the validated, normalized configuration.
type ConfigDocument struct {
	Diffusion  []DiffusionModel  `json:"diffusion,omitempty"`
	Correction []CorrectionModel `json:"correction,omitempty"`
	Upscaling  []UpscalingModel  `json:"upscaling,omitempty"`
	Networks   []SourceNetwork   `json:"networks,omitempty"`
	Sources    []SourceModel     `json:"sources,omitempty"`
	Strings    Strings           `json:"strings,omitempty"`
}

// Raw renders the document back into the untyped object tree accepted by the validator.
func (d *ConfigDocument) Raw() (map[string]any, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	raw := map[string]any{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	return raw, nil
}

// Entities returns the entities of one category in document order.
func (d *ConfigDocument) Entities(category Category) []Entity {
	var out []Entity
	switch category {
	case CategoryDiffusion:
		for i := range d.Diffusion {
			out = append(out, d.Diffusion[i])
		}
	case CategoryCorrection:
		for i := range d.Correction {
			out = append(out, d.Correction[i])
		}
	case CategoryUpscaling:
		for i := range d.Upscaling {
			out = append(out, d.Upscaling[i])
		}
	case CategoryNetworks:
		for i := range d.Networks {
			out = append(out, d.Networks[i])
		}
	case CategorySources:
		for i := range d.Sources {
			out = append(out, d.Sources[i])
		}
	}
	return out
}
