package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"model-config-service/internal/core/domain"
	"model-config-service/internal/core/schema"
)

func TestRegistry_ByNameAndListAll(t *testing.T) {
	doc := &domain.ConfigDocument{
		Diffusion: []domain.DiffusionModel{
			{BaseModel: domain.BaseModel{Name: "b", Source: "s-b"}},
			{BaseModel: domain.BaseModel{Name: "a", Source: "s-a"}},
		},
		Upscaling: []domain.UpscalingModel{
			{BaseModel: domain.BaseModel{Name: "x4", Source: "s"}, Scale: 4},
		},
		Networks: []domain.SourceNetwork{
			{Name: "arch", Source: "civitai/arch", Type: domain.NetworkTypeLora},
		},
	}
	r := NewRegistry(doc)

	entity, err := r.ByName(domain.CategoryUpscaling, "x4")
	require.NoError(t, err)
	assert.Equal(t, 4, entity.(domain.UpscalingModel).Scale)

	all, err := r.ListAll(domain.CategoryDiffusion)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "b", all[0].EntityName())
	assert.Equal(t, "a", all[1].EntityName())

	empty, err := r.ListAll(domain.CategorySources)
	require.NoError(t, err)
	assert.Empty(t, empty)

	assert.Equal(t, map[domain.Category]int{
		domain.CategoryDiffusion:  2,
		domain.CategoryCorrection: 0,
		domain.CategoryUpscaling:  1,
		domain.CategoryNetworks:   1,
		domain.CategorySources:    0,
	}, r.Counts())
}

func TestRegistry_Errors(t *testing.T) {
	r := NewRegistry(&domain.ConfigDocument{})

	_, err := r.ByName(domain.CategoryDiffusion, "missing")
	assert.ErrorIs(t, err, domain.ErrEntityNotFound)

	_, err = r.ByName(domain.Category("vae"), "x")
	assert.ErrorIs(t, err, domain.ErrUnknownCategory)

	_, err = r.ListAll(domain.Category("strings"))
	assert.ErrorIs(t, err, domain.ErrUnknownCategory)
}

func TestRegistry_ListAllReturnsCopy(t *testing.T) {
	r := NewRegistry(&domain.ConfigDocument{
		Sources: []domain.SourceModel{{Name: "a", Source: "s"}},
	})

	all, err := r.ListAll(domain.CategorySources)
	require.NoError(t, err)
	all[0] = domain.SourceModel{Name: "changed"}

	again, err := r.ListAll(domain.CategorySources)
	require.NoError(t, err)
	assert.Equal(t, "a", again[0].EntityName())
}

func TestRegistry_DuplicatesFromValidation(t *testing.T) {
	doc, errs := schema.Validate(map[string]any{
		"diffusion": []any{
			map[string]any{"name": "a", "source": "s1"},
			map[string]any{"name": "a", "source": "s2"},
		},
	})
	require.Len(t, errs.OfKind(domain.KindDuplicateName), 1)

	all, err := NewRegistry(doc).ListAll(domain.CategoryDiffusion)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "s1", all[0].EntitySource())
}

func TestRegistry_FirstOccurrenceWins(t *testing.T) {
	r := NewRegistry(&domain.ConfigDocument{
		Correction: []domain.CorrectionModel{
			{BaseModel: domain.BaseModel{Name: "gfpgan", Source: "first"}},
			{BaseModel: domain.BaseModel{Name: "gfpgan", Source: "second"}},
		},
	})

	entity, err := r.ByName(domain.CategoryCorrection, "gfpgan")
	require.NoError(t, err)
	assert.Equal(t, "first", entity.EntitySource())
}
