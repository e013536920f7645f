package services

import (
	"fmt"

	"model-config-service/internal/core/domain"
)

// Registry is a read-only index of the entities of one validated document.
type Registry struct {
	entries map[domain.Category][]domain.Entity
	index   map[domain.Category]map[string]domain.Entity
}

// NewRegistry indexes every category of doc by name. Entities keep their
// document order; a repeated name keeps its first occurrence.
func NewRegistry(doc *domain.ConfigDocument) *Registry {
	r := &Registry{
		entries: make(map[domain.Category][]domain.Entity, len(domain.Categories)),
		index:   make(map[domain.Category]map[string]domain.Entity, len(domain.Categories)),
	}
	for _, category := range domain.Categories {
		byName := map[string]domain.Entity{}
		var ordered []domain.Entity
		if doc != nil {
			for _, entity := range doc.Entities(category) {
				if _, dup := byName[entity.EntityName()]; dup {
					continue
				}
				byName[entity.EntityName()] = entity
				ordered = append(ordered, entity)
			}
		}
		r.entries[category] = ordered
		r.index[category] = byName
	}
	return r
}

// ByName looks up one entity.
func (r *Registry) ByName(category domain.Category, name string) (domain.Entity, error) {
	byName, ok := r.index[category]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownCategory, category)
	}
	entity, ok := byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", domain.ErrEntityNotFound, category, name)
	}
	return entity, nil
}

// ListAll returns the entities of a category in document order.
func (r *Registry) ListAll(category domain.Category) ([]domain.Entity, error) {
	entries, ok := r.entries[category]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownCategory, category)
	}
	out := make([]domain.Entity, len(entries))
	copy(out, entries)
	return out, nil
}

// Counts returns the number of entities per category.
func (r *Registry) Counts() map[domain.Category]int {
	out := make(map[domain.Category]int, len(r.entries))
	for category, entries := range r.entries {
		out[category] = len(entries)
	}
	return out
}
