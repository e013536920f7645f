package dto

import "model-config-service/internal/core/domain"

type ModelCountsResponse struct {
	Counts map[domain.Category]int `json:"counts"`
	Total  int                     `json:"total"`
}

func ToModelCountsResponse(counts map[domain.Category]int) ModelCountsResponse {
	resp := ModelCountsResponse{Counts: make(map[domain.Category]int, len(counts))}
	for category, n := range counts {
		resp.Counts[category] = n
		resp.Total += n
	}
	return resp
}

type ListModelsResponse struct {
	Category domain.Category `json:"category"`
	Items    []domain.Entity `json:"items"`
	Total    int             `json:"total"`
}

func ToListModelsResponse(category domain.Category, entities []domain.Entity) ListModelsResponse {
	if entities == nil {
		entities = []domain.Entity{}
	}
	return ListModelsResponse{Category: category, Items: entities, Total: len(entities)}
}

type StringsResponse struct {
	Locales []string       `json:"locales"`
	Strings domain.Strings `json:"strings"`
}

type TranslationResponse struct {
	Key    []string `json:"key"`
	Locale string   `json:"locale"`
	Value  string   `json:"value"`
}
