package dto

import (
	"time"

	"github.com/google/uuid"

	"model-config-service/internal/core/domain"
)

type RevisionResponse struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt string    `json:"created_at"`
	Digest    string    `json:"digest"`
	Origin    string    `json:"origin"`
	Warnings  int       `json:"warnings"`
	Partial   bool      `json:"partial"`
}

func ToRevisionResponse(r *domain.Revision) RevisionResponse {
	return RevisionResponse{
		ID:        r.ID,
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
		Digest:    r.Digest,
		Origin:    r.Origin,
		Warnings:  r.Warnings,
		Partial:   r.Partial,
	}
}

type ListRevisionsResponse struct {
	Items      []RevisionResponse `json:"items"`
	Total      int                `json:"total"`
	PageSize   int                `json:"page_size"`
	NextOffset int                `json:"next_offset"`
}

// ConfigResponse describes the active configuration.
type ConfigResponse struct {
	Revision RevisionResponse        `json:"revision"`
	Document *domain.ConfigDocument  `json:"document"`
	Issues   domain.ValidationErrors `json:"issues"`
}

type ValidateResponse struct {
	Valid    bool                    `json:"valid"`
	Errors   domain.ValidationErrors `json:"errors"`
	Document *domain.ConfigDocument  `json:"document"`
}

// ErrorResponse is returned for failed requests. Errors is only set when a
// document was rejected by validation.
type ErrorResponse struct {
	Error  string                  `json:"error"`
	Errors domain.ValidationErrors `json:"errors,omitempty"`
}

func issuesOrEmpty(issues domain.ValidationErrors) domain.ValidationErrors {
	if issues == nil {
		return domain.ValidationErrors{}
	}
	return issues
}

func ToConfigResponse(rev *domain.Revision, doc *domain.ConfigDocument, issues domain.ValidationErrors) ConfigResponse {
	return ConfigResponse{
		Revision: ToRevisionResponse(rev),
		Document: doc,
		Issues:   issuesOrEmpty(issues),
	}
}

func ToValidateResponse(doc *domain.ConfigDocument, issues domain.ValidationErrors) ValidateResponse {
	return ValidateResponse{
		Valid:    doc != nil && !issues.HasErrors(),
		Errors:   issuesOrEmpty(issues),
		Document: doc,
	}
}
