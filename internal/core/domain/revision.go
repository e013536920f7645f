package domain

import (
	"time"

	"github.com/google/uuid"
)

// Revision records an accepted configuration document.
type Revision struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Digest    string    `json:"digest"`
	Origin    string    `json:"origin"`
	Warnings  int       `json:"warnings"`
	Partial   bool      `json:"partial"` // activated with error-severity issues dropped
	Raw       []byte    `json:"-"`
}

// NewRevision creates a new Revision with validation
func NewRevision(digest, origin string, raw []byte) (*Revision, error) {
	if digest == "" {
		return nil, ErrInvalidDocument
	}
	return &Revision{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
		Digest:    digest,
		Origin:    origin,
		Raw:       raw,
	}, nil
}
