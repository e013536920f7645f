package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"model-config-service/internal/codec"
	"model-config-service/internal/core/domain"
	ports "model-config-service/internal/core/ports/output"
	"model-config-service/internal/core/schema"
)

// Snapshot is one activated configuration. It is never modified after it
// has been published.
type Snapshot struct {
	Revision *domain.Revision
	Document *domain.ConfigDocument
	Registry *Registry
	Issues   domain.ValidationErrors
}

type ConfigServiceOptions struct {
	// AllowPartial activates documents with error-severity issues, keeping
	// only their valid entries.
	AllowPartial bool
}

// ConfigService owns the active configuration and swaps it wholesale.
type ConfigService struct {
	revisionRepo ports.RevisionRepository
	allowPartial bool

	current atomic.Pointer[Snapshot]
	loadMu  sync.Mutex
}

// NewConfigService creates the service; revisionRepo may be nil when no
// revision store is configured.
func NewConfigService(revisionRepo ports.RevisionRepository, opts ConfigServiceOptions) *ConfigService {
	return &ConfigService{revisionRepo: revisionRepo, allowPartial: opts.AllowPartial}
}

// Validate decodes and validates a document without activating it.
func (s *ConfigService) Validate(data []byte) (*domain.ConfigDocument, domain.ValidationErrors, error) {
	raw, err := codec.Decode(data)
	if err != nil {
		return nil, nil, err
	}
	doc, issues := schema.Validate(raw)
	return doc, issues, nil
}

// Load validates data and, when acceptable, publishes it as the active
// configuration. A document identical to the active one is not re-activated.
func (s *ConfigService) Load(ctx context.Context, data []byte, origin string) (*Snapshot, domain.ValidationErrors, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	digest := codec.Digest(data).String()
	if cur := s.current.Load(); cur != nil && cur.Revision.Digest == digest {
		log.WithFields(log.Fields{"digest": digest, "origin": origin}).Debug("configuration unchanged")
		return cur, cur.Issues, nil
	}

	doc, issues, err := s.Validate(data)
	if err != nil {
		return nil, nil, err
	}
	if doc == nil || (issues.HasErrors() && !s.allowPartial) {
		log.WithFields(log.Fields{
			"origin": origin,
			"issues": len(issues),
		}).Warn("configuration rejected")
		return nil, issues, domain.ErrDocumentRejected
	}

	revision, err := domain.NewRevision(digest, origin, data)
	if err != nil {
		return nil, issues, err
	}
	revision.Warnings = len(issues.Warnings())
	revision.Partial = issues.HasErrors()

	if s.revisionRepo != nil {
		if err := s.revisionRepo.Create(ctx, revision); err != nil {
			log.WithError(err).WithField("revision", revision.ID).Warn("failed to store configuration revision")
		}
	}

	snap := &Snapshot{
		Revision: revision,
		Document: doc,
		Registry: NewRegistry(doc),
		Issues:   issues,
	}
	s.current.Store(snap)

	log.WithFields(log.Fields{
		"revision": revision.ID,
		"digest":   digest,
		"origin":   origin,
		"warnings": revision.Warnings,
		"partial":  revision.Partial,
	}).Info("configuration activated")

	return snap, issues, nil
}

// Current returns the active snapshot.
func (s *ConfigService) Current() (*Snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, domain.ErrNoActiveConfig
	}
	return snap, nil
}

func (s *ConfigService) GetModel(category domain.Category, name string) (domain.Entity, error) {
	snap, err := s.Current()
	if err != nil {
		return nil, err
	}
	return snap.Registry.ByName(category, name)
}

func (s *ConfigService) ListModels(category domain.Category) ([]domain.Entity, error) {
	snap, err := s.Current()
	if err != nil {
		return nil, err
	}
	return snap.Registry.ListAll(category)
}

// Translate resolves keyPath against the active strings, trying locales in order.
func (s *ConfigService) Translate(locales []string, keyPath []string) (string, string, error) {
	snap, err := s.Current()
	if err != nil {
		return "", "", err
	}
	return ResolveFirst(snap.Document.Strings, locales, keyPath)
}

func (s *ConfigService) ListRevisions(ctx context.Context, filter ports.RevisionListFilter) ([]*domain.Revision, int, error) {
	if s.revisionRepo == nil {
		return nil, 0, domain.ErrRevisionStoreDisabled
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	return s.revisionRepo.List(ctx, filter)
}

func (s *ConfigService) GetRevision(ctx context.Context, id uuid.UUID) (*domain.Revision, error) {
	if s.revisionRepo == nil {
		return nil, domain.ErrRevisionStoreDisabled
	}
	return s.revisionRepo.GetByID(ctx, id)
}

// Restore re-activates a stored revision.
func (s *ConfigService) Restore(ctx context.Context, id uuid.UUID) (*Snapshot, domain.ValidationErrors, error) {
	revision, err := s.GetRevision(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return s.Load(ctx, revision.Raw, fmt.Sprintf("revision:%s", revision.ID))
}
