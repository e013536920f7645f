package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"model-config-service/internal/core/domain"
	ports "model-config-service/internal/core/ports/output"
)

// SyncService keeps the config service in step with a ConfigSource.
type SyncService struct {
	source       ports.ConfigSource
	configSvc    *ConfigService
	pollInterval time.Duration
}

// NewSyncService creates a sync loop. A zero pollInterval disables polling;
// sources implementing ports.SourceWatcher are watched regardless.
func NewSyncService(source ports.ConfigSource, configSvc *ConfigService, pollInterval time.Duration) *SyncService {
	return &SyncService{source: source, configSvc: configSvc, pollInterval: pollInterval}
}

// Sync fetches the source once and loads it.
func (s *SyncService) Sync(ctx context.Context) error {
	data, err := s.source.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", s.source.Name(), err)
	}

	_, issues, err := s.configSvc.Load(ctx, data, s.source.Name())
	if err != nil {
		if errors.Is(err, domain.ErrDocumentRejected) {
			for _, issue := range issues {
				log.WithFields(log.Fields{
					"path":     issue.Path,
					"kind":     issue.Kind,
					"severity": issue.Severity,
				}).Warn(issue.Detail)
			}
		}
		return fmt.Errorf("load %s: %w", s.source.Name(), err)
	}
	for _, issue := range issues.Warnings() {
		log.WithFields(log.Fields{"path": issue.Path, "kind": issue.Kind}).Warn(issue.Detail)
	}
	return nil
}

// Run syncs once, then re-syncs on watch notifications and poll ticks until
// ctx is done. Failed syncs keep the previous configuration active.
func (s *SyncService) Run(ctx context.Context) error {
	if err := s.Sync(ctx); err != nil {
		log.WithError(err).Error("initial configuration sync failed")
	}

	changes := make(chan struct{}, 1)
	notify := func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	}

	if watcher, ok := s.source.(ports.SourceWatcher); ok {
		go func() {
			if err := watcher.Watch(ctx, notify); err != nil && ctx.Err() == nil {
				log.WithError(err).WithField("source", s.source.Name()).Warn("configuration watch stopped")
			}
		}()
	}

	var tick <-chan time.Time
	if s.pollInterval > 0 {
		ticker := time.NewTicker(s.pollInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
		case <-tick:
		}
		if err := s.Sync(ctx); err != nil {
			log.WithError(err).Error("configuration sync failed")
		}
	}
}
