package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"model-config-service/internal/core/domain"
	"model-config-service/internal/testutil"
)

func TestSyncService_Sync(t *testing.T) {
	source := new(testutil.MockConfigSource)
	source.On("Name").Return("file:/etc/onnx-web/models.yaml")
	source.On("Fetch", mock.Anything).Return([]byte(testutil.SampleConfig), nil).Once()

	configSvc := NewConfigService(nil, ConfigServiceOptions{})
	syncSvc := NewSyncService(source, configSvc, 0)

	require.NoError(t, syncSvc.Sync(context.Background()))

	snap, err := configSvc.Current()
	require.NoError(t, err)
	assert.Equal(t, "file:/etc/onnx-web/models.yaml", snap.Revision.Origin)
	source.AssertExpectations(t)
}

func TestSyncService_SyncFetchError(t *testing.T) {
	source := new(testutil.MockConfigSource)
	source.On("Name").Return("s3:models/config.yaml")
	source.On("Fetch", mock.Anything).Return(nil, domain.ErrSourceUnavailable)

	configSvc := NewConfigService(nil, ConfigServiceOptions{})
	err := NewSyncService(source, configSvc, 0).Sync(context.Background())

	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
	_, err = configSvc.Current()
	assert.ErrorIs(t, err, domain.ErrNoActiveConfig)
}

func TestSyncService_SyncRejectedKeepsPrevious(t *testing.T) {
	source := new(testutil.MockConfigSource)
	source.On("Name").Return("configmap:default/onnx-web")
	source.On("Fetch", mock.Anything).Return([]byte(testutil.SampleConfig), nil).Once()
	source.On("Fetch", mock.Anything).Return([]byte(testutil.InvalidConfig), nil).Once()

	configSvc := NewConfigService(nil, ConfigServiceOptions{})
	syncSvc := NewSyncService(source, configSvc, 0)

	require.NoError(t, syncSvc.Sync(context.Background()))
	first, err := configSvc.Current()
	require.NoError(t, err)

	err = syncSvc.Sync(context.Background())
	assert.ErrorIs(t, err, domain.ErrDocumentRejected)

	current, err := configSvc.Current()
	require.NoError(t, err)
	assert.Same(t, first, current)
}

// watchingSource notifies once per Fetch until it runs out of documents.
type watchingSource struct {
	docs    [][]byte
	fetches atomic.Int32
	notify  chan func()
}

func (s *watchingSource) Name() string { return "watching" }

func (s *watchingSource) Fetch(ctx context.Context) ([]byte, error) {
	n := int(s.fetches.Add(1)) - 1
	if n >= len(s.docs) {
		return nil, errors.New("no more documents")
	}
	return s.docs[n], nil
}

func (s *watchingSource) Watch(ctx context.Context, notify func()) error {
	s.notify <- notify
	<-ctx.Done()
	return ctx.Err()
}

func TestSyncService_RunReloadsOnWatch(t *testing.T) {
	source := &watchingSource{
		docs:   [][]byte{[]byte(testutil.SampleConfig), []byte(testutil.DuplicateConfig)},
		notify: make(chan func(), 1),
	}
	configSvc := NewConfigService(nil, ConfigServiceOptions{})
	syncSvc := NewSyncService(source, configSvc, 0)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- syncSvc.Run(ctx) }()

	var notify func()
	select {
	case notify = <-source.notify:
	case <-time.After(2 * time.Second):
		t.Fatal("watch was not started")
	}
	notify()

	assert.Eventually(t, func() bool {
		models, err := configSvc.ListModels(domain.CategoryDiffusion)
		return err == nil && len(models) == 1 && models[0].EntityName() == "a"
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
