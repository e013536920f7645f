package httpsource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"model-config-service/internal/core/domain"
	"model-config-service/internal/testutil"
)

func TestSource_Fetch(t *testing.T) {
	var notModified atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("If-None-Match") == `"v1"` {
			notModified.Add(1)
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", `"v1"`)
		_, _ = w.Write([]byte(testutil.SampleConfig))
	}))
	defer srv.Close()

	src := NewSource(srv.URL+"/models.yaml", time.Second)
	assert.Equal(t, "http:"+srv.URL+"/models.yaml", src.Name())

	data, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testutil.SampleConfig, string(data))

	data, err = src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testutil.SampleConfig, string(data))
	assert.Equal(t, int32(1), notModified.Load())
}

func TestSource_FetchErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	_, err := NewSource(srv.URL, time.Second).Fetch(context.Background())
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)

	srv.Close()
	_, err = NewSource(srv.URL, time.Second).Fetch(context.Background())
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
}

func TestSource_FetchTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("ETag", `"big"`)
		_, _ = w.Write([]byte(strings.Repeat("#", 65)))
	}))
	defer srv.Close()

	src := NewSource(srv.URL, time.Second)
	src.maxSize = 64

	_, err := src.Fetch(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidDocument)
	assert.Empty(t, src.etag)
	assert.Nil(t, src.last)

	src.maxSize = 65
	data, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, data, 65)
}
