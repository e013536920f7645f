package httpsource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"model-config-service/internal/core/domain"
)

// maxDocumentSize bounds the response body accepted as a configuration
// document.
const maxDocumentSize = 16 << 20

// Source fetches the configuration document from an HTTP endpoint, such as
// the settings route of a running onnx-web server or a plain static file host.
type Source struct {
	httpClient *http.Client
	url        string
	maxSize    int64

	mu   sync.Mutex
	etag string
	last []byte
}

func NewSource(url string, timeout time.Duration) *Source {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Source{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		url:     url,
		maxSize: maxDocumentSize,
	}
}

func (s *Source) Name() string {
	return "http:" + s.url
}

// Fetch sends a conditional GET; a 304 answer returns the body cached from
// the previous successful fetch.
func (s *Source) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/yaml, application/json;q=0.9")

	s.mu.Lock()
	etag, last := s.etag, s.last
	s.mu.Unlock()
	if etag != "" {
		req.Header.Set("If-None-Match", etag)
	}

	log.WithField("url", s.url).Debug("fetching configuration")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotModified && last != nil:
		return last, nil
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: %s returned %s", domain.ErrSourceUnavailable, s.url, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, s.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if int64(len(data)) > s.maxSize {
		return nil, fmt.Errorf("%w: %s response exceeds %d bytes", domain.ErrInvalidDocument, s.url, s.maxSize)
	}

	s.mu.Lock()
	s.etag = resp.Header.Get("ETag")
	s.last = data
	s.mu.Unlock()

	return data, nil
}
