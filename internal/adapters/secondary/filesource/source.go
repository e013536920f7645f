package filesource

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"

	"model-config-service/internal/core/domain"
	output "model-config-service/internal/core/ports/output"
)

type fileSource struct {
	path  string
	watch bool
}

// NewFileSource creates a ConfigSource reading a local YAML or JSON document.
// With watch set, the returned source also implements output.SourceWatcher.
func NewFileSource(path string, watch bool) output.ConfigSource {
	src := &fileSource{path: filepath.Clean(path)}
	if watch {
		return &watchingFileSource{src}
	}
	return src
}

func (s *fileSource) Name() string {
	return "file:" + s.path
}

func (s *fileSource) Fetch(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s does not exist", domain.ErrSourceUnavailable, s.path)
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	return data, nil
}

type watchingFileSource struct {
	*fileSource
}

// Watch watches the parent directory rather than the file itself, so editors
// that replace the file through a rename are still picked up.
func (s *watchingFileSource) Watch(ctx context.Context, notify func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	log.WithField("path", s.path).Debug("watching configuration file")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != s.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				notify()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).WithField("path", s.path).Warn("file watch error")
		}
	}
}
