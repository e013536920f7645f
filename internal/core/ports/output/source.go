package ports

import "context"

// ConfigSource fetches the raw configuration document from wherever it lives.
type ConfigSource interface {
	// Name identifies the source in logs and revision origins.
	Name() string
	Fetch(ctx context.Context) ([]byte, error)
}

// SourceWatcher is implemented by sources that can push change notifications.
// Watch blocks until ctx is done or the watch fails, calling notify after
// every change of the underlying document.
type SourceWatcher interface {
	Watch(ctx context.Context, notify func()) error
}
