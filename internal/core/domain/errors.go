package domain

import "errors"

// ============================================================================
// Configuration Errors
// ============================================================================

var (
	ErrNoActiveConfig   = errors.New("no configuration has been loaded")
	ErrDocumentRejected = errors.New("could not validate configuration")
	ErrInvalidDocument  = errors.New("configuration document could not be decoded")
)

// ============================================================================
// Registry Errors
// ============================================================================

// Not found errors
var (
	ErrEntityNotFound      = errors.New("model not found")
	ErrTranslationNotFound = errors.New("translation not found")
	ErrRevisionNotFound    = errors.New("configuration revision not found")
)

// Validation errors
var (
	ErrUnknownCategory = errors.New("unknown model category")
	ErrInvalidKeyPath  = errors.New("translation key path is required")
)

// ============================================================================
// Adapter Errors
// ============================================================================

var (
	ErrRevisionStoreDisabled = errors.New("revision store is not enabled")
	ErrSourceUnavailable     = errors.New("configuration source unavailable")
)
