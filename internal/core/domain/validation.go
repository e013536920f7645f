package domain

import (
	"fmt"
	"strings"
)

// ErrorKind classifies a validation issue.
type ErrorKind string

const (
	KindUnknownField          ErrorKind = "UnknownField"
	KindMissingRequiredField  ErrorKind = "MissingRequiredField"
	KindInvalidEnumValue      ErrorKind = "InvalidEnumValue"
	KindTypeMismatch          ErrorKind = "TypeMismatch"
	KindLegacyFormatError     ErrorKind = "LegacyFormatError"
	KindDuplicateName         ErrorKind = "DuplicateName"
	KindInvalidTranslationKey ErrorKind = "InvalidTranslationKey"
)

// Severity tells whether an issue blocks a document from being used as-is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// ValidationError locates one issue inside a raw document.
type ValidationError struct {
	Path     string    `json:"path"`
	Kind     ErrorKind `json:"kind"`
	Detail   string    `json:"detail"`
	Severity Severity  `json:"severity"`
}

// NewValidationError creates an error-severity issue.
func NewValidationError(path string, kind ErrorKind, format string, args ...any) ValidationError {
	return ValidationError{Path: path, Kind: kind, Detail: fmt.Sprintf(format, args...), Severity: SeverityError}
}

func (e ValidationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	}
	return fmt.Sprintf("%s: %s: %s", e.Path, e.Kind, e.Detail)
}

// Under returns a copy of the error with its path nested below prefix.
func (e ValidationError) Under(prefix string) ValidationError {
	switch {
	case e.Path == "":
		e.Path = prefix
	case strings.HasPrefix(e.Path, "["):
		e.Path = prefix + e.Path
	default:
		e.Path = prefix + "." + e.Path
	}
	return e
}

// ValidationErrors is the ordered list of issues found in one document.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	switch len(v) {
	case 0:
		return "no validation errors"
	case 1:
		return v[0].Error()
	}
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, e.Error())
	}
	return fmt.Sprintf("%d validation errors: %s", len(v), strings.Join(parts, "; "))
}

// HasErrors reports whether any issue has error severity.
func (v ValidationErrors) HasErrors() bool {
	for _, e := range v {
		if e.Severity != SeverityWarning {
			return true
		}
	}
	return false
}

// Warnings returns only the warning-severity issues.
func (v ValidationErrors) Warnings() ValidationErrors {
	var out ValidationErrors
	for _, e := range v {
		if e.Severity == SeverityWarning {
			out = append(out, e)
		}
	}
	return out
}

// OfKind returns the issues of one kind.
func (v ValidationErrors) OfKind(kind ErrorKind) ValidationErrors {
	var out ValidationErrors
	for _, e := range v {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}
