package manifest

import (
	"errors"
	"fmt"
)

// Decode failure kinds. A *DecodeError matches its kind with errors.Is.
var (
	ErrMalformed            = errors.New("malformed manifest")
	ErrUnknownVersion       = errors.New("unknown manifest version")
	ErrMissingMetadataEntry = errors.New("missing metadata entry")
)

// DecodeError reports why a manifest payload could not be resolved.
type DecodeError struct {
	Kind    error
	Version *int // discriminator value, nil when absent or unreadable
	Err     error
}

func (e *DecodeError) Error() string {
	var prefix string
	if e.Version != nil {
		prefix = fmt.Sprintf("%v (manifestVersion %d)", e.Kind, *e.Version)
	} else {
		prefix = e.Kind.Error()
	}
	if e.Err == nil {
		return prefix
	}
	return prefix + ": " + e.Err.Error()
}

func (e *DecodeError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func malformed(version *int, err error) error {
	return &DecodeError{Kind: ErrMalformed, Version: version, Err: err}
}

// MigrationError reports a migration step that could not complete.
type MigrationError struct {
	From Version
	To   Version
	Err  error
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("migrate manifest %s -> %s: %v", e.From, e.To, e.Err)
}

func (e *MigrationError) Unwrap() error { return e.Err }
