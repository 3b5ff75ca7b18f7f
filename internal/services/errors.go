package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTransient marks a source or asset that is not ready yet. The tick
	// skips it and retries next tick; never user-visible.
	ErrTransient = errors.New("transient unavailable")
	// ErrStale marks an active or staged id with no matching source.
	ErrStale = errors.New("stale reference")
	// ErrConfiguration marks a request the current state cannot honor, such
	// as a two-source layout with fewer than two drawable sources.
	ErrConfiguration = errors.New("configuration mismatch")
	// ErrFatalResource marks an unrecoverable failure to create the render
	// target or the audio bus. It is the only marker that propagates out of
	// the session.
	ErrFatalResource = errors.New("fatal resource failure")
	// ErrValidation marks rejected user input (CLI or IPC).
	ErrValidation = errors.New("validation error")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsFatal reports whether err carries the fatal-resource marker. Everything
// else is absorbed within the tick that produced it.
func IsFatal(err error) bool {
	return errors.Is(err, ErrFatalResource)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
