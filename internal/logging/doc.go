// Package logging builds the slog loggers used throughout Switchyard.
//
// It provides a human-oriented console handler that folds the component
// attribute into a prefix, a JSON handler for machine consumption, and typed
// attribute helpers so call sites stay terse. Component loggers derived with
// NewComponentLogger keep render-loop log lines grep-able by subsystem.
package logging
