// Package layout computes placement geometry for staged sources.
//
// Arrange is a pure function of (mode, subjects, canvas size): it emits the
// rectangles, fit policies, and clip shapes the compositor draws into, and it
// never errors. Cardinality mismatches degrade to solo framing and
// screen-type sources are always letterboxed so shared content stays
// readable.
package layout
