// Package services defines the shared error taxonomy for the studio core.
//
// The sentinel markers mirror the failure classes the render loop
// distinguishes: transient unavailability (retry next tick), stale references
// (drop silently), configuration mismatches (degrade gracefully), and fatal
// resource failures (the only class that propagates to the session).
//
// Use Wrap when returning errors from component code so callers can classify
// failures with errors.Is instead of string matching.
package services
