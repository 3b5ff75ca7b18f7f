// Package audiograph maintains the always-on mixing graph that runs in
// parallel with video composition. A single MixBus persists for the life of
// the session; per-source taps are connected and disconnected by set
// reconciliation, and mute is expressed by disabling tracks rather than by
// tearing taps down.
package audiograph
