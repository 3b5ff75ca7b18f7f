// Package compositor assembles the program frame each tick: staged sources
// are resolved, arranged by the active layout, optionally blurred, color
// adjusted, and finished with the overlay stack. Per-tick failures degrade
// the frame instead of stopping the loop.
package compositor
