// Package session runs the live production loop: one goroutine ticks at the
// configured frame rate, rendering a program frame and mixing an audio
// quantum per tick, then hands both to the output sink. All control-plane
// mutations land between ticks through snapshotted state.
package session
