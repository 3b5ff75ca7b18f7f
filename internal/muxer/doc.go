// Package muxer defines the output seam between the tick loop and whatever
// consumes program video and audio. Encoding and container writing live
// behind the Muxer interface; the built-in Preview sink keeps the latest
// frame for snapshots.
package muxer
