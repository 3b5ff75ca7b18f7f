// Package source owns the registry of live audio/video producers.
//
// A Source pairs a latest-frame mailbox (publisher overwrites, render loop
// polls, nobody blocks) with zero or more pulled PCM audio tracks. The
// registry hands out stable uuid identifiers, stops tracks on removal, and
// implements muting by disabling tracks so the audio graph never has to
// repatch on mute.
//
// The package also ships synthetic demo sources (color bars, slide grid,
// sine tones) and a udev hotplug watcher that reports camera device
// add/remove events without owning capture itself.
package source
