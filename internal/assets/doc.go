// Package assets resolves uploaded overlay media (logo files, full-screen
// images) into decodable handles with a ready/not-ready signal.
//
// Resolution never blocks the render loop: decodes run on their own
// goroutines and the renderer polls Ready each tick, skipping anything still
// pending. Failed decodes stay invisible; they just never become ready.
package assets
