// Package ipc exposes the running session over JSON-RPC Unix sockets and
// ships the matching client used by the CLI.
package ipc
