// Command switchyard runs a live compositing session and controls it over a
// Unix socket: staging sources, switching layouts, editing overlays, and
// saving program snapshots.
package main
