// Package settings persists editor-facing state (overlay configuration and
// the default layout) in sqlite so sessions restart where they left off.
package settings
