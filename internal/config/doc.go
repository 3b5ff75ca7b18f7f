// Package config loads, normalizes, and validates Switchyard configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and derives the state-directory artifacts
// (settings database, IPC socket, lock file) every subsystem shares.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical layout names, and clear validation errors.
package config
