// Package metrics exposes tick-loop health over Prometheus exposition.
package metrics
