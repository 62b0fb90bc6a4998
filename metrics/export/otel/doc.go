// Package otel bridges authgate's in-process metrics into an OpenTelemetry
// meter using observable instruments, so counters are pulled on collection
// instead of pushed on every session event.
package otel
