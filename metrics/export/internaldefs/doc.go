// Package internaldefs holds the shared metric name/help definitions used
// by the Prometheus and OTel exporters. It is not a public API.
package internaldefs
