// Package server exposes the operational HTTP endpoints of the logmail
// binary: Prometheus metrics, liveness, readiness and build information.
package server
