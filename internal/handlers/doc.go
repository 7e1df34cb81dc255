// Package handlers provides HTTP request handlers for the memory watch API.
//
// It includes handlers for:
//   - Reading the cached memory snapshot (GET /api/memory)
//   - Reading and switching the alert gate (GET/PUT /api/alerts)
//   - Health, liveness and readiness probes
//   - Version and build information
//   - Prometheus metrics exposition
package handlers
