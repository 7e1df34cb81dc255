// Package middleware provides HTTP middleware for the memory watch API.
//
// It includes:
//   - Request logging in W3C Extended Log Format, with optional health check filtering
//   - Prometheus request metrics labelled by route template
//   - Bearer token authentication against a bcrypt hash
package middleware
