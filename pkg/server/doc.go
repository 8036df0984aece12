// Package server runs netauditor as a long-lived HTTP service.
//
// Endpoints:
//
//	GET  /health      liveness
//	GET  /ready       readiness, 503 until Start has been called
//	GET  /metrics     Prometheus metrics, including the audit metrics
//	POST /v1/audits   run an audit now and return its summary
//	GET  /v1/audits   summary of the most recent audit
//
// Only one audit runs at a time. A trigger that arrives while a run is in
// flight, from the API or the scheduler, waits for that run and receives
// its summary; the response carries X-Audit-Shared: true. Each run still
// processes devices one by one.
//
// With Config.Interval set, audits also run on a fixed schedule.
//
// API endpoints go through the middleware chain: metrics, request id,
// panic recovery, rate limiting (golang.org/x/time/rate) and request
// logging. Errors are returned as ErrorResponse JSON.
//
// Environment:
//
//	PORT                      listen port (default 8080)
//	SHUTDOWN_TIMEOUT_SECONDS  graceful shutdown timeout (default 30)
package server
