// Package server provides the HTTP plumbing shared by the clspec service:
// configuration, routing, middleware, health probes and Prometheus metrics.
//
// Every handler registered through WithHandler runs behind the same chain:
//
//	metrics -> version -> request ID -> panic recovery -> rate limit -> logging -> handler
//
// The /health, /ready and /metrics endpoints are served outside the chain so
// probes and scrapes are never rate limited.
//
// # Usage
//
//	s := server.New(
//	    server.WithName("clspecd"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/v1/match": h.HandleMatch,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// Run blocks until ctx is canceled or the process receives SIGINT or SIGTERM,
// then drains in-flight requests for up to Config.ShutdownTimeout.
//
// # Configuration
//
// NewConfig reads these environment variables:
//
//	PORT                      listen port (default 8080)
//	RATE_LIMIT                requests per second (default 100)
//	RATE_LIMIT_BURST          token bucket burst (default 200)
//	SHUTDOWN_TIMEOUT_SECONDS  graceful shutdown window
//
// # Errors
//
// Error replies use ErrorResponse. WriteErrorFromErr derives the HTTP status
// from the error code carried by a StructuredError or any error implementing
// errors.Structurer, so command line validation failures surface as 400.
//
// # Versioning
//
// Clients may request a version with
// Accept: application/vnd.nvidia.clspec.v1+json. The served version is
// echoed in X-API-Version.
package server
