// Package api exposes a compiled command grammar over HTTP.
//
// The service compiles one definition at start-up, named by the
// CLSPEC_DEFINITION environment variable (a file path, an http(s) URL or a
// cm://namespace/name ConfigMap reference), and shares the resulting grammar
// read-only across requests. Routing, middleware and health probes come from
// pkg/server.
//
// # Endpoints
//
//	POST /v1/match    match {"args": [...]} and return the resolved command line
//	GET  /v1/help     render help; query: view=full|usage|topics, hidden=bool
//	GET  /v1/grammar  compiled grammar summary; query: format=json|yaml|table
//
// A rejected command line is answered with 400 and an error body whose code
// is the validation failure (UNKNOWN_OPTION, MISSING_REQUIRED and so on) and
// whose details locate the offending token.
//
// # Usage
//
//	package main
//
//	import (
//	    "log"
//
//	    "github.com/NVIDIA/clspec/pkg/api"
//	)
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// Example request:
//
//	curl -s -X POST localhost:8080/v1/match \
//	    -H 'Content-Type: application/json' \
//	    -d '{"args": ["-f", "a.txt", "-verbose"]}'
//
// # Metrics
//
// clspec_match_total{outcome} counts match requests by outcome in addition to
// the request metrics recorded by pkg/server.
package api
