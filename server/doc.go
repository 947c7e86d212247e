// Package server exposes grant matching and the grant advisor over HTTP.
//
// Routes:
//
//	POST /match          rank grants for a rep query
//	POST /chat           ask the grant advisor
//	POST /admin/reload   rebuild and publish the indices
//	GET  /healthz        corpus sizes and build time
//
// Error bodies have the form {"detail": "..."}.
package server
