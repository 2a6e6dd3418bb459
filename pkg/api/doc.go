// Package api exposes the figure pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz                  liveness probe
//	GET  /v1/presets               canvas presets and aliases
//	POST /v1/layout                computed layout as JSON
//	POST /v1/render?format=svg     rendered figure (svg, png, pdf or json)
//
// POST bodies are [pipeline.Options] documents; the "distribution" field
// accepts every shape distribution.Decode understands and an empty body
// lays out the demo counts. Errors are returned as
//
//	{"error": {"code": "LAYOUT_OVERFLOW", "message": "..."}, "request_id": "..."}
//
// with the status derived from the error code.
package api
