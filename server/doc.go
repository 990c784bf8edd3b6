// Package server provides the HTTP API: a Gin-backed server with the
// standard middleware stack and the REST routes for managing recordings,
// running the transcription pipeline and reading transcripts.
package server
