// Package server runs the HTTP transport of the note service.
//
// It owns the listener lifecycle: startup and graceful
// shutdown that lets in-flight requests finish.
package server
