// Package http implements the HTTP transport layer of the note service.
//
// It exposes route wiring, request handlers, and middleware used by the REST
// API. Cross-cutting concerns such as authentication, the administrator
// guard, request tracing, access logging and response compression are
// handled in this package before requests are delegated to the service layer.
// Handlers take the authenticated username from the request context and pass
// it to every service call explicitly.
package http
