// Package app assembles the application: configuration, logging,
// metrics, services, middleware, routing, and the HTTP server
// lifecycle with graceful shutdown.
//
// The wiring order is fixed: config first, then the logger, then the
// metrics pipeline, then services, and finally the router and server.
// Everything downstream receives its dependencies explicitly, so the
// package also serves as the dependency map of the whole program.
package app
