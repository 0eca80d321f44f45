// Package http contains the HTTP handlers for the dashboard API.
//
// Handlers are thin adapters: they decode and validate requests, call
// the service layer, and render either a success envelope or an RFC
// 7807 problem via the shared error handler. Successful responses use
// the shape
//
//	{"status": "success", "data": ..., "count": N}
//
// and a filter selection that matches no records yields status
// "no_data" instead of an error, since an empty result is a valid
// dashboard state.
package http
