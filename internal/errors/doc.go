// Package errors provides structured API error types and RFC 7807
// Problem Details responses for the HTTP layer.
//
// The package exposes two cooperating representations:
//
//   - APIError: an internal error value carrying an HTTP status code,
//     a machine-readable error code, and an optional details payload.
//     Services and handlers return these to signal well-known failure
//     modes such as validation errors or an unavailable dataset.
//
//   - ProblemDetails: the wire format defined by RFC 7807. Every error
//     that reaches a client is rendered as a Problem Details document
//     with a stable type URI, so clients can branch on the type rather
//     than parsing detail strings.
//
// ErrorHandler bridges the two. It logs the failure with the request
// trace identifier, maps the error to a problem type, and renders the
// response. Unrecognized errors become opaque 500 problems so internal
// detail never leaks to clients.
package errors
