// Package handler provides HTTP request handlers for the Grand Line API.
//
// Each handler struct wraps the service it fronts and is registered on the
// ServeMux with Go 1.22 method-and-path patterns, so method dispatch happens
// at the router. Handlers decode the request, call the service, and write
// either a data envelope or an RFC 9457 Problem Details error.
//
// Response helpers from response.go standardize output:
//
//   - WriteData: single resource or collection, wrapped in {"data": ...}
//   - WriteError: RFC 9457 Problem Details
//   - WriteNoContent: 204
//
// Service sentinel errors are translated centrally by MapServiceError.
package handler
