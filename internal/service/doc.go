// Package service implements the business logic of the Grand Line API.
//
// Services sit between handlers and repositories. They own validation,
// authorization decisions (captain-only actions, author-only edits), and
// the session engine's persistence discipline: every combat mutation
// loads the session document, applies one pure state transition, and
// writes the whole document back.
//
// Repository dependencies are declared as interfaces on the consumer
// side, so tests inject function-field mocks without touching storage.
// All errors returned to handlers are the sentinels in errors.go.
package service
