// Package model defines domain entities and data structures for the Grand Line API.
//
// The model package contains all struct definitions for domain objects,
// request/response types, and error definitions. Models are used across all
// layers of the application.
//
// # Domain Entities
//
// Core domain entities include:
//
//   - User: Application user with authentication credentials
//   - Character: Player character sheet with attributes, combat stats, and
//     accumulated session history
//   - Crew: Player group led by a captain, the unit a game session is
//     started for
//   - Session: Live game session state (combatant rosters, turn order,
//     round counter, note log, narrative progress)
//   - ForumPost / ForumComment: Community forum content
//
// # JSON Serialization
//
// All models use json struct tags for API serialization:
//
//	type Crew struct {
//	    ID   string `json:"id"`
//	    Name string `json:"name"`
//	}
//
// # Session State Machine
//
// Session carries its combat logic as methods (AddPlayer, AdvanceTurn,
// SortByInitiative, ...). The methods are pure state transitions; the
// service layer persists the whole document after each one.
//
// # Error Types
//
// RFC 9457 Problem Details errors are defined in errors.go:
//
//	type ProblemDetails struct {
//	    Type    string `json:"type"`
//	    Title   string `json:"title"`
//	    Status  int    `json:"status"`
//	    Detail  string `json:"detail"`
//	}
package model
