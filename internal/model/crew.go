package model

import "time"

// CrewRole represents a member's role within a crew
type CrewRole string

const (
	CrewRoleCaptain CrewRole = "captain"
	CrewRoleMember  CrewRole = "member"
)

// Crew represents a player group. Each crew has exactly one captain and
// at most MaxCrewMembers members; only the captain starts sessions.
type Crew struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	CaptainID  string       `json:"captain_id"`
	Members    []CrewMember `json:"members"`
	MaxMembers int          `json:"max_members"`
	IsActive   bool         `json:"is_active"`
	SessionID  string       `json:"session_id,omitempty"` // Latest started session
	CreatedOn  time.Time    `json:"created_on"`
	UpdatedOn  time.Time    `json:"updated_on"`
}

// CrewMember links a user to a crew under a character name
type CrewMember struct {
	ID            string   `json:"id"` // User ID
	Name          string   `json:"name"`
	CharacterName string   `json:"character_name,omitempty"`
	CharacterID   string   `json:"character_id,omitempty"`
	Role          CrewRole `json:"role"`
}

// Crew constraints
const (
	MaxCrewMembers    = 8
	MaxCrewNameLength = 100
)

// HasMember reports whether the given user is aboard
func (c *Crew) HasMember(userID string) bool {
	for _, m := range c.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}

// IsFull reports whether the crew has reached its member limit
func (c *Crew) IsFull() bool {
	return len(c.Members) >= c.MaxMembers
}

// RemoveMember drops the given user from the roster. Returns true when a
// member was actually removed.
func (c *Crew) RemoveMember(userID string) bool {
	for i, m := range c.Members {
		if m.ID == userID {
			c.Members = append(c.Members[:i], c.Members[i+1:]...)
			return true
		}
	}
	return false
}

// CreateCrewRequest represents a request to found a crew
type CreateCrewRequest struct {
	Name          string `json:"name"`
	CharacterName string `json:"character_name"`
	CharacterID   string `json:"character_id,omitempty"`
}

// JoinCrewRequest represents a request to join an existing crew
type JoinCrewRequest struct {
	CharacterName string `json:"character_name"`
	CharacterID   string `json:"character_id,omitempty"`
}

// StartSessionResponse returns the id of the freshly created session
type StartSessionResponse struct {
	SessionID string `json:"session_id"`
}
