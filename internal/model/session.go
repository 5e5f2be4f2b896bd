package model

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Combatant defaults applied when the DM adds a blank roster entry
const (
	DefaultPlayerHP = 50
	DefaultEnemyHP  = 30
	DefaultEnemyAC  = 12

	DefaultPlayerName = "New Player"
	DefaultEnemyName  = "New Enemy"
)

// Player is a player-side combatant in a session
type Player struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	CharacterID string     `json:"character_id,omitempty"` // Links back to a character sheet
	HP          int        `json:"hp"`
	MaxHP       int        `json:"max_hp"`
	Initiative  int        `json:"initiative"`
	Conditions  StringList `json:"conditions"`
}

// Enemy is a DM-controlled combatant in a session
type Enemy struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	HP         int    `json:"hp"`
	MaxHP      int    `json:"max_hp"`
	AC         int    `json:"ac"`
	Initiative int    `json:"initiative"`
}

// SessionNote is one entry in the session log, newest first
type SessionNote struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// DiceRoll records the most recent roll made in a session
type DiceRoll struct {
	Sides    int       `json:"sides"`
	Result   int       `json:"result"`
	RolledOn time.Time `json:"rolled_on"`
}

// Session is the whole live state of a game session. It is persisted as a
// single document and overwritten in full on every mutation; the methods
// below are pure state transitions with no I/O.
type Session struct {
	ID          string        `json:"id"`
	CrewID      string        `json:"crew_id,omitempty"`
	Players     []Player      `json:"players"`
	Enemies     []Enemy       `json:"enemies"`
	Notes       []SessionNote `json:"notes"`
	CurrentTurn int           `json:"current_turn"`
	Round       int           `json:"round"`

	// Narrative fields carried between saves and folded into character
	// sheets by save-progress.
	StoryProgress string     `json:"story_progress,omitempty"`
	SessionNotes  string     `json:"session_notes,omitempty"`
	XPAwarded     int        `json:"xp_awarded,omitempty"`
	ItemsObtained StringList `json:"items_obtained,omitempty"`

	LastRoll *DiceRoll `json:"last_roll,omitempty"`

	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// NewSession creates an empty session at round 1
func NewSession(id, crewID string, at time.Time) *Session {
	return &Session{
		ID:        id,
		CrewID:    crewID,
		Players:   []Player{},
		Enemies:   []Enemy{},
		Notes:     []SessionNote{},
		Round:     1,
		CreatedOn: at,
		UpdatedOn: at,
	}
}

// TotalCombatants returns the combined roster size
func (s *Session) TotalCombatants() int {
	return len(s.Players) + len(s.Enemies)
}

// AddPlayer appends a player with default stats. An empty name gets the
// default placeholder.
func (s *Session) AddPlayer(name string) *Player {
	if name == "" {
		name = DefaultPlayerName
	}
	s.Players = append(s.Players, Player{
		ID:         uuid.NewString(),
		Name:       name,
		HP:         DefaultPlayerHP,
		MaxHP:      DefaultPlayerHP,
		Initiative: 0,
		Conditions: StringList{},
	})
	return &s.Players[len(s.Players)-1]
}

// AddEnemy appends an enemy with default stats
func (s *Session) AddEnemy(name string) *Enemy {
	if name == "" {
		name = DefaultEnemyName
	}
	s.Enemies = append(s.Enemies, Enemy{
		ID:         uuid.NewString(),
		Name:       name,
		HP:         DefaultEnemyHP,
		MaxHP:      DefaultEnemyHP,
		AC:         DefaultEnemyAC,
		Initiative: 0,
	})
	return &s.Enemies[len(s.Enemies)-1]
}

// PlayerUpdate carries the fields of a partial player update. Nil fields
// are left untouched.
type PlayerUpdate struct {
	Name        *string    `json:"name,omitempty"`
	CharacterID *string    `json:"character_id,omitempty"`
	HP          *int       `json:"hp,omitempty"`
	MaxHP       *int       `json:"max_hp,omitempty"`
	Initiative  *int       `json:"initiative,omitempty"`
	Conditions  StringList `json:"conditions,omitempty"`
}

// EnemyUpdate carries the fields of a partial enemy update
type EnemyUpdate struct {
	Name       *string `json:"name,omitempty"`
	HP         *int    `json:"hp,omitempty"`
	MaxHP      *int    `json:"max_hp,omitempty"`
	AC         *int    `json:"ac,omitempty"`
	Initiative *int    `json:"initiative,omitempty"`
}

// UpdatePlayer merges the given fields into the player with the given id.
// Returns false when no such player exists; the session is unchanged.
func (s *Session) UpdatePlayer(id string, u PlayerUpdate) bool {
	for i := range s.Players {
		if s.Players[i].ID != id {
			continue
		}
		p := &s.Players[i]
		if u.Name != nil {
			p.Name = *u.Name
		}
		if u.CharacterID != nil {
			p.CharacterID = *u.CharacterID
		}
		if u.HP != nil {
			p.HP = *u.HP
		}
		if u.MaxHP != nil {
			p.MaxHP = *u.MaxHP
		}
		if u.Initiative != nil {
			p.Initiative = *u.Initiative
		}
		if u.Conditions != nil {
			p.Conditions = u.Conditions
		}
		return true
	}
	return false
}

// UpdateEnemy merges the given fields into the enemy with the given id.
// Returns false when no such enemy exists; the session is unchanged.
func (s *Session) UpdateEnemy(id string, u EnemyUpdate) bool {
	for i := range s.Enemies {
		if s.Enemies[i].ID != id {
			continue
		}
		e := &s.Enemies[i]
		if u.Name != nil {
			e.Name = *u.Name
		}
		if u.HP != nil {
			e.HP = *u.HP
		}
		if u.MaxHP != nil {
			e.MaxHP = *u.MaxHP
		}
		if u.AC != nil {
			e.AC = *u.AC
		}
		if u.Initiative != nil {
			e.Initiative = *u.Initiative
		}
		return true
	}
	return false
}

// RemovePlayer drops the player with the given id and keeps the turn
// pointer inside the shrunken roster. Returns false when no such player
// exists.
func (s *Session) RemovePlayer(id string) bool {
	for i := range s.Players {
		if s.Players[i].ID == id {
			s.Players = append(s.Players[:i], s.Players[i+1:]...)
			s.clampTurn()
			return true
		}
	}
	return false
}

// RemoveEnemy drops the enemy with the given id and keeps the turn
// pointer inside the shrunken roster. Returns false when no such enemy
// exists.
func (s *Session) RemoveEnemy(id string) bool {
	for i := range s.Enemies {
		if s.Enemies[i].ID == id {
			s.Enemies = append(s.Enemies[:i], s.Enemies[i+1:]...)
			s.clampTurn()
			return true
		}
	}
	return false
}

// clampTurn resets the turn pointer when it falls outside the roster
func (s *Session) clampTurn() {
	if s.CurrentTurn >= s.TotalCombatants() {
		s.CurrentTurn = 0
	}
}

// SortByInitiative orders each roster by descending initiative and resets
// the turn pointer. Players and enemies keep their separate blocks (turn
// order walks all players, then all enemies); ties keep their relative
// order, so sorting an already sorted session changes nothing.
func (s *Session) SortByInitiative() {
	sort.SliceStable(s.Players, func(i, j int) bool {
		return s.Players[i].Initiative > s.Players[j].Initiative
	})
	sort.SliceStable(s.Enemies, func(i, j int) bool {
		return s.Enemies[i].Initiative > s.Enemies[j].Initiative
	})
	s.CurrentTurn = 0
}

// AdvanceTurn moves the turn pointer to the next combatant. Wrapping back
// to the first combatant starts a new round and logs it. With an empty
// roster this is a no-op; it returns whether the state changed.
func (s *Session) AdvanceTurn(at time.Time) bool {
	total := s.TotalCombatants()
	if total == 0 {
		return false
	}

	next := (s.CurrentTurn + 1) % total
	if next == 0 {
		s.Round++
		s.AddNote(fmt.Sprintf("Round %d begins", s.Round), at)
	}
	s.CurrentTurn = next
	return true
}

// AddNote prepends a note to the session log, so Notes[0] is always the
// most recent entry.
func (s *Session) AddNote(text string, at time.Time) SessionNote {
	note := SessionNote{
		ID:        uuid.NewString(),
		Text:      text,
		Timestamp: at,
	}
	s.Notes = append([]SessionNote{note}, s.Notes...)
	return note
}

// RecordRoll stores the result as the session's last roll and logs it
func (s *Session) RecordRoll(sides, result int, at time.Time) {
	s.LastRoll = &DiceRoll{Sides: sides, Result: result, RolledOn: at}
	s.AddNote(fmt.Sprintf("Roll: d%d = %d", sides, result), at)
}

// SaveProgressRequest is the payload folding a session's outcome into the
// caller's character sheets
type SaveProgressRequest struct {
	StoryProgress string           `json:"story_progress"`
	SessionNotes  string           `json:"session_notes"`
	XPAwarded     int              `json:"xp_awarded"`
	ItemsObtained StringList       `json:"items_obtained"`
	Players       []ProgressPlayer `json:"players"`
}

// ProgressPlayer identifies one player whose character should receive the
// session outcome. CharacterID wins when present; Name is the legacy
// match key.
type ProgressPlayer struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CharacterID string `json:"character_id,omitempty"`
}

// SaveProgressResponse reports how many character sheets were updated
type SaveProgressResponse struct {
	Updated int `json:"updated"`
}

// RollRequest asks for a die roll within a session
type RollRequest struct {
	Sides int `json:"sides"`
}

// AddNoteRequest appends a manual note to the session log
type AddNoteRequest struct {
	Text string `json:"text"`
}

// AddCombatantRequest names a new roster entry; stats come from defaults
type AddCombatantRequest struct {
	Name string `json:"name"`
}
