package model

import (
	"encoding/json"
	"strings"
	"time"
)

// DevilFruitType classifies a character's devil fruit, if any
type DevilFruitType string

const (
	DevilFruitParamecia DevilFruitType = "paramecia"
	DevilFruitZoan      DevilFruitType = "zoan"
	DevilFruitLogia     DevilFruitType = "logia"
	DevilFruitNone      DevilFruitType = "none"
)

// StringList is a list of strings that also accepts a comma separated
// string on input. Legacy clients send "cutlass, flintlock" where newer
// ones send ["cutlass", "flintlock"]; both decode to the same trimmed,
// non-empty list.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler
func (l *StringList) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		*l = normalizeList(items)
		return nil
	}

	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return err
	}
	*l = normalizeList(strings.Split(joined, ","))
	return nil
}

func normalizeList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Character represents a full character sheet
type Character struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Name        string `json:"name"`
	Race        string `json:"race,omitempty"`
	Gender      string `json:"gender,omitempty"`
	Age         int    `json:"age,omitempty"`
	Height      string `json:"height,omitempty"`
	Weight      string `json:"weight,omitempty"`
	Appearance  string `json:"appearance,omitempty"`
	Backstory   string `json:"backstory,omitempty"`
	Personality string `json:"personality,omitempty"`

	// Devil fruit
	DevilFruit          string         `json:"devil_fruit,omitempty"`
	DevilFruitType      DevilFruitType `json:"devil_fruit_type,omitempty"`
	DevilFruitAbilities string         `json:"devil_fruit_abilities,omitempty"`

	// Haki
	HasHakiObservation bool `json:"has_haki_observation"`
	HasHakiArmament    bool `json:"has_haki_armament"`
	HasHakiConqueror   bool `json:"has_haki_conqueror"`
	HakiLevel          int  `json:"haki_level"`

	// Attributes
	Strength     int `json:"strength"`
	Dexterity    int `json:"dexterity"`
	Constitution int `json:"constitution"`
	Intelligence int `json:"intelligence"`
	Wisdom       int `json:"wisdom"`
	Charisma     int `json:"charisma"`

	// Combat stats
	HealthPoints    int `json:"health_points"`
	MaxHealthPoints int `json:"max_health_points"`
	Stamina         int `json:"stamina"`
	MaxStamina      int `json:"max_stamina"`
	Defense         int `json:"defense"`
	Speed           int `json:"speed"`

	// Abilities
	Skills           StringList `json:"skills,omitempty"`
	SpecialAbilities StringList `json:"special_abilities,omitempty"`
	FightingStyle    string     `json:"fighting_style,omitempty"`

	// Equipment
	Weapons   StringList `json:"weapons,omitempty"`
	Equipment StringList `json:"equipment,omitempty"`

	ImageURL string `json:"image_url,omitempty"`

	// Progression
	Level      int    `json:"level"`
	Experience int    `json:"experience"`
	Bounty     int64  `json:"bounty"`
	Crew       string `json:"crew,omitempty"`
	Role       string `json:"role,omitempty"`

	SessionHistory []SessionHistoryEntry `json:"session_history,omitempty"`

	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// SessionHistoryEntry records the outcome of one game session on a
// character sheet. Entries are append-only.
type SessionHistoryEntry struct {
	SessionID     string     `json:"session_id"`
	SessionDate   time.Time  `json:"session_date"`
	StoryProgress string     `json:"story_progress,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	XPGained      int        `json:"xp_gained"`
	ItemsObtained StringList `json:"items_obtained,omitempty"`
}

// Character constraints
const (
	MaxCharacterNameLength = 100
	MaxCharactersPerUser   = 20
)

// Validate checks the character's writable fields
func (c *Character) Validate() []FieldError {
	var errs []FieldError
	name := strings.TrimSpace(c.Name)
	if name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "name is required"})
	} else if len(name) > MaxCharacterNameLength {
		errs = append(errs, FieldError{Field: "name", Message: "name is too long"})
	}
	if c.Level < 0 {
		errs = append(errs, FieldError{Field: "level", Message: "level must not be negative"})
	}
	if c.Experience < 0 {
		errs = append(errs, FieldError{Field: "experience", Message: "experience must not be negative"})
	}
	return errs
}
