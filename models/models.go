package models

import "github.com/google/uuid"

// EventType classifies a single match event.
type EventType string

const (
	EventGoal       EventType = "goal"
	EventYellowCard EventType = "yellowCard"
	EventRedCard    EventType = "redCard"
)

// ValidEventType reports whether t is one of the known event kinds.
func ValidEventType(t EventType) bool {
	switch t {
	case EventGoal, EventYellowCard, EventRedCard:
		return true
	}
	return false
}

type Player struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Number      int    `json:"number"`
	Goals       int    `json:"goals"`
	YellowCards int    `json:"yellowCards"`
	RedCards    int    `json:"redCards"`
}

// Team carries a denormalized record (wins/draws/losses/goals). The stored
// values may be stale; league.RecomputeRecord derives them from the match
// log and is the source of truth.
type Team struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Shield       string   `json:"shield"` // base64 data URI
	Players      []Player `json:"players"`
	Wins         int      `json:"wins"`
	Draws        int      `json:"draws"`
	Losses       int      `json:"losses"`
	GoalsFor     int      `json:"goalsFor"`
	GoalsAgainst int      `json:"goalsAgainst"`
}

type Match struct {
	ID         string       `json:"id"`
	HomeTeamID string       `json:"homeTeamId"`
	AwayTeamID string       `json:"awayTeamId"`
	HomeScore  int          `json:"homeScore"`
	AwayScore  int          `json:"awayScore"`
	Date       string       `json:"date"`
	Events     []MatchEvent `json:"events"`
}

// MatchEvent is recorded for the match timeline only; standings are driven
// by HomeScore/AwayScore.
type MatchEvent struct {
	ID       string    `json:"id"`
	Type     EventType `json:"type"`
	PlayerID string    `json:"playerId"`
	TeamID   string    `json:"teamId"`
	Minute   int       `json:"minute"`
}

type AdminAuth struct {
	IsAuthenticated bool   `json:"isAuthenticated"`
	Password        string `json:"password"`
}

// AppData is the whole persisted aggregate. It is always loaded and saved
// as a single unit.
type AppData struct {
	Teams     []Team    `json:"teams"`
	Matches   []Match   `json:"matches"`
	AdminAuth AdminAuth `json:"adminAuth"`
}

func DefaultAppData() AppData {
	return AppData{
		Teams:   []Team{},
		Matches: []Match{},
		AdminAuth: AdminAuth{
			IsAuthenticated: false,
			Password:        "",
		},
	}
}

func NewID() string {
	return uuid.NewString()
}
