package models

import (
	"time"
)

// User represents a user in the system.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	AvatarURL   *string   `json:"avatarUrl,omitempty"`
	Password    string    `json:"-"`
	IsGuest     bool      `json:"isGuest"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SolverStats tracks a user's solving history across sessions.
type SolverStats struct {
	UserID         string     `json:"userId"`
	PuzzlesSolved  int        `json:"puzzlesSolved"`
	AvgSolveTime   float64    `json:"avgSolveTime"` // seconds
	StreakCurrent  int        `json:"streakCurrent"`
	StreakBest     int        `json:"streakBest"`
	TotalPinsSent  int        `json:"totalPinsSent"`
	LastPlayedAt   *time.Time `json:"lastPlayedAt,omitempty"`
}

// UserWithStats combines a user and their solver stats.
type UserWithStats struct {
	User  User        `json:"user"`
	Stats SolverStats `json:"stats"`
}

// Difficulty is an advisory label on a puzzle definition; the solver
// itself is indifferent to it.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// PuzzleStatus tracks a puzzle definition through the catalog pipeline.
type PuzzleStatus string

const (
	PuzzleStatusDraft     PuzzleStatus = "draft"
	PuzzleStatusApproved  PuzzleStatus = "approved"
	PuzzleStatusPublished PuzzleStatus = "published"
)

// BlackCell is a single occupied-layout hole: a coordinate excluded from
// the solvable grid.
type BlackCell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// PrefillLetter is a user- or author-supplied starting letter, passed to
// engine.New as a pin. The engine never mutates these independently of
// the caller.
type PrefillLetter struct {
	X      int  `json:"x"`
	Y      int  `json:"y"`
	Letter byte `json:"letter"`
}

// PuzzleDefinition is the persisted, engine-independent description of a
// grid: its shape, any prefilled letters, and which dictionary indices
// it solves against. An engine.Engine is built fresh from this on
// demand; none of its search state is persisted here.
type PuzzleDefinition struct {
	ID             string          `json:"id"`
	Date           *string         `json:"date,omitempty"` // YYYY-MM-DD, nil for archive-only
	Title          string          `json:"title"`
	Author         string          `json:"author"`
	Difficulty     Difficulty      `json:"difficulty"`
	GridWidth      int             `json:"gridWidth"`
	GridHeight     int             `json:"gridHeight"`
	BlackCells     []BlackCell     `json:"blackCells"`
	Prefilled      []PrefillLetter `json:"prefilled"`
	DictionaryName string          `json:"dictionaryName"`
	Theme          *string         `json:"theme,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	PublishedAt    *time.Time      `json:"publishedAt,omitempty"`
	Status         PuzzleStatus    `json:"status"`
}

// SessionMode distinguishes how participants share one engine.
type SessionMode string

const (
	// SessionModeCollaborative has every participant pin/commit into the
	// same shared Engine; everyone sees everyone's commits.
	SessionModeCollaborative SessionMode = "collaborative"
	// SessionModeRace gives each participant their own Engine over the
	// same PuzzleDefinition; first to Solved wins.
	SessionModeRace SessionMode = "race"
)

// SessionState is the lifecycle of a solving session.
type SessionState string

const (
	SessionStateLobby     SessionState = "lobby"
	SessionStateActive    SessionState = "active"
	SessionStateCompleted SessionState = "completed"
)

// SessionConfig holds session-level options that don't belong to the
// engine itself.
type SessionConfig struct {
	MaxParticipants int    `json:"maxParticipants"`
	IsPublic        bool   `json:"isPublic"`
	SpectatorMode   bool   `json:"spectatorMode"`
	StepBudget      int    `json:"stepBudget"` // passed to engine.Engine.Solve
	TimerMode       string `json:"timerMode"`  // "none", "countdown", "stopwatch"
	TimerSeconds    int    `json:"timerSeconds,omitempty"`
}

// Session represents one multi-user solving room over a PuzzleDefinition.
type Session struct {
	ID         string        `json:"id"`
	Code       string        `json:"code"` // 6-char alphanumeric join code
	HostID     string        `json:"hostId"`
	PuzzleID   string        `json:"puzzleId"`
	Mode       SessionMode   `json:"mode"`
	Config     SessionConfig `json:"config"`
	State      SessionState  `json:"state"`
	CreatedAt  time.Time     `json:"createdAt"`
	StartedAt  *time.Time    `json:"startedAt,omitempty"`
	EndedAt    *time.Time    `json:"endedAt,omitempty"`
}

// Participant is one user attached to a Session.
type Participant struct {
	UserID       string    `json:"userId"`
	SessionID    string    `json:"sessionId"`
	DisplayName  string    `json:"displayName"`
	CursorX      *int      `json:"cursorX,omitempty"`
	CursorY      *int      `json:"cursorY,omitempty"`
	IsSpectator  bool      `json:"isSpectator"`
	IsConnected  bool      `json:"isConnected"`
	PinsCommitted int      `json:"pinsCommitted"`
	Color        string    `json:"color"` // cursor/highlight color
	JoinedAt     time.Time `json:"joinedAt"`
}

// ChatMessage is a chat message sent within a session.
type ChatMessage struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"sessionId"`
	UserID      string    `json:"userId"`
	DisplayName string    `json:"displayName"`
	Text        string    `json:"text"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Reaction is an emoji reaction attached to a slot (line) in a session.
type Reaction struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId"`
	UserID    string    `json:"userId"`
	LineID    int       `json:"lineId"`
	Emoji     string    `json:"emoji"`
	CreatedAt time.Time `json:"createdAt"`
}

// SolveAttempt is a persisted record of one engine.Outcome, keyed to the
// session and user that produced it.
type SolveAttempt struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	PuzzleID    string     `json:"puzzleId"`
	SessionID   *string    `json:"sessionId,omitempty"`
	Status      string     `json:"status"` // engine.Status.String()
	SolveTime   int        `json:"solveTime"` // seconds
	StepsUsed   int        `json:"stepsUsed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// SessionWithDetails bundles a session with its live roster, used for
// the initial REST fetch before a client upgrades to the websocket feed.
type SessionWithDetails struct {
	Session      Session       `json:"session"`
	Participants []Participant `json:"participants"`
	Puzzle       *PuzzleDefinition `json:"puzzle,omitempty"`
}
