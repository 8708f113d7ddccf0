package api

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/crossplay/xwordsolve/internal/auth"
	"github.com/crossplay/xwordsolve/internal/db"
	"github.com/crossplay/xwordsolve/internal/middleware"
	"github.com/crossplay/xwordsolve/internal/models"
	"github.com/crossplay/xwordsolve/internal/realtime"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handlers is the REST surface in front of the puzzle catalog, session
// roster, and solve history. The live solving protocol itself (pin,
// commit, undo, solve) only ever runs over the websocket hub per
// spec.md §5 — these handlers cover everything a client needs before
// and around that connection.
type Handlers struct {
	db   *db.Database
	auth *auth.AuthService
	hub  *realtime.Hub
}

func NewHandlers(database *db.Database, authService *auth.AuthService, hub *realtime.Hub) *Handlers {
	return &Handlers{db: database, auth: authService, hub: hub}
}

// --- Auth ---

type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	DisplayName string `json:"displayName" binding:"required,min=2,max=50"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type GuestRequest struct {
	DisplayName string `json:"displayName" binding:"omitempty,max=50"`
}

type AuthResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

func (h *Handlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	existing, err := h.db.GetUserByEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		return
	}

	hashed, err := h.auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
		return
	}

	now := time.Now()
	user := &models.User{
		ID:          uuid.New().String(),
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Password:    hashed,
		IsGuest:     false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.db.CreateUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	token, err := h.auth.GenerateToken(user.ID, user.Email, user.DisplayName, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	c.JSON(http.StatusCreated, AuthResponse{User: *user, Token: token})
}

func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.db.GetUserByEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	if user == nil || !h.auth.CheckPassword(req.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := h.auth.GenerateToken(user.ID, user.Email, user.DisplayName, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	c.JSON(http.StatusOK, AuthResponse{User: *user, Token: token})
}

func (h *Handlers) Guest(c *gin.Context) {
	var req GuestRequest
	c.ShouldBindJSON(&req)

	guestID := uuid.New().String()
	displayName := req.DisplayName
	if displayName == "" {
		displayName = "Guest_" + guestID[:8]
	}

	now := time.Now()
	user := &models.User{
		ID:          guestID,
		Email:       "guest_" + guestID[:8] + "@xwordsolve.local",
		DisplayName: displayName,
		IsGuest:     true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.db.CreateUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create guest user"})
		return
	}

	token, err := h.auth.GenerateToken(user.ID, user.Email, user.DisplayName, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	c.JSON(http.StatusCreated, AuthResponse{User: *user, Token: token})
}

// --- User ---

func (h *Handlers) GetMe(c *gin.Context) {
	claims := middleware.GetAuthUser(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	user, err := h.db.GetUserByID(claims.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handlers) GetMyStats(c *gin.Context) {
	claims := middleware.GetAuthUser(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	stats, err := h.db.GetSolverStats(claims.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	if stats == nil {
		stats = &models.SolverStats{UserID: claims.UserID}
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handlers) GetMyHistory(c *gin.Context) {
	claims := middleware.GetAuthUser(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	attempts, err := h.db.GetUserSolveAttempts(claims.UserID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	c.JSON(http.StatusOK, attempts)
}

type SaveSolveAttemptRequest struct {
	PuzzleID  string `json:"puzzleId" binding:"required"`
	SessionID string `json:"sessionId"`
	Status    string `json:"status" binding:"required"`
	SolveTime int    `json:"solveTime" binding:"required"`
	StepsUsed int     `json:"stepsUsed" binding:"min=0"`
}

// SaveSolveAttempt persists the outcome of a client-run engine.Solve
// (or a completed interactive fill) for history/stats. The engine
// itself never touches the database; this is the one write-back point
// where a finished Outcome becomes a row.
func (h *Handlers) SaveSolveAttempt(c *gin.Context) {
	claims := middleware.GetAuthUser(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req SaveSolveAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	puzzle, err := h.db.GetPuzzleDefinition(req.PuzzleID)
	if err != nil || puzzle == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "puzzle not found"})
		return
	}

	now := time.Now()
	attempt := &models.SolveAttempt{
		ID:          uuid.New().String(),
		UserID:      claims.UserID,
		PuzzleID:    req.PuzzleID,
		Status:      req.Status,
		SolveTime:   req.SolveTime,
		StepsUsed:   req.StepsUsed,
		CompletedAt: &now,
		CreatedAt:   now,
	}
	if req.SessionID != "" {
		attempt.SessionID = &req.SessionID
	}

	if err := h.db.CreateSolveAttempt(attempt); err != nil {
		log.Printf("failed to save solve attempt: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save attempt"})
		return
	}

	if req.Status == "solved" {
		h.bumpSolverStats(claims.UserID, req.SolveTime)
	}

	c.JSON(http.StatusCreated, attempt)
}

func (h *Handlers) bumpSolverStats(userID string, solveTime int) {
	stats, err := h.db.GetSolverStats(userID)
	if err != nil {
		log.Printf("failed to load solver stats for %s: %v", userID, err)
		return
	}
	if stats == nil {
		stats = &models.SolverStats{UserID: userID}
	}

	total := stats.PuzzlesSolved
	stats.AvgSolveTime = (stats.AvgSolveTime*float64(total) + float64(solveTime)) / float64(total+1)
	stats.PuzzlesSolved = total + 1
	stats.StreakCurrent++
	if stats.StreakCurrent > stats.StreakBest {
		stats.StreakBest = stats.StreakCurrent
	}
	now := time.Now()
	stats.LastPlayedAt = &now

	if err := h.db.UpdateSolverStats(stats); err != nil {
		log.Printf("failed to update solver stats for %s: %v", userID, err)
	}
}

// --- Puzzle catalog ---

func (h *Handlers) GetTodayPuzzle(c *gin.Context) {
	puzzle, err := h.db.GetTodayPuzzleDefinition()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	if puzzle == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no puzzle available for today"})
		return
	}
	c.JSON(http.StatusOK, sanitizePuzzleForClient(puzzle))
}

func (h *Handlers) GetPuzzle(c *gin.Context) {
	id := c.Param("id")
	puzzle, err := h.db.GetPuzzleDefinition(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	if puzzle == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "puzzle not found"})
		return
	}
	c.JSON(http.StatusOK, sanitizePuzzleForClient(puzzle))
}

func (h *Handlers) GetPuzzleArchive(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "30"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	puzzles, err := h.db.GetPuzzleArchive(string(models.PuzzleStatusPublished), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	for i := range puzzles {
		puzzles[i] = sanitizePuzzleForClient(puzzles[i])
	}
	c.JSON(http.StatusOK, puzzles)
}

func (h *Handlers) GetRandomPuzzle(c *gin.Context) {
	claims := middleware.GetAuthUser(c)
	userID := ""
	if claims != nil {
		userID = claims.UserID
	}
	difficulty := c.Query("difficulty")

	puzzle, err := h.db.GetRandomPuzzleDefinition(userID, difficulty)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	if puzzle == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no puzzle available"})
		return
	}
	c.JSON(http.StatusOK, sanitizePuzzleForClient(puzzle))
}

type CreatePuzzleRequest struct {
	Title          string                  `json:"title" binding:"required"`
	Author         string                  `json:"author" binding:"required"`
	Difficulty     models.Difficulty       `json:"difficulty" binding:"required"`
	GridWidth      int                     `json:"gridWidth" binding:"required,min=1"`
	GridHeight     int                     `json:"gridHeight" binding:"required,min=1"`
	BlackCells     []models.BlackCell      `json:"blackCells"`
	Prefilled      []models.PrefillLetter  `json:"prefilled"`
	DictionaryName string                  `json:"dictionaryName" binding:"required"`
	Theme          *string                 `json:"theme,omitempty"`
	Date           *string                 `json:"date,omitempty"`
}

// CreatePuzzleDefinition is the admin/editorial entry point that adds a
// new grid to the catalog; it never runs the engine itself (grid
// validity is established the first time a session or CLI solve is
// attempted against it).
func (h *Handlers) CreatePuzzleDefinition(c *gin.Context) {
	var req CreatePuzzleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	puzzle := &models.PuzzleDefinition{
		ID:             uuid.New().String(),
		Date:           req.Date,
		Title:          req.Title,
		Author:         req.Author,
		Difficulty:     req.Difficulty,
		GridWidth:      req.GridWidth,
		GridHeight:     req.GridHeight,
		BlackCells:     req.BlackCells,
		Prefilled:      req.Prefilled,
		DictionaryName: req.DictionaryName,
		Theme:          req.Theme,
		CreatedAt:      time.Now(),
		Status:         models.PuzzleStatusDraft,
	}
	if err := h.db.CreatePuzzleDefinition(puzzle); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create puzzle"})
		return
	}
	c.JSON(http.StatusCreated, puzzle)
}

func (h *Handlers) PublishPuzzle(c *gin.Context) {
	id := c.Param("id")
	if err := h.db.UpdatePuzzleStatus(id, models.PuzzleStatusPublished); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to publish puzzle"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "published"})
}

// sanitizePuzzleForClient strips prefilled answer letters from a
// definition before it reaches a solving client; the engine rebuilds
// those as pins server-side once a session starts.
func sanitizePuzzleForClient(p *models.PuzzleDefinition) *models.PuzzleDefinition {
	clone := *p
	clone.Prefilled = nil
	return &clone
}

// --- Sessions ---

type CreateSessionRequest struct {
	PuzzleID string               `json:"puzzleId" binding:"required"`
	Mode     models.SessionMode   `json:"mode" binding:"required"`
	Config   models.SessionConfig `json:"config"`
}

func (h *Handlers) CreateSession(c *gin.Context) {
	claims := middleware.GetAuthUser(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	puzzle, err := h.db.GetPuzzleDefinition(req.PuzzleID)
	if err != nil || puzzle == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "puzzle not found"})
		return
	}

	if req.Config.MaxParticipants <= 0 {
		req.Config.MaxParticipants = 8
	}

	session := &models.Session{
		ID:        uuid.New().String(),
		Code:      newSessionCode(),
		HostID:    claims.UserID,
		PuzzleID:  req.PuzzleID,
		Mode:      req.Mode,
		Config:    req.Config,
		State:     models.SessionStateLobby,
		CreatedAt: time.Now(),
	}
	if err := h.db.CreateSession(session); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (h *Handlers) GetSession(c *gin.Context) {
	code := c.Param("code")
	session, err := h.db.GetSessionByCode(code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	if session == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	participants, _ := h.db.GetSessionParticipants(session.ID)
	puzzle, _ := h.db.GetPuzzleDefinition(session.PuzzleID)
	if puzzle != nil {
		puzzle = sanitizePuzzleForClient(puzzle)
	}

	c.JSON(http.StatusOK, models.SessionWithDetails{
		Session:      *session,
		Participants: participants,
		Puzzle:       puzzle,
	})
}

func (h *Handlers) StartSession(c *gin.Context) {
	claims := middleware.GetAuthUser(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	code := c.Param("code")
	session, err := h.db.GetSessionByCode(code)
	if err != nil || session == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	if session.HostID != claims.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the host can start the session"})
		return
	}
	if err := h.db.UpdateSessionState(session.ID, models.SessionStateActive); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": models.SessionStateActive})
}

// newSessionCode mints a short, human-typeable join code. Collisions are
// astronomically unlikely at this length/alphabet and are left for the
// UNIQUE constraint on sessions.code to surface as a create error.
func newSessionCode() string {
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	id := uuid.New()
	code := make([]byte, 6)
	for i := range code {
		code[i] = alphabet[int(id[i])%len(alphabet)]
	}
	return string(code)
}

// --- WebSocket upgrade ---

// JoinRealtime upgrades the HTTP connection to a WebSocket and attaches
// it to the hub; all further solving traffic (pin/commit/undo/solve)
// flows over that connection per spec.md §5's single-writer Engine
// contract.
func (h *Handlers) JoinRealtime(c *gin.Context) {
	claims := middleware.GetAuthUser(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	if _, err := realtime.Upgrade(h.hub, c.Writer, c.Request, claims.UserID, claims.DisplayName); err != nil {
		log.Printf("websocket upgrade failed: %v", err)
	}
}
