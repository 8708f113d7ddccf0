// Package realtime broadcasts engine.Engine state to collaborating
// websocket clients. It never runs solver logic itself: every mutation
// it accepts (pin, commit, undo, solve) is forwarded to exactly one
// engine.Engine per session (or per participant, in Race mode), guarded
// by that session's mutex, matching the engine's single-writer
// contract.
package realtime

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/crossplay/xwordsolve/internal/db"
	"github.com/crossplay/xwordsolve/internal/models"
	"github.com/crossplay/xwordsolve/pkg/dictionary"
	"github.com/crossplay/xwordsolve/pkg/engine"
	"github.com/crossplay/xwordsolve/pkg/letters"
	"github.com/crossplay/xwordsolve/pkg/puzzlegrid"
	"github.com/google/uuid"
)

// MessageType identifies the shape of Message.Payload.
type MessageType string

const (
	// Client to server
	MsgJoinSession  MessageType = "join_session"
	MsgLeaveSession MessageType = "leave_session"
	MsgPin          MessageType = "pin"
	MsgCommit       MessageType = "commit"
	MsgUndo         MessageType = "undo"
	MsgSolve        MessageType = "solve"
	MsgPrefilter    MessageType = "prefilter"
	MsgCursorMove   MessageType = "cursor_move"
	MsgSendMessage  MessageType = "send_message"
	MsgReaction     MessageType = "reaction"

	// Server to client
	MsgSessionState     MessageType = "session_state"
	MsgParticipantJoin  MessageType = "participant_joined"
	MsgParticipantLeave MessageType = "participant_left"
	MsgSnapshotUpdate   MessageType = "snapshot_update"
	MsgCursorMoved      MessageType = "cursor_moved"
	MsgNewMessage       MessageType = "new_message"
	MsgReactionAdded    MessageType = "reaction_added"
	MsgSolveResult      MessageType = "solve_result"
	MsgRaceProgress     MessageType = "race_progress"
	MsgError            MessageType = "error"
)

// Message is the envelope for every frame exchanged over the socket.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Inbound payloads

type JoinSessionPayload struct {
	SessionCode string `json:"sessionCode"`
	DisplayName string `json:"displayName"`
	IsSpectator bool    `json:"isSpectator"`
}

type CellLetterPayload struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Letter string `json:"letter"` // single uppercase A-Z character
}

type SolvePayload struct {
	Budget int `json:"budget"`
}

type CursorMovePayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type SendMessagePayload struct {
	Text string `json:"text"`
}

type ReactionPayload struct {
	LineID int    `json:"lineId"`
	Emoji  string `json:"emoji"`
}

// Outbound payloads

// CandidateWire is the wire form of one (letter, count) entry of a
// cell's joint letter distribution.
type CandidateWire struct {
	Letter string `json:"letter"`
	Count  int    `json:"count"`
}

// CellWire is the wire form of engine.CellView.
type CellWire struct {
	ID         int             `json:"id"`
	Row        int             `json:"row"`
	Col        int             `json:"col"`
	Choice     *string         `json:"choice,omitempty"`
	Candidates []CandidateWire `json:"candidates"`
}

// LineWire is the wire form of engine.LineView.
type LineWire struct {
	ID             int  `json:"id"`
	Length         int  `json:"length"`
	WordsRemaining int  `json:"wordsRemaining"`
	Claimed        bool `json:"claimed"`
}

// SnapshotWire is the wire form of engine.Snapshot.
type SnapshotWire struct {
	Cells []CellWire `json:"cells"`
	Lines []LineWire `json:"lines"`
}

func toSnapshotWire(snap engine.Snapshot) SnapshotWire {
	out := SnapshotWire{
		Cells: make([]CellWire, len(snap.Cells)),
		Lines: make([]LineWire, len(snap.Lines)),
	}
	for i, c := range snap.Cells {
		var choice *string
		if c.Choice != nil {
			s := string(*c.Choice)
			choice = &s
		}
		cands := make([]CandidateWire, len(c.CharDist))
		for j, e := range c.CharDist {
			cands[j] = CandidateWire{Letter: string(e.Letter.Letter()), Count: e.Count}
		}
		out.Cells[i] = CellWire{ID: int(c.ID), Row: c.Row, Col: c.Col, Choice: choice, Candidates: cands}
	}
	for i, l := range snap.Lines {
		out.Lines[i] = LineWire{ID: int(l.ID), Length: l.Length, WordsRemaining: l.WordsRemaining, Claimed: l.Claimed}
	}
	return out
}

type SessionStatePayload struct {
	Session      models.Session        `json:"session"`
	Participants []models.Participant  `json:"participants"`
	Puzzle       *models.PuzzleDefinition `json:"puzzle,omitempty"`
	Snapshot     SnapshotWire           `json:"snapshot"`
	Messages     []models.ChatMessage   `json:"messages"`
}

type ParticipantEventPayload struct {
	Participant models.Participant `json:"participant"`
}

type ParticipantLeftPayload struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

type SnapshotUpdatePayload struct {
	Snapshot SnapshotWire `json:"snapshot"`
	ByUserID string       `json:"byUserId"`
}

type CursorMovedPayload struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Color       string `json:"color"`
}

type NewMessagePayload struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	DisplayName string    `json:"displayName"`
	Text        string    `json:"text"`
	CreatedAt   time.Time `json:"createdAt"`
}

type SolveResultPayload struct {
	Status   string         `json:"status"`
	Steps    int            `json:"steps"`
	Snapshot SnapshotWire   `json:"snapshot"`
	ByUserID string         `json:"byUserId"`
}

type RaceProgressEntry struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	Solved      int    `json:"solved"`
	Total       int    `json:"total"`
	Finished    bool   `json:"finished"`
	Rank        int    `json:"rank,omitempty"`
}

type RaceProgressPayload struct {
	Leaderboard []RaceProgressEntry `json:"leaderboard"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

// sessionRuntime owns the live engine(s) for one session. Collaborative
// sessions share a single Engine across all participants; Race sessions
// give each participant an independent Engine over the same
// PuzzleDefinition so progress can be compared without contention.
type sessionRuntime struct {
	mu sync.Mutex

	mode     models.SessionMode
	puzzleID string
	layout   puzzlegrid.Layout
	indices  *dictionary.WordIndices
	pinned   map[puzzlegrid.Coord]byte

	shared  *engine.Engine            // collaborative mode
	perUser map[string]*engine.Engine // race mode: userID -> engine
	finishOrder []string

	// undoStacks mirrors each engine's own undo stack so the wire
	// protocol can expose a tokenless "undo my last commit" without
	// handing UndoToken internals to clients. Keyed by "shared" in
	// collaborative/lobby mode, by userID in Race mode.
	undoStacks map[string][]engine.UndoToken

	clients map[string]*Client
}

const sharedUndoKey = "shared"

func (rt *sessionRuntime) undoKey(userID string) string {
	if rt.mode == models.SessionModeRace {
		return userID
	}
	return sharedUndoKey
}

func (rt *sessionRuntime) engineFor(userID string) (*engine.Engine, error) {
	if rt.mode != models.SessionModeRace {
		return rt.shared, nil
	}
	if e, ok := rt.perUser[userID]; ok {
		return e, nil
	}
	e, err := engine.New(rt.layout, rt.indices, rt.pinned)
	if err != nil {
		return nil, err
	}
	rt.perUser[userID] = e
	return e, nil
}

// commit runs e.Commit and records the token so a later tokenless Undo
// from the same key can find it.
func (rt *sessionRuntime) commit(userID string, e *engine.Engine, cellID engine.CellID, letter letters.Index) error {
	token, err := e.Commit(cellID, letter)
	if err != nil {
		return err
	}
	key := rt.undoKey(userID)
	rt.undoStacks[key] = append(rt.undoStacks[key], *token)
	return nil
}

// undoLast undoes the most recent commit recorded for userID's key.
func (rt *sessionRuntime) undoLast(userID string, e *engine.Engine) error {
	key := rt.undoKey(userID)
	stack := rt.undoStacks[key]
	if len(stack) == 0 {
		return engine.ErrUnknownToken
	}
	token := stack[len(stack)-1]
	if err := e.Undo(token); err != nil {
		return err
	}
	rt.undoStacks[key] = stack[:len(stack)-1]
	return nil
}

// Hub fans websocket traffic out to sessionRuntimes, persists the
// durable side effects (chat, reactions, roster, solve attempts) via db,
// and registers/unregisters client sockets.
type Hub struct {
	db          *db.Database
	dictionaries map[string]*dictionary.WordIndices

	clientsMu sync.RWMutex
	clients   map[string]*Client

	sessionsMu sync.Mutex
	sessions   map[string]*sessionRuntime

	register   chan *Client
	unregister chan *Client
}

// NewHub builds a Hub. dictionaries maps a PuzzleDefinition's
// DictionaryName to its prebuilt dictionary.WordIndices.
func NewHub(database *db.Database, dictionaries map[string]*dictionary.WordIndices) *Hub {
	return &Hub{
		db:           database,
		dictionaries: dictionaries,
		clients:      make(map[string]*Client),
		sessions:     make(map[string]*sessionRuntime),
		register:     make(chan *Client),
		unregister:   make(chan *Client),
	}
}

// Run processes (un)registration events until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.clientsMu.Lock()
			h.clients[c.UserID] = c
			h.clientsMu.Unlock()
			log.Printf("realtime: client registered userId=%s", c.UserID)

		case c := <-h.unregister:
			h.clientsMu.Lock()
			if _, ok := h.clients[c.UserID]; ok {
				delete(h.clients, c.UserID)
				close(c.Send)
			}
			h.clientsMu.Unlock()
			if c.SessionID != "" {
				h.removeClientFromSession(c)
			}
			log.Printf("realtime: client unregistered userId=%s", c.UserID)
		}
	}
}

func (h *Hub) Register(c *Client)   { h.register <- c }
func (h *Hub) Unregister(c *Client) { h.unregister <- c }

// HandleMessage dispatches one inbound frame from c.
func (h *Hub) HandleMessage(c *Client, msg *Message) {
	switch msg.Type {
	case MsgJoinSession:
		h.handleJoinSession(c, msg.Payload)
	case MsgLeaveSession:
		h.handleLeaveSession(c)
	case MsgPin:
		h.handlePinOrCommit(c, msg.Payload, true)
	case MsgCommit:
		h.handlePinOrCommit(c, msg.Payload, false)
	case MsgUndo:
		h.handleUndo(c, msg.Payload)
	case MsgSolve:
		h.handleSolve(c, msg.Payload)
	case MsgPrefilter:
		h.handlePrefilter(c)
	case MsgCursorMove:
		h.handleCursorMove(c, msg.Payload)
	case MsgSendMessage:
		h.handleSendMessage(c, msg.Payload)
	case MsgReaction:
		h.handleReaction(c, msg.Payload)
	default:
		log.Printf("realtime: unknown message type %q", msg.Type)
	}
}

func (h *Hub) handleJoinSession(c *Client, payload json.RawMessage) {
	var p JoinSessionPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		h.sendError(c, "invalid payload")
		return
	}

	sess, err := h.db.GetSessionByCode(p.SessionCode)
	if err != nil || sess == nil {
		h.sendError(c, "session not found")
		return
	}

	puzzle, err := h.db.GetPuzzleDefinition(sess.PuzzleID)
	if err != nil || puzzle == nil {
		h.sendError(c, "puzzle not found")
		return
	}

	rt, err := h.runtimeFor(sess, puzzle)
	if err != nil {
		h.sendError(c, fmt.Sprintf("failed to build engine: %v", err))
		return
	}

	c.SessionID = sess.ID
	c.DisplayName = p.DisplayName
	c.IsSpectator = p.IsSpectator

	rt.mu.Lock()
	rt.clients[c.UserID] = c
	rt.mu.Unlock()

	color := participantColor(len(rt.clients))
	participant := models.Participant{
		UserID:      c.UserID,
		SessionID:   sess.ID,
		DisplayName: p.DisplayName,
		IsSpectator: p.IsSpectator,
		IsConnected: true,
		Color:       color,
		JoinedAt:    time.Now(),
	}
	h.db.AddParticipant(&participant)

	participants, _ := h.db.GetSessionParticipants(sess.ID)
	messages, _ := h.db.GetSessionMessages(sess.ID, 50)

	e, err := rt.engineFor(c.UserID)
	if err != nil {
		h.sendError(c, "engine unavailable")
		return
	}

	h.sendToClient(c, MsgSessionState, SessionStatePayload{
		Session:      *sess,
		Participants: participants,
		Puzzle:       puzzle,
		Snapshot:     toSnapshotWire(e.Snapshot()),
		Messages:     messages,
	})

	h.broadcastToSession(sess.ID, c.UserID, MsgParticipantJoin, ParticipantEventPayload{Participant: participant})
}

// runtimeFor returns the sessionRuntime for sess, building it (and its
// engine) on first access. PuzzleDefinitions carry no persisted engine
// state, so the first joiner always pays the construction cost; later
// joiners reuse it.
func (h *Hub) runtimeFor(sess *models.Session, puzzle *models.PuzzleDefinition) (*sessionRuntime, error) {
	h.sessionsMu.Lock()
	defer h.sessionsMu.Unlock()

	if rt, ok := h.sessions[sess.ID]; ok {
		return rt, nil
	}

	indices, ok := h.dictionaries[puzzle.DictionaryName]
	if !ok {
		return nil, fmt.Errorf("unknown dictionary %q", puzzle.DictionaryName)
	}

	black := make(map[puzzlegrid.Coord]bool, len(puzzle.BlackCells))
	for _, b := range puzzle.BlackCells {
		black[puzzlegrid.Coord{X: b.X, Y: b.Y}] = true
	}
	occ := puzzlegrid.Rectangle(puzzle.GridWidth, puzzle.GridHeight, black)
	layout := puzzlegrid.Build(occ)

	pinned := make(map[puzzlegrid.Coord]byte, len(puzzle.Prefilled))
	for _, p := range puzzle.Prefilled {
		pinned[puzzlegrid.Coord{X: p.X, Y: p.Y}] = p.Letter
	}

	rt := &sessionRuntime{
		mode:     sess.Mode,
		puzzleID: puzzle.ID,
		layout:   layout,
		indices:  indices,
		pinned:   pinned,
		perUser:  make(map[string]*engine.Engine),
		undoStacks: make(map[string][]engine.UndoToken),
		clients:  make(map[string]*Client),
	}

	if sess.Mode != models.SessionModeRace {
		e, err := engine.New(layout, indices, pinned)
		if err != nil {
			return nil, err
		}
		rt.shared = e
	}

	h.sessions[sess.ID] = rt
	return rt, nil
}

func (h *Hub) handleLeaveSession(c *Client) {
	if c.SessionID == "" {
		return
	}
	h.removeClientFromSession(c)
}

func (h *Hub) handlePinOrCommit(c *Client, payload json.RawMessage, pin bool) {
	if c.SessionID == "" || c.IsSpectator {
		return
	}
	var p CellLetterPayload
	if err := json.Unmarshal(payload, &p); err != nil || len(p.Letter) != 1 {
		h.sendError(c, "invalid payload")
		return
	}
	letter, ok := letters.IndexOf(p.Letter[0])
	if !ok {
		h.sendError(c, "letter must be A-Z")
		return
	}

	rt := h.sessionRuntime(c.SessionID)
	if rt == nil {
		return
	}
	rt.mu.Lock()
	defer rt.mu.Unlock()

	e, err := rt.engineFor(c.UserID)
	if err != nil {
		h.sendError(c, "engine unavailable")
		return
	}
	cellID, ok := e.CellAt(puzzlegrid.Coord{X: p.X, Y: p.Y})
	if !ok {
		h.sendError(c, "coordinate not in grid")
		return
	}

	if pin {
		err = e.Pin(cellID, letter)
	} else {
		err = rt.commit(c.UserID, e, cellID, letter)
	}
	if err != nil {
		h.sendError(c, err.Error())
		return
	}

	h.db.IncrementParticipantPins(c.UserID, c.SessionID)
	h.broadcastSnapshot(rt, c.SessionID, c.UserID)
	if rt.mode == models.SessionModeRace {
		h.broadcastRaceProgress(rt, c.SessionID)
	}
}

func (h *Hub) handleUndo(c *Client, payload json.RawMessage) {
	if c.SessionID == "" || c.IsSpectator {
		return
	}

	rt := h.sessionRuntime(c.SessionID)
	if rt == nil {
		return
	}
	rt.mu.Lock()
	defer rt.mu.Unlock()

	e, err := rt.engineFor(c.UserID)
	if err != nil {
		h.sendError(c, "engine unavailable")
		return
	}
	if err := rt.undoLast(c.UserID, e); err != nil {
		h.sendError(c, err.Error())
		return
	}
	h.broadcastSnapshot(rt, c.SessionID, c.UserID)
}

func (h *Hub) handleSolve(c *Client, payload json.RawMessage) {
	if c.SessionID == "" || c.IsSpectator {
		return
	}
	var p SolvePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		h.sendError(c, "invalid payload")
		return
	}

	rt := h.sessionRuntime(c.SessionID)
	if rt == nil {
		return
	}
	rt.mu.Lock()
	e, err := rt.engineFor(c.UserID)
	if err != nil {
		rt.mu.Unlock()
		h.sendError(c, "engine unavailable")
		return
	}
	outcome := e.Solve(p.Budget)
	wire := toSnapshotWire(e.Snapshot())
	rt.mu.Unlock()

	h.broadcastToSession(c.SessionID, "", MsgSolveResult, SolveResultPayload{
		Status:   outcome.Status.String(),
		Steps:    outcome.Steps,
		Snapshot: wire,
		ByUserID: c.UserID,
	})

	if outcome.Status == engine.Solved {
		now := time.Now()
		sessionID := c.SessionID
		h.db.CreateSolveAttempt(&models.SolveAttempt{
			ID:          uuid.NewString(),
			UserID:      c.UserID,
			PuzzleID:    rt.puzzleID,
			SessionID:   &sessionID,
			Status:      outcome.Status.String(),
			StepsUsed:   outcome.Steps,
			CompletedAt: &now,
			CreatedAt:   now,
		})
		if rt.mode == models.SessionModeRace {
			rt.mu.Lock()
			rt.finishOrder = append(rt.finishOrder, c.UserID)
			h.broadcastRaceProgress(rt, c.SessionID)
			rt.mu.Unlock()
		}
	}
}

func (h *Hub) handlePrefilter(c *Client) {
	if c.SessionID == "" {
		return
	}
	rt := h.sessionRuntime(c.SessionID)
	if rt == nil {
		return
	}
	rt.mu.Lock()
	e, err := rt.engineFor(c.UserID)
	if err != nil {
		rt.mu.Unlock()
		h.sendError(c, "engine unavailable")
		return
	}
	e.Prefilter()
	h.broadcastSnapshot(rt, c.SessionID, c.UserID)
	rt.mu.Unlock()
}

func (h *Hub) handleCursorMove(c *Client, payload json.RawMessage) {
	if c.SessionID == "" {
		return
	}
	var p CursorMovePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return
	}
	h.db.UpdateParticipantCursor(c.UserID, c.SessionID, p.X, p.Y)
	h.broadcastToSession(c.SessionID, c.UserID, MsgCursorMoved, CursorMovedPayload{
		UserID:      c.UserID,
		DisplayName: c.DisplayName,
		X:           p.X,
		Y:           p.Y,
	})
}

func (h *Hub) handleSendMessage(c *Client, payload json.RawMessage) {
	if c.SessionID == "" {
		return
	}
	var p SendMessagePayload
	if err := json.Unmarshal(payload, &p); err != nil || p.Text == "" {
		return
	}
	msg := models.ChatMessage{
		ID:          uuid.NewString(),
		SessionID:   c.SessionID,
		UserID:      c.UserID,
		DisplayName: c.DisplayName,
		Text:        p.Text,
		CreatedAt:   time.Now(),
	}
	if err := h.db.CreateChatMessage(&msg); err != nil {
		h.sendError(c, "failed to send message")
		return
	}
	h.broadcastToSession(c.SessionID, "", MsgNewMessage, NewMessagePayload{
		ID: msg.ID, UserID: msg.UserID, DisplayName: msg.DisplayName, Text: msg.Text, CreatedAt: msg.CreatedAt,
	})
}

func (h *Hub) handleReaction(c *Client, payload json.RawMessage) {
	if c.SessionID == "" {
		return
	}
	var p ReactionPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return
	}
	r := models.Reaction{
		ID:        uuid.NewString(),
		SessionID: c.SessionID,
		UserID:    c.UserID,
		LineID:    p.LineID,
		Emoji:     p.Emoji,
		CreatedAt: time.Now(),
	}
	if err := h.db.AddOrUpdateReaction(&r); err != nil {
		return
	}
	h.broadcastToSession(c.SessionID, "", MsgReactionAdded, r)
}

func (h *Hub) broadcastSnapshot(rt *sessionRuntime, sessionID, byUserID string) {
	e, err := rt.engineFor(byUserID)
	if err != nil {
		return
	}
	h.broadcastToSession(sessionID, "", MsgSnapshotUpdate, SnapshotUpdatePayload{
		Snapshot: toSnapshotWire(e.Snapshot()),
		ByUserID: byUserID,
	})
}

func (h *Hub) broadcastRaceProgress(rt *sessionRuntime, sessionID string) {
	participants, _ := h.db.GetSessionParticipants(sessionID)
	leaderboard := make([]RaceProgressEntry, 0, len(participants))
	for _, p := range participants {
		e, err := rt.engineFor(p.UserID)
		if err != nil {
			continue
		}
		snap := e.Snapshot()
		solved := 0
		for _, cell := range snap.Cells {
			if cell.Choice != nil {
				solved++
			}
		}
		rank := 0
		for i, uid := range rt.finishOrder {
			if uid == p.UserID {
				rank = i + 1
				break
			}
		}
		leaderboard = append(leaderboard, RaceProgressEntry{
			UserID:      p.UserID,
			DisplayName: p.DisplayName,
			Solved:      solved,
			Total:       len(snap.Cells),
			Finished:    rank > 0,
			Rank:        rank,
		})
	}
	h.broadcastToSession(sessionID, "", MsgRaceProgress, RaceProgressPayload{Leaderboard: leaderboard})
}

func (h *Hub) removeClientFromSession(c *Client) {
	rt := h.sessionRuntime(c.SessionID)
	if rt == nil {
		return
	}
	rt.mu.Lock()
	delete(rt.clients, c.UserID)
	isEmpty := len(rt.clients) == 0
	rt.mu.Unlock()

	h.db.UpdateParticipantConnection(c.UserID, c.SessionID, false)
	h.broadcastToSession(c.SessionID, c.UserID, MsgParticipantLeave, ParticipantLeftPayload{
		UserID: c.UserID, DisplayName: c.DisplayName,
	})

	if isEmpty {
		h.sessionsMu.Lock()
		delete(h.sessions, c.SessionID)
		h.sessionsMu.Unlock()
	}
	c.SessionID = ""
}

func (h *Hub) sessionRuntime(sessionID string) *sessionRuntime {
	h.sessionsMu.Lock()
	defer h.sessionsMu.Unlock()
	return h.sessions[sessionID]
}

func (h *Hub) sendToClient(c *Client, msgType MessageType, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	frame, err := json.Marshal(Message{Type: msgType, Payload: data})
	if err != nil {
		return
	}
	select {
	case c.Send <- frame:
	default:
		log.Printf("realtime: dropping frame for slow client userId=%s", c.UserID)
	}
}

func (h *Hub) broadcastToSession(sessionID, excludeUserID string, msgType MessageType, payload interface{}) {
	rt := h.sessionRuntime(sessionID)
	if rt == nil {
		return
	}
	rt.mu.Lock()
	targets := make([]*Client, 0, len(rt.clients))
	for userID, c := range rt.clients {
		if userID == excludeUserID {
			continue
		}
		targets = append(targets, c)
	}
	rt.mu.Unlock()

	for _, c := range targets {
		h.sendToClient(c, msgType, payload)
	}
}

func (h *Hub) sendError(c *Client, message string) {
	h.sendToClient(c, MsgError, ErrorPayload{Message: message})
}

var participantPalette = []string{"#e74c3c", "#3498db", "#2ecc71", "#f39c12", "#9b59b6", "#1abc9c", "#e67e22", "#34495e"}

func participantColor(ordinal int) string {
	return participantPalette[(ordinal-1)%len(participantPalette)]
}
