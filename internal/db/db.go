package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/crossplay/xwordsolve/internal/models"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

// Database is the persistence boundary for everything the engine itself
// does not own: puzzle catalog rows, session/roster bookkeeping, chat,
// and solve history. Per spec.md's persistence non-goal, no
// engine.Engine search state (lines, cells, undo stack) is ever written
// here — only the PuzzleDefinition an Engine is rebuilt from and the
// Outcome it produced.
type Database struct {
	DB    *sql.DB
	Redis *redis.Client
}

func New(postgresURL, redisURL string) (*Database, error) {
	db, err := sql.Open("postgres", postgresURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &Database{DB: db, Redis: rdb}, nil
}

func (d *Database) Close() error {
	if err := d.DB.Close(); err != nil {
		return err
	}
	return d.Redis.Close()
}

// InitSchema creates all database tables.
func (d *Database) InitSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id VARCHAR(36) PRIMARY KEY,
		email VARCHAR(255) UNIQUE,
		display_name VARCHAR(100) NOT NULL,
		avatar_url TEXT,
		password_hash VARCHAR(255),
		is_guest BOOLEAN DEFAULT FALSE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS solver_stats (
		user_id VARCHAR(36) PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		puzzles_solved INTEGER DEFAULT 0,
		avg_solve_time FLOAT DEFAULT 0,
		streak_current INTEGER DEFAULT 0,
		streak_best INTEGER DEFAULT 0,
		total_pins_sent INTEGER DEFAULT 0,
		last_played_at TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS puzzle_definitions (
		id VARCHAR(36) PRIMARY KEY,
		date DATE UNIQUE,
		title VARCHAR(255) NOT NULL,
		author VARCHAR(100) NOT NULL,
		difficulty VARCHAR(20) NOT NULL,
		grid_width INTEGER NOT NULL,
		grid_height INTEGER NOT NULL,
		black_cells JSONB NOT NULL,
		prefilled JSONB NOT NULL,
		dictionary_name VARCHAR(100) NOT NULL,
		theme VARCHAR(255),
		status VARCHAR(20) DEFAULT 'draft',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		published_at TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_puzzle_definitions_date ON puzzle_definitions(date);
	CREATE INDEX IF NOT EXISTS idx_puzzle_definitions_difficulty ON puzzle_definitions(difficulty);
	CREATE INDEX IF NOT EXISTS idx_puzzle_definitions_status ON puzzle_definitions(status);

	CREATE TABLE IF NOT EXISTS sessions (
		id VARCHAR(36) PRIMARY KEY,
		code VARCHAR(6) UNIQUE NOT NULL,
		host_id VARCHAR(36) REFERENCES users(id) ON DELETE CASCADE,
		puzzle_id VARCHAR(36) REFERENCES puzzle_definitions(id) ON DELETE CASCADE,
		mode VARCHAR(20) NOT NULL,
		config JSONB NOT NULL,
		state VARCHAR(20) DEFAULT 'lobby',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		started_at TIMESTAMP,
		ended_at TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_code ON sessions(code);
	CREATE INDEX IF NOT EXISTS idx_sessions_state ON sessions(state);
	CREATE INDEX IF NOT EXISTS idx_sessions_host_id ON sessions(host_id);

	CREATE TABLE IF NOT EXISTS participants (
		user_id VARCHAR(36) REFERENCES users(id) ON DELETE CASCADE,
		session_id VARCHAR(36) REFERENCES sessions(id) ON DELETE CASCADE,
		display_name VARCHAR(100) NOT NULL,
		cursor_x INTEGER,
		cursor_y INTEGER,
		is_spectator BOOLEAN DEFAULT FALSE,
		is_connected BOOLEAN DEFAULT TRUE,
		pins_committed INTEGER DEFAULT 0,
		color VARCHAR(7) NOT NULL,
		joined_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (user_id, session_id)
	);

	CREATE INDEX IF NOT EXISTS idx_participants_session_id ON participants(session_id);

	CREATE TABLE IF NOT EXISTS chat_messages (
		id VARCHAR(36) PRIMARY KEY,
		session_id VARCHAR(36) REFERENCES sessions(id) ON DELETE CASCADE,
		user_id VARCHAR(36) REFERENCES users(id) ON DELETE CASCADE,
		display_name VARCHAR(100) NOT NULL,
		text TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_chat_messages_session_id ON chat_messages(session_id);
	CREATE INDEX IF NOT EXISTS idx_chat_messages_created_at ON chat_messages(created_at);

	CREATE TABLE IF NOT EXISTS reactions (
		id VARCHAR(36) PRIMARY KEY,
		session_id VARCHAR(36) REFERENCES sessions(id) ON DELETE CASCADE,
		user_id VARCHAR(36) REFERENCES users(id) ON DELETE CASCADE,
		line_id INTEGER NOT NULL,
		emoji VARCHAR(10) NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(session_id, user_id, line_id, emoji)
	);

	CREATE TABLE IF NOT EXISTS solve_attempts (
		id VARCHAR(36) PRIMARY KEY,
		user_id VARCHAR(36) REFERENCES users(id) ON DELETE CASCADE,
		puzzle_id VARCHAR(36) REFERENCES puzzle_definitions(id) ON DELETE CASCADE,
		session_id VARCHAR(36) REFERENCES sessions(id) ON DELETE SET NULL,
		status VARCHAR(20) NOT NULL,
		solve_time INTEGER DEFAULT 0,
		steps_used INTEGER DEFAULT 0,
		completed_at TIMESTAMP,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_solve_attempts_user_id ON solve_attempts(user_id);
	CREATE INDEX IF NOT EXISTS idx_solve_attempts_puzzle_id ON solve_attempts(puzzle_id);
	CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
	`

	_, err := d.DB.Exec(schema)
	return err
}

// User operations

func (d *Database) CreateUser(user *models.User) error {
	_, err := d.DB.Exec(`
		INSERT INTO users (id, email, display_name, avatar_url, password_hash, is_guest, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, user.ID, user.Email, user.DisplayName, user.AvatarURL, user.Password, user.IsGuest, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return err
	}

	_, err = d.DB.Exec(`INSERT INTO solver_stats (user_id) VALUES ($1)`, user.ID)
	return err
}

func (d *Database) GetUserByID(id string) (*models.User, error) {
	user := &models.User{}
	err := d.DB.QueryRow(`
		SELECT id, email, display_name, avatar_url, password_hash, is_guest, created_at, updated_at
		FROM users WHERE id = $1
	`, id).Scan(&user.ID, &user.Email, &user.DisplayName, &user.AvatarURL, &user.Password, &user.IsGuest, &user.CreatedAt, &user.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	return user, err
}

func (d *Database) GetUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	err := d.DB.QueryRow(`
		SELECT id, email, display_name, avatar_url, password_hash, is_guest, created_at, updated_at
		FROM users WHERE email = $1
	`, email).Scan(&user.ID, &user.Email, &user.DisplayName, &user.AvatarURL, &user.Password, &user.IsGuest, &user.CreatedAt, &user.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	return user, err
}

func (d *Database) GetSolverStats(userID string) (*models.SolverStats, error) {
	stats := &models.SolverStats{}
	err := d.DB.QueryRow(`
		SELECT user_id, puzzles_solved, avg_solve_time, streak_current, streak_best,
			   total_pins_sent, last_played_at
		FROM solver_stats WHERE user_id = $1
	`, userID).Scan(&stats.UserID, &stats.PuzzlesSolved, &stats.AvgSolveTime, &stats.StreakCurrent,
		&stats.StreakBest, &stats.TotalPinsSent, &stats.LastPlayedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	return stats, err
}

func (d *Database) UpdateSolverStats(stats *models.SolverStats) error {
	_, err := d.DB.Exec(`
		UPDATE solver_stats SET
			puzzles_solved = $2,
			avg_solve_time = $3,
			streak_current = $4,
			streak_best = $5,
			total_pins_sent = $6,
			last_played_at = $7
		WHERE user_id = $1
	`, stats.UserID, stats.PuzzlesSolved, stats.AvgSolveTime, stats.StreakCurrent,
		stats.StreakBest, stats.TotalPinsSent, stats.LastPlayedAt)
	return err
}

// Puzzle definition operations

func (d *Database) CreatePuzzleDefinition(p *models.PuzzleDefinition) error {
	blackJSON, _ := json.Marshal(p.BlackCells)
	prefilledJSON, _ := json.Marshal(p.Prefilled)

	_, err := d.DB.Exec(`
		INSERT INTO puzzle_definitions (id, date, title, author, difficulty, grid_width, grid_height,
							 black_cells, prefilled, dictionary_name, theme, status, created_at, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, p.ID, p.Date, p.Title, p.Author, p.Difficulty, p.GridWidth, p.GridHeight,
		blackJSON, prefilledJSON, p.DictionaryName, p.Theme, p.Status, p.CreatedAt, p.PublishedAt)
	return err
}

func (d *Database) scanPuzzleDefinition(row interface {
	Scan(...interface{}) error
}) (*models.PuzzleDefinition, error) {
	p := &models.PuzzleDefinition{}
	var blackJSON, prefilledJSON []byte

	err := row.Scan(&p.ID, &p.Date, &p.Title, &p.Author, &p.Difficulty,
		&p.GridWidth, &p.GridHeight, &blackJSON, &prefilledJSON,
		&p.DictionaryName, &p.Theme, &p.Status, &p.CreatedAt, &p.PublishedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	json.Unmarshal(blackJSON, &p.BlackCells)
	json.Unmarshal(prefilledJSON, &p.Prefilled)
	return p, nil
}

const puzzleDefinitionColumns = `id, date, title, author, difficulty, grid_width, grid_height,
		   black_cells, prefilled, dictionary_name, theme, status, created_at, published_at`

func (d *Database) GetPuzzleDefinition(id string) (*models.PuzzleDefinition, error) {
	row := d.DB.QueryRow(`SELECT `+puzzleDefinitionColumns+` FROM puzzle_definitions WHERE id = $1`, id)
	return d.scanPuzzleDefinition(row)
}

func (d *Database) GetPuzzleDefinitionByDate(date string) (*models.PuzzleDefinition, error) {
	row := d.DB.QueryRow(`SELECT `+puzzleDefinitionColumns+` FROM puzzle_definitions WHERE date = $1 AND status = 'published'`, date)
	return d.scanPuzzleDefinition(row)
}

func (d *Database) GetTodayPuzzleDefinition() (*models.PuzzleDefinition, error) {
	today := time.Now().Format("2006-01-02")
	return d.GetPuzzleDefinitionByDate(today)
}

// GetPuzzleArchive lists puzzle definitions, optionally filtered by
// status, newest first.
func (d *Database) GetPuzzleArchive(status string, limit, offset int) ([]*models.PuzzleDefinition, error) {
	query := `SELECT ` + puzzleDefinitionColumns + ` FROM puzzle_definitions WHERE 1=1`
	args := []interface{}{}
	argNum := 1

	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argNum)
		args = append(args, status)
		argNum++
	}

	query += " ORDER BY created_at DESC"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argNum, argNum+1)
	args = append(args, limit, offset)

	rows, err := d.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.PuzzleDefinition
	for rows.Next() {
		p, err := d.scanPuzzleDefinition(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// GetRandomPuzzleDefinition returns a random published puzzle, optionally
// filtered by difficulty and excluding puzzles the user already solved.
func (d *Database) GetRandomPuzzleDefinition(userID, difficulty string) (*models.PuzzleDefinition, error) {
	ctx := context.Background()

	query := `SELECT ` + puzzleDefinitionColumns + ` FROM puzzle_definitions WHERE status = 'published'`
	args := []interface{}{}
	argNum := 1

	if userID != "" {
		query += fmt.Sprintf(` AND id NOT IN (
			SELECT puzzle_id FROM solve_attempts
			WHERE user_id = $%d AND status = 'solved'
		)`, argNum)
		args = append(args, userID)
		argNum++
	}

	if difficulty != "" {
		query += fmt.Sprintf(" AND difficulty = $%d", argNum)
		args = append(args, difficulty)
		argNum++
	}

	var lastPuzzleID string
	if userID != "" {
		lastPuzzleID, _ = d.Redis.Get(ctx, "last_random_puzzle:"+userID).Result()
		if lastPuzzleID != "" {
			query += fmt.Sprintf(" AND id != $%d", argNum)
			args = append(args, lastPuzzleID)
		}
	}

	query += " ORDER BY RANDOM() LIMIT 1"

	row := d.DB.QueryRow(query, args...)
	p, err := d.scanPuzzleDefinition(row)
	if err != nil || p == nil {
		return p, err
	}

	if userID != "" {
		d.Redis.Set(ctx, "last_random_puzzle:"+userID, p.ID, time.Hour)
	}
	return p, nil
}

func (d *Database) UpdatePuzzleStatus(id string, status models.PuzzleStatus) error {
	query := `UPDATE puzzle_definitions SET status = $2`
	if status == models.PuzzleStatusPublished {
		query += ", published_at = CURRENT_TIMESTAMP"
	}
	query += " WHERE id = $1"

	_, err := d.DB.Exec(query, id, status)
	return err
}

// Session operations

func (d *Database) CreateSession(s *models.Session) error {
	configJSON, _ := json.Marshal(s.Config)
	_, err := d.DB.Exec(`
		INSERT INTO sessions (id, code, host_id, puzzle_id, mode, config, state, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, s.ID, s.Code, s.HostID, s.PuzzleID, s.Mode, configJSON, s.State, s.CreatedAt)
	return err
}

func (d *Database) scanSession(row interface{ Scan(...interface{}) error }) (*models.Session, error) {
	s := &models.Session{}
	var configJSON []byte
	err := row.Scan(&s.ID, &s.Code, &s.HostID, &s.PuzzleID, &s.Mode, &configJSON, &s.State, &s.CreatedAt, &s.StartedAt, &s.EndedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	json.Unmarshal(configJSON, &s.Config)
	return s, nil
}

const sessionColumns = `id, code, host_id, puzzle_id, mode, config, state, created_at, started_at, ended_at`

func (d *Database) GetSessionByID(id string) (*models.Session, error) {
	row := d.DB.QueryRow(`SELECT `+sessionColumns+` FROM sessions WHERE id = $1`, id)
	return d.scanSession(row)
}

func (d *Database) GetSessionByCode(code string) (*models.Session, error) {
	row := d.DB.QueryRow(`SELECT `+sessionColumns+` FROM sessions WHERE code = $1`, code)
	return d.scanSession(row)
}

func (d *Database) UpdateSessionState(id string, state models.SessionState) error {
	query := `UPDATE sessions SET state = $2`
	switch state {
	case models.SessionStateActive:
		query += ", started_at = CURRENT_TIMESTAMP"
	case models.SessionStateCompleted:
		query += ", ended_at = CURRENT_TIMESTAMP"
	}
	query += " WHERE id = $1"

	_, err := d.DB.Exec(query, id, state)
	return err
}

func (d *Database) DeleteSession(id string) error {
	_, err := d.DB.Exec(`DELETE FROM sessions WHERE id = $1`, id)
	return err
}

// Participant operations

func (d *Database) AddParticipant(p *models.Participant) error {
	_, err := d.DB.Exec(`
		INSERT INTO participants (user_id, session_id, display_name, cursor_x, cursor_y, is_spectator, is_connected, pins_committed, color, joined_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id, session_id) DO UPDATE SET
			is_connected = EXCLUDED.is_connected,
			display_name = EXCLUDED.display_name
	`, p.UserID, p.SessionID, p.DisplayName, p.CursorX, p.CursorY, p.IsSpectator, p.IsConnected, p.PinsCommitted, p.Color, p.JoinedAt)
	return err
}

func (d *Database) GetSessionParticipants(sessionID string) ([]models.Participant, error) {
	rows, err := d.DB.Query(`
		SELECT user_id, session_id, display_name, cursor_x, cursor_y, is_spectator, is_connected, pins_committed, color, joined_at
		FROM participants WHERE session_id = $1
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Participant
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.UserID, &p.SessionID, &p.DisplayName, &p.CursorX, &p.CursorY,
			&p.IsSpectator, &p.IsConnected, &p.PinsCommitted, &p.Color, &p.JoinedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (d *Database) UpdateParticipantConnection(userID, sessionID string, connected bool) error {
	_, err := d.DB.Exec(`UPDATE participants SET is_connected = $3 WHERE user_id = $1 AND session_id = $2`, userID, sessionID, connected)
	return err
}

func (d *Database) UpdateParticipantCursor(userID, sessionID string, x, y int) error {
	_, err := d.DB.Exec(`UPDATE participants SET cursor_x = $3, cursor_y = $4 WHERE user_id = $1 AND session_id = $2`, userID, sessionID, x, y)
	return err
}

func (d *Database) IncrementParticipantPins(userID, sessionID string) error {
	_, err := d.DB.Exec(`UPDATE participants SET pins_committed = pins_committed + 1 WHERE user_id = $1 AND session_id = $2`, userID, sessionID)
	return err
}

func (d *Database) RemoveParticipant(userID, sessionID string) error {
	_, err := d.DB.Exec(`DELETE FROM participants WHERE user_id = $1 AND session_id = $2`, userID, sessionID)
	return err
}

// Chat operations

func (d *Database) CreateChatMessage(msg *models.ChatMessage) error {
	_, err := d.DB.Exec(`
		INSERT INTO chat_messages (id, session_id, user_id, display_name, text, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, msg.ID, msg.SessionID, msg.UserID, msg.DisplayName, msg.Text, msg.CreatedAt)
	return err
}

func (d *Database) GetSessionMessages(sessionID string, limit int) ([]models.ChatMessage, error) {
	rows, err := d.DB.Query(`
		SELECT id, session_id, user_id, display_name, text, created_at
		FROM chat_messages WHERE session_id = $1
		ORDER BY created_at DESC LIMIT $2
	`, sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []models.ChatMessage
	for rows.Next() {
		var msg models.ChatMessage
		if err := rows.Scan(&msg.ID, &msg.SessionID, &msg.UserID, &msg.DisplayName, &msg.Text, &msg.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// Solve attempt operations

func (d *Database) CreateSolveAttempt(attempt *models.SolveAttempt) error {
	_, err := d.DB.Exec(`
		INSERT INTO solve_attempts (id, user_id, puzzle_id, session_id, status, solve_time, steps_used, completed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, attempt.ID, attempt.UserID, attempt.PuzzleID, attempt.SessionID, attempt.Status,
		attempt.SolveTime, attempt.StepsUsed, attempt.CompletedAt, attempt.CreatedAt)
	return err
}

func (d *Database) GetUserSolveAttempts(userID string, limit, offset int) ([]models.SolveAttempt, error) {
	rows, err := d.DB.Query(`
		SELECT id, user_id, puzzle_id, session_id, status, solve_time, steps_used, completed_at, created_at
		FROM solve_attempts WHERE user_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.SolveAttempt
	for rows.Next() {
		var a models.SolveAttempt
		if err := rows.Scan(&a.ID, &a.UserID, &a.PuzzleID, &a.SessionID, &a.Status,
			&a.SolveTime, &a.StepsUsed, &a.CompletedAt, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// Reaction operations

func (d *Database) AddOrUpdateReaction(r *models.Reaction) error {
	_, err := d.DB.Exec(`
		INSERT INTO reactions (id, session_id, user_id, line_id, emoji, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (session_id, user_id, line_id, emoji) DO UPDATE SET
			created_at = EXCLUDED.created_at
	`, r.ID, r.SessionID, r.UserID, r.LineID, r.Emoji, r.CreatedAt)
	return err
}

func (d *Database) RemoveReaction(sessionID, userID string, lineID int) error {
	_, err := d.DB.Exec(`DELETE FROM reactions WHERE session_id = $1 AND user_id = $2 AND line_id = $3`, sessionID, userID, lineID)
	return err
}

func (d *Database) GetSessionReactions(sessionID string) ([]models.Reaction, error) {
	rows, err := d.DB.Query(`
		SELECT id, session_id, user_id, line_id, emoji, created_at
		FROM reactions WHERE session_id = $1
		ORDER BY created_at ASC
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Reaction
	for rows.Next() {
		var r models.Reaction
		if err := rows.Scan(&r.ID, &r.SessionID, &r.UserID, &r.LineID, &r.Emoji, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// Redis: auth session tokens

func (d *Database) SetAuthSession(ctx context.Context, userID, token string, expiration time.Duration) error {
	return d.Redis.Set(ctx, "session:"+token, userID, expiration).Err()
}

func (d *Database) GetAuthSession(ctx context.Context, token string) (string, error) {
	return d.Redis.Get(ctx, "session:"+token).Result()
}

func (d *Database) DeleteAuthSession(ctx context.Context, token string) error {
	return d.Redis.Del(ctx, "session:"+token).Err()
}

// Redis: live session presence, used by the realtime hub to know who is
// attached to a session without a DB round trip per heartbeat.

func (d *Database) SetSessionPresence(ctx context.Context, sessionID, userID string) error {
	return d.Redis.SAdd(ctx, "presence:"+sessionID, userID).Err()
}

func (d *Database) RemoveSessionPresence(ctx context.Context, sessionID, userID string) error {
	return d.Redis.SRem(ctx, "presence:"+sessionID, userID).Err()
}

func (d *Database) GetSessionPresence(ctx context.Context, sessionID string) ([]string, error) {
	return d.Redis.SMembers(ctx, "presence:"+sessionID).Result()
}

// Redis: raw dictionary word-list cache. Stores a word list's bytes under
// its dictionary name; the posting lists (dictionary.WordIndices) are not
// cached and are rebuilt in process from the bytes read back.

func (d *Database) CacheDictionaryWords(ctx context.Context, name string, words []byte, expiration time.Duration) error {
	return d.Redis.Set(ctx, "dict:"+name, words, expiration).Err()
}

func (d *Database) GetCachedDictionaryWords(ctx context.Context, name string) ([]byte, error) {
	return d.Redis.Get(ctx, "dict:"+name).Bytes()
}
