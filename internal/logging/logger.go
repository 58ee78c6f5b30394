package logging

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// CompletionLog is one narrator completion as stored.
type CompletionLog struct {
	ID           int       `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	SessionID    string    `json:"session_id"`
	Node         string    `json:"node"`
	Snapshot     string    `json:"snapshot"`
	SystemPrompt string    `json:"system_prompt"`
	Response     string    `json:"response"`
	Metadata     string    `json:"metadata"`
}

type CompletionMetadata struct {
	Model        string        `json:"model"`
	MaxTokens    int           `json:"max_tokens"`
	ResponseTime time.Duration `json:"response_time_ms"`
	InputTokens  int64         `json:"input_tokens"`
	OutputTokens int64         `json:"output_tokens"`
	Fallback     bool          `json:"fallback"`
	Error        *string       `json:"error,omitempty"`
}

// CompletionLogger appends narrator completions to a sqlite file.
type CompletionLogger struct {
	db *sql.DB
}

func NewCompletionLogger(path string) (*CompletionLogger, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	logger := &CompletionLogger{db: db}
	if err := logger.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return logger, nil
}

func (cl *CompletionLogger) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS completions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		session_id TEXT NOT NULL,
		node TEXT NOT NULL,
		snapshot TEXT NOT NULL,
		system_prompt TEXT NOT NULL,
		response TEXT NOT NULL,
		metadata TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_completions_timestamp ON completions(timestamp);
	CREATE INDEX IF NOT EXISTS idx_completions_session ON completions(session_id);
	`

	_, err := cl.db.Exec(schema)
	return err
}

func (cl *CompletionLogger) LogCompletion(
	sessionID string,
	node string,
	snapshot interface{},
	systemPrompt string,
	response string,
	metadata CompletionMetadata,
) error {
	snapshotJSON, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	_, err = cl.db.Exec(`
		INSERT INTO completions (session_id, node, snapshot, system_prompt, response, metadata)
		VALUES (?, ?, ?, ?, ?, ?)
	`, sessionID, node, string(snapshotJSON), systemPrompt, response, string(metadataJSON))

	return err
}

// Recent returns up to limit entries, newest first. An empty sessionID
// matches every session.
func (cl *CompletionLogger) Recent(sessionID string, limit int) ([]CompletionLog, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := cl.db.Query(`
		SELECT id, timestamp, session_id, node, snapshot, system_prompt, response, metadata
		FROM completions
		WHERE ? = '' OR session_id = ?
		ORDER BY id DESC
		LIMIT ?
	`, sessionID, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query completions: %w", err)
	}
	defer rows.Close()

	var out []CompletionLog
	for rows.Next() {
		var c CompletionLog
		if err := rows.Scan(&c.ID, &c.Timestamp, &c.SessionID, &c.Node, &c.Snapshot, &c.SystemPrompt, &c.Response, &c.Metadata); err != nil {
			return nil, fmt.Errorf("failed to scan completion: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (cl *CompletionLogger) Close() error {
	return cl.db.Close()
}
