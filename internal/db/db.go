package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// Config holds database configuration
type Config struct {
	URL             string
	MaxConnections  int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// New creates a new database connection
func New(cfg Config) (*DB, error) {
	sqlDB, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Set connection pool settings
	if cfg.MaxConnections > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxConnections)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{sqlDB}, nil
}

// Wrap adopts an already open handle
func Wrap(sqlDB *sql.DB) *DB {
	return &DB{sqlDB}
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS conversations (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	user_id TEXT NOT NULL,
	message TEXT NOT NULL,
	response TEXT NOT NULL,
	sentiment_score DOUBLE PRECISION,
	risk_level TEXT NOT NULL,
	intervention TEXT NOT NULL,
	personality TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_conversations_user_created ON conversations (user_id, created_at DESC);

CREATE TABLE IF NOT EXISTS crisis_alerts (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	user_id TEXT NOT NULL,
	risk_level TEXT NOT NULL,
	trigger_data JSONB NOT NULL DEFAULT '{}'::jsonb,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_crisis_alerts_user_created ON crisis_alerts (user_id, created_at DESC);

CREATE TABLE IF NOT EXISTS mood_entries (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	user_id TEXT NOT NULL,
	mood_score INTEGER NOT NULL CHECK (mood_score BETWEEN 1 AND 10),
	text TEXT NOT NULL DEFAULT '',
	sentiment_score DOUBLE PRECISION,
	sentiment_label TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_mood_entries_user_created ON mood_entries (user_id, created_at DESC);

CREATE TABLE IF NOT EXISTS emotions (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	user_id TEXT NOT NULL,
	emotion TEXT NOT NULL,
	confidence DOUBLE PRECISION NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_emotions_user_created ON emotions (user_id, created_at DESC);
`

// Migrate creates the tables if they don't exist
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// Conversation is one logged exchange
type Conversation struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	Message        string    `json:"message"`
	Response       string    `json:"response"`
	SentimentScore *float64  `json:"sentimentScore,omitempty"`
	RiskLevel      string    `json:"riskLevel"`
	Intervention   string    `json:"intervention"`
	Personality    string    `json:"personality"`
	CreatedAt      time.Time `json:"createdAt"`
}

// TriggerData is what set off a crisis alert
type TriggerData struct {
	Message      string   `json:"message"`
	Sentiment    *float64 `json:"sentiment,omitempty"`
	Intervention string   `json:"intervention"`
	Emergency    bool     `json:"emergency,omitempty"`
	// Manual marks alerts raised by the user rather than by a reply
	Manual bool `json:"manual,omitempty"`
}

// CrisisAlert records a medium or high risk exchange
type CrisisAlert struct {
	ID          string      `json:"id"`
	UserID      string      `json:"userId"`
	RiskLevel   string      `json:"riskLevel"`
	TriggerData TriggerData `json:"triggerData"`
	CreatedAt   time.Time   `json:"createdAt"`
}
