package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a lookup matches no row
var ErrNotFound = errors.New("record not found")

// SaveConversation inserts c and fills in its ID and CreatedAt
func (db *DB) SaveConversation(ctx context.Context, c *Conversation) error {
	query := `
		INSERT INTO conversations (user_id, message, response, sentiment_score, risk_level, intervention, personality)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	var sentiment sql.NullFloat64
	if c.SentimentScore != nil {
		sentiment = sql.NullFloat64{Float64: *c.SentimentScore, Valid: true}
	}

	err := db.QueryRowContext(ctx, query,
		c.UserID, c.Message, c.Response, sentiment, c.RiskLevel, c.Intervention, c.Personality,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save conversation: %w", err)
	}
	return nil
}

// GetRecentConversations returns up to limit of the user's newest exchanges,
// oldest first.
func (db *DB) GetRecentConversations(ctx context.Context, userID string, limit int) ([]Conversation, error) {
	query := `
		SELECT id, user_id, message, response, sentiment_score, risk_level, intervention, personality, created_at
		FROM conversations
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversations: %w", err)
	}
	defer rows.Close()

	var conversations []Conversation
	for rows.Next() {
		c, err := scanConversation(rows)
		if err != nil {
			return nil, err
		}
		conversations = append(conversations, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating conversations: %w", err)
	}

	// Reverse to chronological order
	for i, j := 0, len(conversations)-1; i < j; i, j = i+1, j-1 {
		conversations[i], conversations[j] = conversations[j], conversations[i]
	}
	return conversations, nil
}

// GetConversation retrieves one exchange owned by userID
func (db *DB) GetConversation(ctx context.Context, userID, id string) (*Conversation, error) {
	query := `
		SELECT id, user_id, message, response, sentiment_score, risk_level, intervention, personality, created_at
		FROM conversations
		WHERE id = $1 AND user_id = $2
	`

	c, err := scanConversation(db.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanConversation(row scanner) (*Conversation, error) {
	var c Conversation
	var sentiment sql.NullFloat64
	err := row.Scan(&c.ID, &c.UserID, &c.Message, &c.Response, &sentiment,
		&c.RiskLevel, &c.Intervention, &c.Personality, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan conversation: %w", err)
	}
	if sentiment.Valid {
		v := sentiment.Float64
		c.SentimentScore = &v
	}
	return &c, nil
}
