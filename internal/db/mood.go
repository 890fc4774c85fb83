package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// TextAnalysis is the sentiment of a mood entry's note
type TextAnalysis struct {
	Score float64 `json:"score"`
	Label string  `json:"label"`
}

// MoodEntry is one self-reported mood check-in
type MoodEntry struct {
	ID           string        `json:"id"`
	UserID       string        `json:"userId"`
	MoodScore    int           `json:"moodScore"`
	Text         string        `json:"text"`
	TextAnalysis *TextAnalysis `json:"textAnalysis,omitempty"`
	CreatedAt    time.Time     `json:"timestamp"`
}

// Emotion is one detected emotion sample
type Emotion struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Emotion    string    `json:"emotion"`
	Confidence float64   `json:"confidence"`
	CreatedAt  time.Time `json:"timestamp"`
}

// SaveMoodEntry inserts e and fills in its ID and CreatedAt
func (db *DB) SaveMoodEntry(ctx context.Context, e *MoodEntry) error {
	query := `
		INSERT INTO mood_entries (user_id, mood_score, text, sentiment_score, sentiment_label)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	var score sql.NullFloat64
	var label sql.NullString
	if e.TextAnalysis != nil {
		score = sql.NullFloat64{Float64: e.TextAnalysis.Score, Valid: true}
		label = sql.NullString{String: e.TextAnalysis.Label, Valid: true}
	}

	err := db.QueryRowContext(ctx, query, e.UserID, e.MoodScore, e.Text, score, label).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save mood entry: %w", err)
	}
	return nil
}

// GetMoodHistory returns up to limit of the user's mood entries, newest first
func (db *DB) GetMoodHistory(ctx context.Context, userID string, limit int) ([]MoodEntry, error) {
	query := `
		SELECT id, user_id, mood_score, text, sentiment_score, sentiment_label, created_at
		FROM mood_entries
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query mood history: %w", err)
	}
	defer rows.Close()

	var entries []MoodEntry
	for rows.Next() {
		var e MoodEntry
		var score sql.NullFloat64
		var label sql.NullString
		if err := rows.Scan(&e.ID, &e.UserID, &e.MoodScore, &e.Text, &score, &label, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan mood entry: %w", err)
		}
		if score.Valid {
			e.TextAnalysis = &TextAnalysis{Score: score.Float64, Label: label.String}
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating mood entries: %w", err)
	}

	return entries, nil
}

// SaveEmotion inserts e and fills in its ID and CreatedAt
func (db *DB) SaveEmotion(ctx context.Context, e *Emotion) error {
	query := `
		INSERT INTO emotions (user_id, emotion, confidence)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	if err := db.QueryRowContext(ctx, query, e.UserID, e.Emotion, e.Confidence).Scan(&e.ID, &e.CreatedAt); err != nil {
		return fmt.Errorf("failed to save emotion: %w", err)
	}
	return nil
}

// GetEmotionHistory returns up to limit of the user's emotion samples, newest first
func (db *DB) GetEmotionHistory(ctx context.Context, userID string, limit int) ([]Emotion, error) {
	query := `
		SELECT id, user_id, emotion, confidence, created_at
		FROM emotions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query emotion history: %w", err)
	}
	defer rows.Close()

	var emotions []Emotion
	for rows.Next() {
		var e Emotion
		if err := rows.Scan(&e.ID, &e.UserID, &e.Emotion, &e.Confidence, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan emotion: %w", err)
		}
		emotions = append(emotions, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating emotions: %w", err)
	}

	return emotions, nil
}
