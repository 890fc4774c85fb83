package db

import (
	"context"
	"encoding/json"
	"fmt"
)

// SaveCrisisAlert inserts a and fills in its ID and CreatedAt
func (db *DB) SaveCrisisAlert(ctx context.Context, a *CrisisAlert) error {
	query := `
		INSERT INTO crisis_alerts (user_id, risk_level, trigger_data)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	data, err := json.Marshal(a.TriggerData)
	if err != nil {
		return fmt.Errorf("failed to encode trigger data: %w", err)
	}

	if err := db.QueryRowContext(ctx, query, a.UserID, a.RiskLevel, data).Scan(&a.ID, &a.CreatedAt); err != nil {
		return fmt.Errorf("failed to save crisis alert: %w", err)
	}
	return nil
}

// GetCrisisAlerts returns up to limit of the user's alerts, newest first
func (db *DB) GetCrisisAlerts(ctx context.Context, userID string, limit int) ([]CrisisAlert, error) {
	query := `
		SELECT id, user_id, risk_level, trigger_data, created_at
		FROM crisis_alerts
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query crisis alerts: %w", err)
	}
	defer rows.Close()

	var alerts []CrisisAlert
	for rows.Next() {
		var a CrisisAlert
		var data []byte
		if err := rows.Scan(&a.ID, &a.UserID, &a.RiskLevel, &data, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan crisis alert: %w", err)
		}
		if len(data) > 0 {
			if err := json.Unmarshal(data, &a.TriggerData); err != nil {
				return nil, fmt.Errorf("failed to decode trigger data: %w", err)
			}
		}
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating crisis alerts: %w", err)
	}

	return alerts, nil
}
