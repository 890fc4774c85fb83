package db

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestDB_SaveMoodEntry(t *testing.T) {
	created := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		entry     MoodEntry
		setupMock func(sqlmock.Sqlmock)
		wantErr   bool
	}{
		{
			name: "with text analysis",
			entry: MoodEntry{
				UserID: "u1", MoodScore: 3, Text: "rough morning",
				TextAnalysis: &TextAnalysis{Score: -0.4, Label: "negative"},
			},
			setupMock: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(`INSERT INTO mood_entries`).
					WithArgs("u1", 3, "rough morning", -0.4, "negative").
					WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("m-1", created))
			},
		},
		{
			name:  "score only",
			entry: MoodEntry{UserID: "u1", MoodScore: 7},
			setupMock: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(`INSERT INTO mood_entries`).
					WithArgs("u1", 7, "", nil, nil).
					WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("m-2", created))
			},
		},
		{
			name:  "insert error",
			entry: MoodEntry{UserID: "u1", MoodScore: 5},
			setupMock: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(`INSERT INTO mood_entries`).WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			tt.setupMock(mock)

			entry := tt.entry
			err := db.SaveMoodEntry(context.Background(), &entry)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SaveMoodEntry error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && (entry.ID == "" || !entry.CreatedAt.Equal(created)) {
				t.Errorf("expected ID and CreatedAt to be set, got %q %v", entry.ID, entry.CreatedAt)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}

func TestDB_GetMoodHistory(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "user_id", "mood_score", "text", "sentiment_score", "sentiment_label", "created_at"}).
		AddRow("m-2", "u1", 8, "good day", 0.6, "positive", now).
		AddRow("m-1", "u1", 2, "", nil, nil, now.Add(-time.Hour))
	mock.ExpectQuery(`SELECT (.+) FROM mood_entries`).WithArgs("u1", 50).WillReturnRows(rows)

	entries, err := db.GetMoodHistory(context.Background(), "u1", 50)
	if err != nil {
		t.Fatalf("GetMoodHistory: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID != "m-2" {
		t.Errorf("expected newest first, got %s", entries[0].ID)
	}
	if entries[0].TextAnalysis == nil || entries[0].TextAnalysis.Label != "positive" {
		t.Errorf("unexpected analysis %+v", entries[0].TextAnalysis)
	}
	if entries[1].TextAnalysis != nil {
		t.Error("NULL sentiment should leave TextAnalysis nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDB_GetMoodHistory_QueryError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT (.+) FROM mood_entries`).WillReturnError(sql.ErrConnDone)

	if _, err := db.GetMoodHistory(context.Background(), "u1", 10); err == nil {
		t.Fatal("expected error")
	}
}

func TestDB_SaveEmotion(t *testing.T) {
	db, mock := newMockDB(t)
	created := time.Now()
	mock.ExpectQuery(`INSERT INTO emotions`).
		WithArgs("u1", "sad", 0.82).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("e-1", created))

	e := &Emotion{UserID: "u1", Emotion: "sad", Confidence: 0.82}
	if err := db.SaveEmotion(context.Background(), e); err != nil {
		t.Fatalf("SaveEmotion: %v", err)
	}
	if e.ID != "e-1" {
		t.Errorf("ID = %q, want e-1", e.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDB_GetEmotionHistory(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "user_id", "emotion", "confidence", "created_at"}).
		AddRow("e-2", "u1", "happy", 0.9, now).
		AddRow("e-1", "u1", "sad", 0.7, now.Add(-time.Minute))
	mock.ExpectQuery(`SELECT (.+) FROM emotions`).WithArgs("u1", 20).WillReturnRows(rows)

	emotions, err := db.GetEmotionHistory(context.Background(), "u1", 20)
	if err != nil {
		t.Fatalf("GetEmotionHistory: %v", err)
	}
	if len(emotions) != 2 || emotions[0].Emotion != "happy" || emotions[1].Confidence != 0.7 {
		t.Errorf("unexpected emotions %+v", emotions)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
