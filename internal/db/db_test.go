package db

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })
	return Wrap(sqlDB), mock
}

var conversationColumns = []string{
	"id", "user_id", "message", "response", "sentiment_score",
	"risk_level", "intervention", "personality", "created_at",
}

func TestDB_SaveConversation(t *testing.T) {
	score := -0.5
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		conv      Conversation
		setupMock func(sqlmock.Sqlmock)
		wantErr   bool
	}{
		{
			name: "with sentiment",
			conv: Conversation{
				UserID: "u1", Message: "I feel down", Response: "I'm here.",
				SentimentScore: &score, RiskLevel: "low",
				Intervention: "depression_support", Personality: "empathetic",
			},
			setupMock: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(`INSERT INTO conversations`).
					WithArgs("u1", "I feel down", "I'm here.", -0.5, "low", "depression_support", "empathetic").
					WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("c-1", created))
			},
		},
		{
			name: "without sentiment",
			conv: Conversation{
				UserID: "u1", Message: "hi", Response: "hello",
				RiskLevel: "low", Intervention: "general_support", Personality: "adaptive",
			},
			setupMock: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(`INSERT INTO conversations`).
					WithArgs("u1", "hi", "hello", nil, "low", "general_support", "adaptive").
					WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("c-2", created))
			},
		},
		{
			name: "insert error",
			conv: Conversation{UserID: "u1"},
			setupMock: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(`INSERT INTO conversations`).WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			tt.setupMock(mock)

			conv := tt.conv
			err := db.SaveConversation(context.Background(), &conv)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SaveConversation error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				if conv.ID == "" {
					t.Error("expected ID to be set")
				}
				if !conv.CreatedAt.Equal(created) {
					t.Errorf("CreatedAt = %v, want %v", conv.CreatedAt, created)
				}
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}

func TestDB_GetRecentConversations(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now()

	rows := sqlmock.NewRows(conversationColumns).
		AddRow("c-3", "u1", "third", "r3", -0.2, "low", "general_support", "adaptive", now).
		AddRow("c-2", "u1", "second", "r2", nil, "medium", "crisis_intervention", "empathetic", now.Add(-time.Minute)).
		AddRow("c-1", "u1", "first", "r1", 0.5, "low", "positive_reinforcement", "empathetic", now.Add(-2*time.Minute))
	mock.ExpectQuery(`SELECT (.+) FROM conversations`).WithArgs("u1", 3).WillReturnRows(rows)

	convs, err := db.GetRecentConversations(context.Background(), "u1", 3)
	if err != nil {
		t.Fatalf("GetRecentConversations: %v", err)
	}
	if len(convs) != 3 {
		t.Fatalf("expected 3 conversations, got %d", len(convs))
	}
	if convs[0].Message != "first" || convs[2].Message != "third" {
		t.Errorf("expected chronological order, got %q..%q", convs[0].Message, convs[2].Message)
	}
	if convs[1].SentimentScore != nil {
		t.Error("NULL sentiment should scan to nil")
	}
	if convs[2].SentimentScore == nil || *convs[2].SentimentScore != -0.2 {
		t.Errorf("unexpected sentiment %v", convs[2].SentimentScore)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDB_GetRecentConversations_QueryError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT (.+) FROM conversations`).WillReturnError(sql.ErrConnDone)

	if _, err := db.GetRecentConversations(context.Background(), "u1", 5); err == nil {
		t.Fatal("expected error")
	}
}

func TestDB_GetConversation(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		rows := sqlmock.NewRows(conversationColumns).
			AddRow("c-1", "u1", "hi", "hello", nil, "low", "general_support", "adaptive", time.Now())
		mock.ExpectQuery(`SELECT (.+) FROM conversations`).WithArgs("c-1", "u1").WillReturnRows(rows)

		c, err := db.GetConversation(context.Background(), "u1", "c-1")
		if err != nil {
			t.Fatalf("GetConversation: %v", err)
		}
		if c.ID != "c-1" || c.Response != "hello" {
			t.Errorf("unexpected conversation %+v", c)
		}
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`SELECT (.+) FROM conversations`).WithArgs("missing", "u1").
			WillReturnRows(sqlmock.NewRows(conversationColumns))

		_, err := db.GetConversation(context.Background(), "u1", "missing")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestDB_SaveCrisisAlert(t *testing.T) {
	db, mock := newMockDB(t)
	score := -0.9

	mock.ExpectQuery(`INSERT INTO crisis_alerts`).
		WithArgs("u1", "high", []byte(`{"message":"[redacted]","sentiment":-0.9,"intervention":"crisis_intervention"}`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("a-1", time.Now()))

	alert := &CrisisAlert{
		UserID:    "u1",
		RiskLevel: "high",
		TriggerData: TriggerData{
			Message:      "[redacted]",
			Sentiment:    &score,
			Intervention: "crisis_intervention",
		},
	}
	if err := db.SaveCrisisAlert(context.Background(), alert); err != nil {
		t.Fatalf("SaveCrisisAlert: %v", err)
	}
	if alert.ID != "a-1" {
		t.Errorf("expected ID a-1, got %q", alert.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDB_SaveCrisisAlert_Flags(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`INSERT INTO crisis_alerts`).
		WithArgs("u1", "high", []byte(`{"message":"","intervention":"","emergency":true,"manual":true}`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("a-2", time.Now()))

	alert := &CrisisAlert{
		UserID:      "u1",
		RiskLevel:   "high",
		TriggerData: TriggerData{Emergency: true, Manual: true},
	}
	if err := db.SaveCrisisAlert(context.Background(), alert); err != nil {
		t.Fatalf("SaveCrisisAlert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDB_GetCrisisAlerts(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(sqlmock.Sqlmock)
		wantLen   int
		wantErr   bool
	}{
		{
			name: "decodes trigger data",
			setupMock: func(m sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "user_id", "risk_level", "trigger_data", "created_at"}).
					AddRow("a-2", "u1", "medium", []byte(`{"message":"hopeless","intervention":"crisis_intervention"}`), time.Now()).
					AddRow("a-1", "u1", "high", []byte(`{"message":"plan","sentiment":-1,"intervention":"crisis_intervention"}`), time.Now())
				m.ExpectQuery(`SELECT (.+) FROM crisis_alerts`).WithArgs("u1", 10).WillReturnRows(rows)
			},
			wantLen: 2,
		},
		{
			name: "bad json",
			setupMock: func(m sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "user_id", "risk_level", "trigger_data", "created_at"}).
					AddRow("a-1", "u1", "high", []byte(`{`), time.Now())
				m.ExpectQuery(`SELECT (.+) FROM crisis_alerts`).WillReturnRows(rows)
			},
			wantErr: true,
		},
		{
			name: "query error",
			setupMock: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(`SELECT (.+) FROM crisis_alerts`).WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			tt.setupMock(mock)

			alerts, err := db.GetCrisisAlerts(context.Background(), "u1", 10)
			if (err != nil) != tt.wantErr {
				t.Fatalf("GetCrisisAlerts error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if len(alerts) != tt.wantLen {
				t.Fatalf("expected %d alerts, got %d", tt.wantLen, len(alerts))
			}
			if alerts[0].TriggerData.Message != "hopeless" || alerts[0].TriggerData.Sentiment != nil {
				t.Errorf("unexpected trigger data %+v", alerts[0].TriggerData)
			}
			if alerts[1].TriggerData.Sentiment == nil || *alerts[1].TriggerData.Sentiment != -1 {
				t.Errorf("expected sentiment -1, got %v", alerts[1].TriggerData.Sentiment)
			}
		})
	}
}

func TestDB_Migrate(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS conversations`).WillReturnResult(sqlmock.NewResult(0, 0))

	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
