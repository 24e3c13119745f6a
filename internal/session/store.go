package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/speedreading/trainer/internal/database"
)

// DBStore persists sessions and their answers. It runs against either the
// pool or a transaction.
type DBStore struct {
	db sqlx.ExtContext
}

func NewDBStore(db sqlx.ExtContext) *DBStore {
	return &DBStore{db: db}
}

func (s *DBStore) WithTx(tx *sqlx.Tx) *DBStore {
	return &DBStore{db: tx}
}

const sessionColumns = "id, user_id, test_name, state, started_at, ended_at, reading_duration_ms, reading_speed_wpm, memorization_speed_wpm, correct_answers, total_questions"

// Create inserts a READING session. It returns errSessionExists when the user
// already has a session for the test.
func (s *DBStore) Create(ctx context.Context, sess *Session) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO test_sessions (id, user_id, test_name, state, started_at) VALUES (?, ?, ?, ?, ?)",
		sess.ID, sess.UserID, sess.TestName, string(sess.State), sess.StartedAt,
	)
	if database.IsDuplicateKeyError(err) {
		return errSessionExists
	}
	if err != nil {
		return fmt.Errorf("db.ExecContext(insert test_sessions) > %w", err)
	}
	return nil
}

func (s *DBStore) FindByID(ctx context.Context, id uuid.UUID) (*Session, error) {
	var sess Session
	err := sqlx.GetContext(ctx, s.db, &sess, "SELECT "+sessionColumns+" FROM test_sessions WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(test_sessions) > %w", err)
	}
	return &sess, nil
}

func (s *DBStore) FindByUserAndTest(ctx context.Context, userID int64, testName string) (*Session, error) {
	var sess Session
	err := sqlx.GetContext(ctx, s.db, &sess,
		"SELECT "+sessionColumns+" FROM test_sessions WHERE user_id = ? AND test_name = ?",
		userID, testName,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(test_sessions) > %w", err)
	}
	return &sess, nil
}

// FinishReading moves a READING session to ANSWERING. It reports false when
// the session was not in READING.
func (s *DBStore) FinishReading(ctx context.Context, id uuid.UUID, readingMs int64) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		"UPDATE test_sessions SET state = ?, reading_duration_ms = ? WHERE id = ? AND state = ?",
		string(StateAnswering), readingMs, id, string(StateReading),
	)
	if err != nil {
		return false, fmt.Errorf("db.ExecContext(update test_sessions) > %w", err)
	}
	return affected(result)
}

// Complete stores the result of an ANSWERING session and moves it to
// COMPLETE. It reports false when the session was not in ANSWERING.
func (s *DBStore) Complete(ctx context.Context, id uuid.UUID, r Result, endedAt time.Time) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE test_sessions
SET state = ?, ended_at = ?, reading_speed_wpm = ?, memorization_speed_wpm = ?, correct_answers = ?, total_questions = ?
WHERE id = ? AND state = ?`,
		string(StateComplete), endedAt, r.ReadingSpeedWPM, r.MemorizationSpeedWPM, r.CorrectAnswers, r.TotalQuestions,
		id, string(StateAnswering),
	)
	if err != nil {
		return false, fmt.Errorf("db.ExecContext(update test_sessions) > %w", err)
	}
	return affected(result)
}

func (s *DBStore) InsertAnswer(ctx context.Context, a AnswerRecord) error {
	if _, err := s.db.ExecContext(ctx,
		"INSERT INTO session_answers (session_id, question_id, option_id, correct) VALUES (?, ?, ?, ?)",
		a.SessionID, a.QuestionID, a.OptionID, a.Correct,
	); err != nil {
		return fmt.Errorf("db.ExecContext(insert session_answers) > %w", err)
	}
	return nil
}

func (s *DBStore) ListAnswers(ctx context.Context, id uuid.UUID) ([]AnswerRecord, error) {
	var answers []AnswerRecord
	if err := sqlx.SelectContext(ctx, s.db, &answers,
		"SELECT session_id, question_id, option_id, correct FROM session_answers WHERE session_id = ? ORDER BY question_id",
		id,
	); err != nil {
		return nil, fmt.Errorf("db.SelectContext(session_answers) > %w", err)
	}
	return answers, nil
}

// ListCompleted returns the user's completed sessions, most recent first.
func (s *DBStore) ListCompleted(ctx context.Context, userID int64) ([]Session, error) {
	var sessions []Session
	if err := sqlx.SelectContext(ctx, s.db, &sessions,
		"SELECT "+sessionColumns+" FROM test_sessions WHERE user_id = ? AND state = ? ORDER BY ended_at DESC",
		userID, string(StateComplete),
	); err != nil {
		return nil, fmt.Errorf("db.SelectContext(test_sessions) > %w", err)
	}
	return sessions, nil
}

func affected(result sql.Result) (bool, error) {
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("result.RowsAffected() > %w", err)
	}
	return n > 0, nil
}
