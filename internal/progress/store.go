package progress

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/speedreading/trainer/internal/database"
)

//go:generate mockgen -source=store.go -destination=../mocks/progress/mock_store.go -package=mock_progress

// LedgerStore persists completion records. Implementations must make
// MarkExerciseCompleted and RecordBestOf safe under concurrent callers.
type LedgerStore interface {
	HasCompletedExercise(ctx context.Context, userID int64, code string) (bool, error)
	MarkExerciseCompleted(ctx context.Context, userID int64, code string, at time.Time) error
	CompletedExerciseCodes(ctx context.Context, userID int64, codes []string) (map[string]bool, error)
	HasCompletedTest(ctx context.Context, userID int64, testName string) (bool, error)
	FindTestProgress(ctx context.Context, userID int64, testName string) (*TestProgress, error)
	RecordBestOf(ctx context.Context, progress TestProgress) (bool, error)
	ListTestProgress(ctx context.Context, userID int64) ([]TestProgress, error)
	CompletedExercisesByCategory(ctx context.Context, userID int64) (map[string]int, error)
}

// DBLedgerStore implements LedgerStore using sqlx. It runs against either the
// pool or a transaction.
type DBLedgerStore struct {
	db sqlx.ExtContext
}

func NewDBLedgerStore(db sqlx.ExtContext) *DBLedgerStore {
	return &DBLedgerStore{db: db}
}

// WithTx returns a store bound to tx.
func (s *DBLedgerStore) WithTx(tx *sqlx.Tx) *DBLedgerStore {
	return &DBLedgerStore{db: tx}
}

const testProgressColumns = "user_id, test_name, reading_speed_wpm, memorization_speed_wpm, correct_answers, total_questions, reading_duration_ms, completed, completed_at"

func (s *DBLedgerStore) HasCompletedExercise(ctx context.Context, userID int64, code string) (bool, error) {
	var done bool
	err := sqlx.GetContext(ctx, s.db, &done,
		"SELECT done FROM exercise_completions WHERE user_id = ? AND exercise_code = ?",
		userID, code,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("db.GetContext(exercise_completions) > %w", err)
	}
	return done, nil
}

// MarkExerciseCompleted creates the record or refreshes its timestamp.
func (s *DBLedgerStore) MarkExerciseCompleted(ctx context.Context, userID int64, code string, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO exercise_completions (user_id, exercise_code, done, completed_at) VALUES (?, ?, ?, ?)",
		userID, code, true, at,
	)
	if database.IsDuplicateKeyError(err) {
		_, err = s.db.ExecContext(ctx,
			"UPDATE exercise_completions SET done = ?, completed_at = ? WHERE user_id = ? AND exercise_code = ?",
			true, at, userID, code,
		)
	}
	if err != nil {
		return fmt.Errorf("db.ExecContext(save exercise_completions) > %w", err)
	}
	return nil
}

// CompletedExerciseCodes returns which of codes the user has completed.
func (s *DBLedgerStore) CompletedExerciseCodes(ctx context.Context, userID int64, codes []string) (map[string]bool, error) {
	completed := make(map[string]bool, len(codes))
	if len(codes) == 0 {
		return completed, nil
	}

	query, args, err := sqlx.In(
		"SELECT exercise_code FROM exercise_completions WHERE user_id = ? AND done = ? AND exercise_code IN (?)",
		userID, true, codes,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlx.In() > %w", err)
	}
	var found []string
	if err := sqlx.SelectContext(ctx, s.db, &found, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext(exercise_completions) > %w", err)
	}
	for _, code := range found {
		completed[code] = true
	}
	return completed, nil
}

func (s *DBLedgerStore) HasCompletedTest(ctx context.Context, userID int64, testName string) (bool, error) {
	var completed bool
	err := sqlx.GetContext(ctx, s.db, &completed,
		"SELECT completed FROM test_progress WHERE user_id = ? AND test_name = ?",
		userID, testName,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("db.GetContext(test_progress) > %w", err)
	}
	return completed, nil
}

func (s *DBLedgerStore) FindTestProgress(ctx context.Context, userID int64, testName string) (*TestProgress, error) {
	var p TestProgress
	err := sqlx.GetContext(ctx, s.db, &p,
		"SELECT "+testProgressColumns+" FROM test_progress WHERE user_id = ? AND test_name = ?",
		userID, testName,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(test_progress) > %w", err)
	}
	return &p, nil
}

// RecordBestOf inserts p when the user has no record for the test, otherwise
// replaces every field only when p.ReadingSpeedWPM is strictly greater.
// It reports whether the stored record changed.
func (s *DBLedgerStore) RecordBestOf(ctx context.Context, p TestProgress) (bool, error) {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO test_progress ("+testProgressColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		p.UserID, p.TestName, p.ReadingSpeedWPM, p.MemorizationSpeedWPM, p.CorrectAnswers, p.TotalQuestions,
		p.ReadingDurationMs, p.Completed, p.CompletedAt,
	)
	if err == nil {
		return true, nil
	}
	if !database.IsDuplicateKeyError(err) {
		return false, fmt.Errorf("db.ExecContext(insert test_progress) > %w", err)
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE test_progress
SET reading_speed_wpm = ?, memorization_speed_wpm = ?, correct_answers = ?, total_questions = ?,
    reading_duration_ms = ?, completed = ?, completed_at = ?
WHERE user_id = ? AND test_name = ? AND reading_speed_wpm < ?`,
		p.ReadingSpeedWPM, p.MemorizationSpeedWPM, p.CorrectAnswers, p.TotalQuestions,
		p.ReadingDurationMs, p.Completed, p.CompletedAt,
		p.UserID, p.TestName, p.ReadingSpeedWPM,
	)
	if err != nil {
		return false, fmt.Errorf("db.ExecContext(update test_progress) > %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("result.RowsAffected() > %w", err)
	}
	return affected > 0, nil
}

// ListTestProgress returns the user's records, most recent first.
func (s *DBLedgerStore) ListTestProgress(ctx context.Context, userID int64) ([]TestProgress, error) {
	var records []TestProgress
	if err := sqlx.SelectContext(ctx, s.db, &records,
		"SELECT "+testProgressColumns+" FROM test_progress WHERE user_id = ? ORDER BY completed_at DESC, test_name",
		userID,
	); err != nil {
		return nil, fmt.Errorf("db.SelectContext(test_progress) > %w", err)
	}
	return records, nil
}

// CompletedExercisesByCategory counts the user's completed exercises per category code.
func (s *DBLedgerStore) CompletedExercisesByCategory(ctx context.Context, userID int64) (map[string]int, error) {
	var rows []struct {
		CategoryCode string `db:"category_code"`
		Completed    int    `db:"completed"`
	}
	if err := sqlx.SelectContext(ctx, s.db, &rows,
		`SELECT e.category_code AS category_code, COUNT(*) AS completed
FROM exercise_completions c JOIN exercises e ON e.code = c.exercise_code
WHERE c.user_id = ? AND c.done = ?
GROUP BY e.category_code`,
		userID, true,
	); err != nil {
		return nil, fmt.Errorf("db.SelectContext(exercise_completions) > %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.CategoryCode] = row.Completed
	}
	return counts, nil
}
