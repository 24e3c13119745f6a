package progress

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

//go:generate mockgen -source=ledger.go -destination=../mocks/progress/mock_ledger.go -package=mock_progress

// ExerciseIndex lists the active exercise codes of a block.
type ExerciseIndex interface {
	ActiveExerciseCodes(ctx context.Context, block int) ([]string, error)
}

// Ledger answers completion questions on top of a LedgerStore.
type Ledger struct {
	store     LedgerStore
	exercises ExerciseIndex
	now       func() time.Time
}

func NewLedger(store LedgerStore, exercises ExerciseIndex) *Ledger {
	return &Ledger{
		store:     store,
		exercises: exercises,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (l *Ledger) HasCompletedExercise(ctx context.Context, userID int64, code string) (bool, error) {
	return l.store.HasCompletedExercise(ctx, userID, code)
}

// MarkExerciseCompleted is idempotent. Marking twice leaves one record.
func (l *Ledger) MarkExerciseCompleted(ctx context.Context, userID int64, code string) error {
	if err := l.store.MarkExerciseCompleted(ctx, userID, code, l.now()); err != nil {
		return fmt.Errorf("store.MarkExerciseCompleted() > %w", err)
	}
	slog.Default().Info("exercise completed", "user_id", userID, "exercise", code)
	return nil
}

func (l *Ledger) HasCompletedTest(ctx context.Context, userID int64, testName string) (bool, error) {
	return l.store.HasCompletedTest(ctx, userID, testName)
}

// IsBlockComplete reports whether every active exercise of block is completed.
// A block without active exercises is complete.
func (l *Ledger) IsBlockComplete(ctx context.Context, userID int64, block int) (bool, error) {
	missing, err := l.IncompleteExercises(ctx, userID, block)
	if err != nil {
		return false, err
	}
	return len(missing) == 0, nil
}

// IncompleteExercises returns the active exercises of block the user has not completed.
func (l *Ledger) IncompleteExercises(ctx context.Context, userID int64, block int) ([]string, error) {
	codes, err := l.exercises.ActiveExerciseCodes(ctx, block)
	if err != nil {
		return nil, fmt.Errorf("exercises.ActiveExerciseCodes(%d) > %w", block, err)
	}
	if len(codes) == 0 {
		slog.Default().Debug("block has no active exercises", "block", block)
		return nil, nil
	}

	completed, err := l.store.CompletedExerciseCodes(ctx, userID, codes)
	if err != nil {
		return nil, fmt.Errorf("store.CompletedExerciseCodes() > %w", err)
	}
	var missing []string
	for _, code := range codes {
		if !completed[code] {
			missing = append(missing, code)
		}
	}
	return missing, nil
}

// Summary aggregates the user's completed tests and exercises.
func (l *Ledger) Summary(ctx context.Context, userID int64) (*Summary, error) {
	records, err := l.store.ListTestProgress(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("store.ListTestProgress() > %w", err)
	}
	byCategory, err := l.store.CompletedExercisesByCategory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("store.CompletedExercisesByCategory() > %w", err)
	}

	summary := &Summary{UserID: userID, ExercisesByCategory: byCategory}
	for _, count := range byCategory {
		summary.ExercisesCompleted += count
	}

	totalSpeed := 0
	for i, p := range records {
		if !p.Completed {
			continue
		}
		summary.TestsCompleted++
		totalSpeed += p.ReadingSpeedWPM
		summary.BestReadingSpeed = max(summary.BestReadingSpeed, p.ReadingSpeedWPM)
		summary.BestMemorizationSpeed = max(summary.BestMemorizationSpeed, p.MemorizationSpeedWPM)
		if summary.LastTest == nil || p.CompletedAt.After(summary.LastTest.CompletedAt) {
			summary.LastTest = &records[i]
		}
	}
	if summary.TestsCompleted > 0 {
		summary.AverageReadingSpeed = totalSpeed / summary.TestsCompleted
	}
	return summary, nil
}
