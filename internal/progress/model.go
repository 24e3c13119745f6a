// Package progress records what each user has completed: exercises, and the
// best attempt of every reading test.
package progress

import "time"

type ExerciseCompletion struct {
	UserID       int64     `db:"user_id"`
	ExerciseCode string    `db:"exercise_code"`
	Done         bool      `db:"done"`
	CompletedAt  time.Time `db:"completed_at"`
}

// TestProgress is the best-of record of a user on one test. Its paired fields
// always come from the same attempt.
type TestProgress struct {
	UserID               int64     `db:"user_id"`
	TestName             string    `db:"test_name"`
	ReadingSpeedWPM      int       `db:"reading_speed_wpm"`
	MemorizationSpeedWPM int       `db:"memorization_speed_wpm"`
	CorrectAnswers       int       `db:"correct_answers"`
	TotalQuestions       int       `db:"total_questions"`
	ReadingDurationMs    int64     `db:"reading_duration_ms"`
	Completed            bool      `db:"completed"`
	CompletedAt          time.Time `db:"completed_at"`
}

func (p TestProgress) ReadingDuration() time.Duration {
	return time.Duration(p.ReadingDurationMs) * time.Millisecond
}

// Summary aggregates a user's progress for statistics screens.
type Summary struct {
	UserID                int64
	TestsCompleted        int
	BestReadingSpeed      int
	BestMemorizationSpeed int
	AverageReadingSpeed   int
	ExercisesCompleted    int
	ExercisesByCategory   map[string]int
	LastTest              *TestProgress
}
