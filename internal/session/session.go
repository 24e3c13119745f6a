// Package session runs a reading test attempt through its three states:
// READING, ANSWERING and COMPLETE.
package session

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

type State string

const (
	StateReading   State = "READING"
	StateAnswering State = "ANSWERING"
	StateComplete  State = "COMPLETE"
)

var (
	ErrSessionNotFound    = errors.New("session: not found")
	ErrInvalidTransition  = errors.New("session: invalid state transition")
	ErrAlreadyCompleted   = errors.New("session: test already completed, one attempt only")
	ErrInvalidReadingTime = errors.New("session: reading time must not be negative")
	ErrNoAnswers          = errors.New("session: no answers submitted")
	ErrUnknownQuestion    = errors.New("session: question does not belong to the test")
	ErrUnknownOption      = errors.New("session: option does not belong to the question")
	ErrDuplicateAnswer    = errors.New("session: question answered more than once")
	errSessionExists      = errors.New("session: already exists")
)

// Session is one attempt of a user on a test.
type Session struct {
	ID                   uuid.UUID     `db:"id"`
	UserID               int64         `db:"user_id"`
	TestName             string        `db:"test_name"`
	State                State         `db:"state"`
	StartedAt            time.Time     `db:"started_at"`
	EndedAt              sql.NullTime  `db:"ended_at"`
	ReadingDurationMs    sql.NullInt64 `db:"reading_duration_ms"`
	ReadingSpeedWPM      int           `db:"reading_speed_wpm"`
	MemorizationSpeedWPM int           `db:"memorization_speed_wpm"`
	CorrectAnswers       int           `db:"correct_answers"`
	TotalQuestions       int           `db:"total_questions"`
}

func (s Session) ReadingDuration() time.Duration {
	if !s.ReadingDurationMs.Valid {
		return 0
	}
	return time.Duration(s.ReadingDurationMs.Int64) * time.Millisecond
}

func (s Session) Result() Result {
	return Result{
		ReadingSpeedWPM:      s.ReadingSpeedWPM,
		MemorizationSpeedWPM: s.MemorizationSpeedWPM,
		CorrectAnswers:       s.CorrectAnswers,
		TotalQuestions:       s.TotalQuestions,
	}
}

// Answer is the option a user selected for a question.
type Answer struct {
	QuestionID int64 `yaml:"question_id" validate:"required"`
	OptionID   int64 `yaml:"option_id" validate:"required"`
}

type AnswerRecord struct {
	SessionID  uuid.UUID `db:"session_id"`
	QuestionID int64     `db:"question_id"`
	OptionID   int64     `db:"option_id"`
	Correct    bool      `db:"correct"`
}
