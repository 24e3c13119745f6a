package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/speedreading/trainer/internal/access"
	"github.com/speedreading/trainer/internal/account"
	"github.com/speedreading/trainer/internal/catalog"
	"github.com/speedreading/trainer/internal/database"
	"github.com/speedreading/trainer/internal/progress"
)

var tracer = otel.Tracer("github.com/speedreading/trainer/internal/session")

//go:generate mockgen -source=service.go -destination=../mocks/session/mock_service.go -package=mock_session

// TestFinder loads a test with its questions. It returns nil when the test does not exist.
type TestFinder interface {
	FindTest(ctx context.Context, name string) (*catalog.TestDefinition, error)
}

type AccessChecker interface {
	CanAccessTest(ctx context.Context, user account.User, test catalog.TestDefinition, suppliedCode *string) (access.TestDecision, error)
}

// StartResult is the outcome of Start. Session is nil when the decision denies access.
type StartResult struct {
	Decision access.TestDecision
	Session  *Session
	Resumed  bool
	Test     *catalog.TestDefinition
}

// sessionStore is the part of DBStore the service calls.
type sessionStore interface {
	WithTx(tx *sqlx.Tx) *DBStore
	Create(ctx context.Context, sess *Session) error
	FindByID(ctx context.Context, id uuid.UUID) (*Session, error)
	FindByUserAndTest(ctx context.Context, userID int64, testName string) (*Session, error)
	FinishReading(ctx context.Context, id uuid.UUID, readingMs int64) (bool, error)
	ListAnswers(ctx context.Context, id uuid.UUID) ([]AnswerRecord, error)
	ListCompleted(ctx context.Context, userID int64) ([]Session, error)
}

// Service drives sessions through their states. Completing a session and
// recording its best-of progress happen in one transaction.
type Service struct {
	db       *sqlx.DB
	sessions sessionStore
	ledger   *progress.DBLedgerStore
	tests    TestFinder
	access   AccessChecker
	scoring  Scoring
	now      func() time.Time
}

func NewService(db *sqlx.DB, tests TestFinder, checker AccessChecker, scoring Scoring) *Service {
	return &Service{
		db:       db,
		sessions: NewDBStore(db),
		ledger:   progress.NewDBLedgerStore(db),
		tests:    tests,
		access:   checker,
		scoring:  scoring,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Start opens a READING session on testName, or resumes the user's unfinished one.
func (s *Service) Start(ctx context.Context, user account.User, testName string, suppliedCode *string) (result *StartResult, err error) {
	ctx, span := tracer.Start(ctx, "session.Start", trace.WithAttributes(
		attribute.Int64("user.id", user.ID),
		attribute.String("test.name", testName),
	))
	defer func() { endSpan(span, err) }()

	test, err := s.tests.FindTest(ctx, testName)
	if err != nil {
		return nil, fmt.Errorf("tests.FindTest(%s) > %w", testName, err)
	}
	if test == nil {
		reason := access.Reason{Code: access.ReasonTestUnavailable}
		return &StartResult{Decision: access.TestDecision{Reason: &reason}}, nil
	}

	decision, err := s.access.CanAccessTest(ctx, user, *test, suppliedCode)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		slog.Default().Debug("test start denied", "user_id", user.ID, "test", testName, "reason", decision.ReasonString())
		return &StartResult{Decision: decision, Test: test}, nil
	}

	completed, err := s.ledger.HasCompletedTest(ctx, user.ID, testName)
	if err != nil {
		return nil, err
	}
	if completed {
		return nil, ErrAlreadyCompleted
	}

	existing, err := s.sessions.FindByUserAndTest(ctx, user.ID, testName)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		sess := &Session{
			ID:        uuid.New(),
			UserID:    user.ID,
			TestName:  testName,
			State:     StateReading,
			StartedAt: s.now(),
		}
		err = s.sessions.Create(ctx, sess)
		if err == nil {
			slog.Default().Info("test session started", "user_id", user.ID, "test", testName, "session_id", sess.ID)
			return &StartResult{Decision: decision, Session: sess, Test: test}, nil
		}
		if !errors.Is(err, errSessionExists) {
			return nil, err
		}
		// a concurrent start won the race
		existing, err = s.sessions.FindByUserAndTest(ctx, user.ID, testName)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, fmt.Errorf("session for user %d on %s vanished after a conflicting insert", user.ID, testName)
		}
	}
	if existing.State == StateComplete {
		return nil, ErrAlreadyCompleted
	}

	slog.Default().Info("test session resumed", "user_id", user.ID, "test", testName, "session_id", existing.ID, "state", existing.State)
	return &StartResult{Decision: decision, Session: existing, Resumed: true, Test: test}, nil
}

// FinishReading moves the session from READING to ANSWERING and stores the
// reading time.
func (s *Service) FinishReading(ctx context.Context, userID int64, id uuid.UUID, readingMs int64) (sess *Session, err error) {
	ctx, span := tracer.Start(ctx, "session.FinishReading", trace.WithAttributes(
		attribute.Int64("user.id", userID),
		attribute.String("session.id", id.String()),
	))
	defer func() { endSpan(span, err) }()

	if readingMs < 0 {
		return nil, ErrInvalidReadingTime
	}
	sess, err = s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if sess.State != StateReading {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, sess.State, StateAnswering)
	}

	moved, err := s.sessions.FinishReading(ctx, id, readingMs)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, fmt.Errorf("%w: session %s left %s concurrently", ErrInvalidTransition, id, StateReading)
	}

	sess.State = StateAnswering
	sess.ReadingDurationMs.Int64, sess.ReadingDurationMs.Valid = readingMs, true
	slog.Default().Info("reading finished", "session_id", id, "reading_ms", readingMs)
	return sess, nil
}

// SubmitAnswers scores the answers, completes the session and records the
// user's best-of progress. Either all of it is stored or nothing is.
func (s *Service) SubmitAnswers(ctx context.Context, userID int64, id uuid.UUID, answers []Answer) (sess *Session, err error) {
	ctx, span := tracer.Start(ctx, "session.SubmitAnswers", trace.WithAttributes(
		attribute.Int64("user.id", userID),
		attribute.String("session.id", id.String()),
		attribute.Int("answers", len(answers)),
	))
	defer func() { endSpan(span, err) }()

	sess, err = s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if sess.State != StateAnswering {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, sess.State, StateComplete)
	}
	if len(answers) == 0 {
		return nil, ErrNoAnswers
	}
	test, err := s.tests.FindTest(ctx, sess.TestName)
	if err != nil {
		return nil, fmt.Errorf("tests.FindTest(%s) > %w", sess.TestName, err)
	}
	if test == nil {
		return nil, fmt.Errorf("%w: %s", catalog.ErrTestNotFound, sess.TestName)
	}
	records, correct, err := grade(*test, id, answers)
	if err != nil {
		return nil, err
	}

	result := s.scoring.Compute(test.WordCount, sess.ReadingDurationMs.Int64, correct, len(answers))
	endedAt := s.now()
	err = database.RunInTx(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		sessions := s.sessions.WithTx(tx)
		for _, record := range records {
			if err := sessions.InsertAnswer(ctx, record); err != nil {
				return err
			}
		}
		completed, err := sessions.Complete(ctx, id, result, endedAt)
		if err != nil {
			return err
		}
		if !completed {
			return fmt.Errorf("%w: session %s left %s concurrently", ErrInvalidTransition, id, StateAnswering)
		}
		if _, err := s.ledger.WithTx(tx).RecordBestOf(ctx, progress.TestProgress{
			UserID:               userID,
			TestName:             sess.TestName,
			ReadingSpeedWPM:      result.ReadingSpeedWPM,
			MemorizationSpeedWPM: result.MemorizationSpeedWPM,
			CorrectAnswers:       result.CorrectAnswers,
			TotalQuestions:       result.TotalQuestions,
			ReadingDurationMs:    sess.ReadingDurationMs.Int64,
			Completed:            true,
			CompletedAt:          endedAt,
		}); err != nil {
			return fmt.Errorf("ledger.RecordBestOf() > %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sess.State = StateComplete
	sess.EndedAt.Time, sess.EndedAt.Valid = endedAt, true
	sess.ReadingSpeedWPM = result.ReadingSpeedWPM
	sess.MemorizationSpeedWPM = result.MemorizationSpeedWPM
	sess.CorrectAnswers = result.CorrectAnswers
	sess.TotalQuestions = result.TotalQuestions
	slog.Default().Info("test session completed",
		"session_id", id, "test", sess.TestName, "reading_wpm", result.ReadingSpeedWPM, "memorization_wpm", result.MemorizationSpeedWPM)
	return sess, nil
}

// grade checks every answer against the test and counts the correct ones.
func grade(test catalog.TestDefinition, id uuid.UUID, answers []Answer) ([]AnswerRecord, int, error) {
	records := make([]AnswerRecord, 0, len(answers))
	seen := make(map[int64]bool, len(answers))
	correct := 0
	for _, a := range answers {
		if seen[a.QuestionID] {
			return nil, 0, fmt.Errorf("%w: question %d", ErrDuplicateAnswer, a.QuestionID)
		}
		seen[a.QuestionID] = true

		question := test.Question(a.QuestionID)
		if question == nil {
			return nil, 0, fmt.Errorf("%w: question %d", ErrUnknownQuestion, a.QuestionID)
		}
		option := question.Option(a.OptionID)
		if option == nil {
			return nil, 0, fmt.Errorf("%w: option %d of question %d", ErrUnknownOption, a.OptionID, a.QuestionID)
		}
		if option.IsCorrect {
			correct++
		}
		records = append(records, AnswerRecord{SessionID: id, QuestionID: a.QuestionID, OptionID: a.OptionID, Correct: option.IsCorrect})
	}
	return records, correct, nil
}

// Get returns the user's session. Sessions of other users are not found.
func (s *Service) Get(ctx context.Context, userID int64, id uuid.UUID) (*Session, error) {
	sess, err := s.sessions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess == nil || sess.UserID != userID {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return sess, nil
}

func (s *Service) Answers(ctx context.Context, userID int64, id uuid.UUID) ([]AnswerRecord, error) {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return nil, err
	}
	return s.sessions.ListAnswers(ctx, id)
}

func (s *Service) ListCompleted(ctx context.Context, userID int64) ([]Session, error) {
	return s.sessions.ListCompleted(ctx, userID)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
