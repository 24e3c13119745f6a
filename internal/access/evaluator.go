package access

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/speedreading/trainer/internal/account"
	"github.com/speedreading/trainer/internal/catalog"
)

var tracer = otel.Tracer("github.com/speedreading/trainer/internal/access")

//go:generate mockgen -source=evaluator.go -destination=../mocks/access/mock_evaluator.go -package=mock_access

// CompletionChecker answers the two questions every rule is built from.
type CompletionChecker interface {
	HasCompletedTest(ctx context.Context, userID int64, testName string) (bool, error)
	IsBlockComplete(ctx context.Context, userID int64, block int) (bool, error)
}

// Evaluator makes access decisions. It keeps no state between calls, so every
// decision reflects the ledger at the time of the call.
type Evaluator struct {
	rules       Rules
	completions CompletionChecker
}

func NewEvaluator(rules Rules, completions CompletionChecker) *Evaluator {
	return &Evaluator{rules: rules, completions: completions}
}

func (e *Evaluator) Rules() Rules {
	return e.rules
}

// CanAccessExercise collects every reason the exercise is closed to user.
// Inactive exercises and administrators short-circuit.
func (e *Evaluator) CanAccessExercise(ctx context.Context, user account.User, exercise catalog.ExerciseDefinition) (decision ExerciseDecision, err error) {
	ctx, span := tracer.Start(ctx, "access.CanAccessExercise", trace.WithAttributes(
		attribute.Int64("user.id", user.ID),
		attribute.String("exercise.code", exercise.Code),
		attribute.Int("exercise.block", exercise.Block),
	))
	defer func() {
		endSpan(span, decision.Allowed, err)
	}()

	if !exercise.Active {
		return ExerciseDecision{Reasons: []Reason{{Code: ReasonExerciseUnavailable}}}, nil
	}
	if account.IsAdministrator(user) {
		return ExerciseDecision{Allowed: true}, nil
	}

	var reasons []Reason
	if exercise.RequiresElevatedTier && !account.IsElevatedTier(user) {
		reasons = append(reasons, Reason{Code: ReasonElevatedTier})
	}
	unmet, err := e.UnmetPrerequisites(ctx, user.ID, exercise.Block)
	if err != nil {
		return ExerciseDecision{}, err
	}
	reasons = append(reasons, unmet...)

	decision = ExerciseDecision{Allowed: len(reasons) == 0, Reasons: reasons}
	slog.Default().Debug("exercise access evaluated",
		"user_id", user.ID, "exercise", exercise.Code, "allowed", decision.Allowed, "reasons", decision.ReasonStrings())
	return decision, nil
}

// CanAccessTest returns the first reason the test is closed to user.
// suppliedCode is nil when the user gave no access code. Whether the test was
// already completed is not checked here.
func (e *Evaluator) CanAccessTest(ctx context.Context, user account.User, test catalog.TestDefinition, suppliedCode *string) (decision TestDecision, err error) {
	ctx, span := tracer.Start(ctx, "access.CanAccessTest", trace.WithAttributes(
		attribute.Int64("user.id", user.ID),
		attribute.String("test.name", test.Name),
	))
	defer func() {
		endSpan(span, decision.Allowed, err)
	}()

	if !test.Active {
		return denyTest(Reason{Code: ReasonTestUnavailable}), nil
	}
	if account.IsAdministrator(user) {
		return allowTest(), nil
	}
	if test.RequiresElevatedTier && !account.IsElevatedTier(user) {
		return denyTest(Reason{Code: ReasonElevatedTier}), nil
	}
	if !test.MatchesAccessCode(suppliedCode) {
		return denyTest(Reason{Code: ReasonAccessCode}), nil
	}

	rule, ok := e.rules.TestRule(test.Name)
	if !ok {
		return allowTest(), nil
	}
	if rule.PriorTest != "" {
		done, err := e.testCompleted(ctx, user.ID, rule.PriorTest)
		if err != nil {
			return TestDecision{}, err
		}
		if !done {
			return denyTest(Reason{Code: ReasonPriorTest, Test: rule.PriorTest, DisplayName: e.rules.DisplayName(rule.PriorTest)}), nil
		}
	}
	if rule.RequiredBlock > 0 {
		done, err := e.blockComplete(ctx, user.ID, rule.RequiredBlock)
		if err != nil {
			return TestDecision{}, err
		}
		if !done {
			return denyTest(Reason{Code: ReasonBlockExercises, Block: rule.RequiredBlock}), nil
		}
	}
	return allowTest(), nil
}

// IsBlockSatisfied reports whether the prerequisite of block holds for the user.
// Blocks without a prerequisite are satisfied.
func (e *Evaluator) IsBlockSatisfied(ctx context.Context, userID int64, block int) (bool, error) {
	unmet, err := e.UnmetPrerequisites(ctx, userID, block)
	if err != nil {
		return false, err
	}
	return len(unmet) == 0, nil
}

// UnmetPrerequisites returns one reason per unmet part of the block's
// prerequisite: the required test first, then each required block in order.
func (e *Evaluator) UnmetPrerequisites(ctx context.Context, userID int64, block int) ([]Reason, error) {
	req, ok := e.rules.Requirement(block)
	if !ok {
		return nil, nil
	}

	var reasons []Reason
	if req.RequiredTest != "" {
		done, err := e.testCompleted(ctx, userID, req.RequiredTest)
		if err != nil {
			return nil, err
		}
		if !done {
			reasons = append(reasons, Reason{Code: ReasonTestRequired, Test: req.RequiredTest, DisplayName: e.rules.DisplayName(req.RequiredTest)})
		}
	}
	for _, required := range req.RequiredBlocks {
		done, err := e.blockComplete(ctx, userID, required)
		if err != nil {
			return nil, err
		}
		if !done {
			reasons = append(reasons, Reason{Code: ReasonBlockRequired, Block: required})
		}
	}
	return reasons, nil
}

func (e *Evaluator) testCompleted(ctx context.Context, userID int64, name string) (bool, error) {
	done, err := e.completions.HasCompletedTest(ctx, userID, name)
	if err != nil {
		return false, fmt.Errorf("completions.HasCompletedTest(%s) > %w", name, err)
	}
	return done, nil
}

func (e *Evaluator) blockComplete(ctx context.Context, userID int64, block int) (bool, error) {
	done, err := e.completions.IsBlockComplete(ctx, userID, block)
	if err != nil {
		return false, fmt.Errorf("completions.IsBlockComplete(%d) > %w", block, err)
	}
	return done, nil
}

func endSpan(span trace.Span, allowed bool, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.Bool("access.allowed", allowed))
	}
	span.End()
}
