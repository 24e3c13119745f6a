package access

import (
	"errors"
	"fmt"
)

// ErrDenied is returned by callers that refuse an operation after a denied decision.
var ErrDenied = errors.New("access: denied")

type ReasonCode string

const (
	ReasonExerciseUnavailable ReasonCode = "exercise_unavailable"
	ReasonTestUnavailable     ReasonCode = "test_unavailable"
	ReasonElevatedTier        ReasonCode = "elevated_tier"
	ReasonAccessCode          ReasonCode = "access_code"
	// ReasonTestRequired and ReasonBlockRequired explain an unmet block prerequisite.
	ReasonTestRequired  ReasonCode = "test_required"
	ReasonBlockRequired ReasonCode = "block_required"
	// ReasonPriorTest and ReasonBlockExercises explain an unmet test rule.
	ReasonPriorTest      ReasonCode = "prior_test"
	ReasonBlockExercises ReasonCode = "block_exercises"
)

// Reason is one enumerable cause of a denial.
type Reason struct {
	Code        ReasonCode
	Test        string
	DisplayName string
	Block       int
}

func (r Reason) String() string {
	switch r.Code {
	case ReasonExerciseUnavailable:
		return "exercise unavailable"
	case ReasonTestUnavailable:
		return "test unavailable"
	case ReasonElevatedTier:
		return "requires elevated tier"
	case ReasonAccessCode:
		return "incorrect access code"
	case ReasonTestRequired:
		return fmt.Sprintf("must complete test %s", r.Test)
	case ReasonBlockRequired:
		return fmt.Sprintf("must complete all exercises in block %d", r.Block)
	case ReasonPriorTest:
		return fmt.Sprintf("must complete %s first", r.DisplayName)
	case ReasonBlockExercises:
		return fmt.Sprintf("must complete all Block %d exercises", r.Block)
	default:
		return string(r.Code)
	}
}

// ExerciseDecision lists every reason an exercise is closed, in check order.
type ExerciseDecision struct {
	Allowed bool
	Reasons []Reason
}

func (d ExerciseDecision) ReasonStrings() []string {
	reasons := make([]string, 0, len(d.Reasons))
	for _, r := range d.Reasons {
		reasons = append(reasons, r.String())
	}
	return reasons
}

// TestDecision carries the first reason a test is closed.
type TestDecision struct {
	Allowed bool
	Reason  *Reason
}

// ReasonString returns "" when the test is allowed.
func (d TestDecision) ReasonString() string {
	if d.Reason == nil {
		return ""
	}
	return d.Reason.String()
}

func allowTest() TestDecision {
	return TestDecision{Allowed: true}
}

func denyTest(reason Reason) TestDecision {
	return TestDecision{Allowed: false, Reason: &reason}
}
