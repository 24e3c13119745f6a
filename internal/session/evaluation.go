package session

type SpeedBand string

const (
	SpeedSlow     SpeedBand = "slow"
	SpeedAverage  SpeedBand = "average"
	SpeedFast     SpeedBand = "fast"
	SpeedAdvanced SpeedBand = "advanced"
)

type MemorizationBand string

const (
	MemorizationNeedsWork MemorizationBand = "needs_work"
	MemorizationGood      MemorizationBand = "good"
	MemorizationExcellent MemorizationBand = "excellent"
)

type ComprehensionBand string

const (
	ComprehensionLow        ComprehensionBand = "low"
	ComprehensionAcceptable ComprehensionBand = "acceptable"
	ComprehensionExcellent  ComprehensionBand = "excellent"
)

// MessageKey selects the closing message shown with a result.
type MessageKey string

const (
	MessageOutstanding MessageKey = "outstanding"
	MessageGreat       MessageKey = "great"
	MessageKeepGoing   MessageKey = "keep_going"
	MessageGoodWork    MessageKey = "good_work"
)

type Evaluation struct {
	Speed         SpeedBand
	Memorization  MemorizationBand
	Comprehension ComprehensionBand
	// ComprehensionPct is correct answers over total questions, in percent.
	ComprehensionPct float64
	Message          MessageKey
}

// Evaluate grades a result for the result screen.
func Evaluate(r Result) Evaluation {
	v := r.ReadingSpeedWPM
	vm := float64(r.MemorizationSpeedWPM)

	var e Evaluation
	if r.TotalQuestions > 0 {
		e.ComprehensionPct = float64(r.CorrectAnswers) / float64(r.TotalQuestions) * 100
	}

	switch {
	case v < 200:
		e.Speed = SpeedSlow
	case v < 400:
		e.Speed = SpeedAverage
	case v < 700:
		e.Speed = SpeedFast
	default:
		e.Speed = SpeedAdvanced
	}

	switch {
	case vm < float64(v)*0.5:
		e.Memorization = MemorizationNeedsWork
	case vm < float64(v)*0.7:
		e.Memorization = MemorizationGood
	default:
		e.Memorization = MemorizationExcellent
	}

	switch {
	case e.ComprehensionPct < 60:
		e.Comprehension = ComprehensionLow
	case e.ComprehensionPct < 75:
		e.Comprehension = ComprehensionAcceptable
	default:
		e.Comprehension = ComprehensionExcellent
	}

	switch {
	case v >= 700 && e.ComprehensionPct >= 75:
		e.Message = MessageOutstanding
	case v >= 400 && e.ComprehensionPct >= 70:
		e.Message = MessageGreat
	case v < 300 && e.ComprehensionPct < 60:
		e.Message = MessageKeepGoing
	default:
		e.Message = MessageGoodWork
	}
	return e
}
