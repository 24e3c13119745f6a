package session

import (
	"math"

	"github.com/speedreading/trainer/internal/config"
)

// Scoring holds the constants of the memorization speed formula. With the
// defaults the first 5 correct answers earn nothing and the remaining 15 of a
// 20 question test scale the reading speed.
type Scoring struct {
	DiscountedAnswers int
	Denominator       int
}

func DefaultScoring() Scoring {
	return Scoring{DiscountedAnswers: 5, Denominator: 15}
}

func ScoringFromConfig(cfg config.ScoringConfig) Scoring {
	return Scoring{DiscountedAnswers: cfg.DiscountedAnswers, Denominator: cfg.Denominator}
}

type Result struct {
	ReadingSpeedWPM      int
	MemorizationSpeedWPM int
	CorrectAnswers       int
	TotalQuestions       int
}

// ReadingSpeed returns floor(words / minutes), or 0 when either is not positive.
func ReadingSpeed(words int, readingMs int64) int {
	minutes := float64(readingMs) / 1000 / 60
	if words <= 0 || minutes <= 0 {
		return 0
	}
	return int(math.Floor(float64(words) / minutes))
}

// MemorizationSpeed scales readingSpeed by the share of correct answers beyond
// the discounted ones.
func (s Scoring) MemorizationSpeed(readingSpeed, correct int) int {
	if s.Denominator <= 0 {
		return 0
	}
	adjusted := max(0, correct-s.DiscountedAnswers)
	percentage := float64(adjusted) / float64(s.Denominator) * 100
	return int(math.Floor(float64(readingSpeed) * (percentage / 100)))
}

func (s Scoring) Compute(words int, readingMs int64, correct, total int) Result {
	reading := ReadingSpeed(words, readingMs)
	return Result{
		ReadingSpeedWPM:      reading,
		MemorizationSpeedWPM: s.MemorizationSpeed(reading, correct),
		CorrectAnswers:       correct,
		TotalQuestions:       total,
	}
}
