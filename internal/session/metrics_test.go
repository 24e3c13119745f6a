package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadingSpeed(t *testing.T) {
	tests := []struct {
		name      string
		words     int
		readingMs int64
		want      int
	}{
		{name: "800 words in 2 minutes", words: 800, readingMs: 120000, want: 400},
		{name: "floors the result", words: 800, readingMs: 90000, want: 533},
		{name: "short test", words: 250, readingMs: 45500, want: 329},
		{name: "zero reading time", words: 800, readingMs: 0, want: 0},
		{name: "negative reading time", words: 800, readingMs: -1, want: 0},
		{name: "no words", words: 0, readingMs: 120000, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReadingSpeed(tt.words, tt.readingMs))
		})
	}
}

func TestScoring_MemorizationSpeed(t *testing.T) {
	tests := []struct {
		name    string
		scoring Scoring
		reading int
		correct int
		want    int
	}{
		{name: "7 correct at 400 wpm", scoring: DefaultScoring(), reading: 400, correct: 7, want: 53},
		{name: "first five answers earn nothing", scoring: DefaultScoring(), reading: 400, correct: 5, want: 0},
		{name: "fewer than five correct", scoring: DefaultScoring(), reading: 400, correct: 2, want: 0},
		{name: "all 20 correct", scoring: DefaultScoring(), reading: 400, correct: 20, want: 400},
		{name: "14 correct at 333 wpm", scoring: DefaultScoring(), reading: 333, correct: 14, want: 199},
		{name: "custom denominator", scoring: Scoring{DiscountedAnswers: 0, Denominator: 20}, reading: 400, correct: 10, want: 200},
		{name: "zero denominator", scoring: Scoring{Denominator: 0}, reading: 400, correct: 10, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.scoring.MemorizationSpeed(tt.reading, tt.correct))
		})
	}
}

func TestScoring_Compute(t *testing.T) {
	got := DefaultScoring().Compute(800, 120000, 7, 20)
	assert.Equal(t, Result{ReadingSpeedWPM: 400, MemorizationSpeedWPM: 53, CorrectAnswers: 7, TotalQuestions: 20}, got)
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		want   Evaluation
	}{
		{
			name:   "slow reader with low comprehension",
			result: Result{ReadingSpeedWPM: 150, MemorizationSpeedWPM: 20, CorrectAnswers: 10, TotalQuestions: 20},
			want: Evaluation{
				Speed: SpeedSlow, Memorization: MemorizationNeedsWork, Comprehension: ComprehensionLow,
				ComprehensionPct: 50, Message: MessageKeepGoing,
			},
		},
		{
			name:   "average reader",
			result: Result{ReadingSpeedWPM: 300, MemorizationSpeedWPM: 180, CorrectAnswers: 5, TotalQuestions: 8},
			want: Evaluation{
				Speed: SpeedAverage, Memorization: MemorizationGood, Comprehension: ComprehensionAcceptable,
				ComprehensionPct: 62.5, Message: MessageGoodWork,
			},
		},
		{
			name:   "fast reader",
			result: Result{ReadingSpeedWPM: 500, MemorizationSpeedWPM: 400, CorrectAnswers: 15, TotalQuestions: 20},
			want: Evaluation{
				Speed: SpeedFast, Memorization: MemorizationExcellent, Comprehension: ComprehensionExcellent,
				ComprehensionPct: 75, Message: MessageGreat,
			},
		},
		{
			name:   "advanced reader",
			result: Result{ReadingSpeedWPM: 700, MemorizationSpeedWPM: 653, CorrectAnswers: 15, TotalQuestions: 16},
			want: Evaluation{
				Speed: SpeedAdvanced, Memorization: MemorizationExcellent, Comprehension: ComprehensionExcellent,
				ComprehensionPct: 93.75, Message: MessageOutstanding,
			},
		},
		{
			name:   "no questions",
			result: Result{},
			want: Evaluation{
				Speed: SpeedSlow, Memorization: MemorizationExcellent, Comprehension: ComprehensionLow,
				Message: MessageKeepGoing,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.result))
		})
	}
}
