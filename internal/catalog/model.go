// Package catalog provides the exercise and test definitions users progress through.
package catalog

import (
	"fmt"
	"strings"

	"github.com/speedreading/trainer/internal/account"
)

const (
	MinLevel       = 1
	MaxLevel       = account.MaxLevel
	LevelsPerBlock = 3
)

type Category struct {
	Code        string `db:"code" yaml:"code"`
	Name        string `db:"name" yaml:"name"`
	Description string `db:"description" yaml:"description"`
	Order       int    `db:"sort_order" yaml:"order"`
	Active      bool   `db:"active" yaml:"active"`
}

// ExerciseDefinition is one exercise at one level. Block and
// RequiresElevatedTier are always derived from Level.
type ExerciseDefinition struct {
	Code                 string `db:"code"`
	CategoryCode         string `db:"category_code"`
	Name                 string `db:"name"`
	Level                int    `db:"level"`
	Block                int    `db:"block"`
	RequiresElevatedTier bool   `db:"requires_elevated_tier"`
	OrderInBlock         int    `db:"order_in_block"`
	Active               bool   `db:"active"`
}

// BlockForLevel maps levels 1-3, 4-6 and 7-9 to blocks 1, 2 and 3.
func BlockForLevel(level int) int {
	return (level + LevelsPerBlock - 1) / LevelsPerBlock
}

func RequiresElevatedTier(level int) bool {
	return level > account.MaxFreeLevel
}

// ExerciseCode builds the per-level code of a base exercise, e.g. EL1_N4.
func ExerciseCode(base string, level int) string {
	return fmt.Sprintf("%s_N%d", base, level)
}

func NewExerciseDefinition(code, categoryCode, name string, level, orderInBlock int) (ExerciseDefinition, error) {
	e := ExerciseDefinition{
		Code:         code,
		CategoryCode: categoryCode,
		Name:         name,
		Level:        level,
		OrderInBlock: orderInBlock,
		Active:       true,
	}
	if err := e.normalize(); err != nil {
		return ExerciseDefinition{}, err
	}
	return e, nil
}

func (e *ExerciseDefinition) normalize() error {
	if e.Code == "" {
		return fmt.Errorf("exercise code is required")
	}
	if e.Level < MinLevel || e.Level > MaxLevel {
		return fmt.Errorf("exercise %s: level %d is outside %d-%d", e.Code, e.Level, MinLevel, MaxLevel)
	}
	e.Block = BlockForLevel(e.Level)
	e.RequiresElevatedTier = RequiresElevatedTier(e.Level)
	return nil
}

type TestDefinition struct {
	Name                 string `db:"name"`
	Title                string `db:"title"`
	Ordinal              int    `db:"ordinal"`
	RequiresElevatedTier bool   `db:"requires_elevated_tier"`
	RequiresAccessCode   bool   `db:"requires_access_code"`
	AccessCode           string `db:"access_code"`
	Active               bool   `db:"active"`
	Text                 string `db:"body"`
	WordCount            int    `db:"word_count"`

	Questions []Question `db:"-"`
}

// CountWords returns the number of whitespace separated words in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// normalize fills WordCount from Text when it was not given.
func (t *TestDefinition) normalize() {
	if t.WordCount <= 0 && t.Text != "" {
		t.WordCount = CountWords(t.Text)
	}
}

// MatchesAccessCode reports whether supplied opens t.
func (t TestDefinition) MatchesAccessCode(supplied *string) bool {
	if !t.RequiresAccessCode {
		return true
	}
	return supplied != nil && *supplied == t.AccessCode
}

// Question returns the question with id, or nil.
func (t TestDefinition) Question(id int64) *Question {
	for i := range t.Questions {
		if t.Questions[i].ID == id {
			return &t.Questions[i]
		}
	}
	return nil
}

type Question struct {
	ID       int64  `db:"id"`
	TestName string `db:"test_name"`
	Position int    `db:"position"`
	Prompt   string `db:"prompt"`

	Options []Option `db:"-"`
}

// Option returns the option with id, or nil.
func (q Question) Option(id int64) *Option {
	for i := range q.Options {
		if q.Options[i].ID == id {
			return &q.Options[i]
		}
	}
	return nil
}

type Option struct {
	ID         int64  `db:"id"`
	QuestionID int64  `db:"question_id"`
	Position   int    `db:"position"`
	Label      string `db:"label"`
	IsCorrect  bool   `db:"is_correct"`
}
