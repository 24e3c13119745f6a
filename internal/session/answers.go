package session

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var answerValidator = validator.New()

// ParseAnswers reads a YAML list of answers:
//
//	# one entry per question
//	- question_id: 12
//	  option_id: 37
func ParseAnswers(r io.Reader) ([]Answer, error) {
	var answers []Answer
	if err := yaml.NewDecoder(r).Decode(&answers); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoAnswers
		}
		return nil, fmt.Errorf("yaml.Decode() > %w", err)
	}
	for i, a := range answers {
		if err := answerValidator.Struct(a); err != nil {
			return nil, fmt.Errorf("invalid answer %d: %w", i+1, err)
		}
	}
	return answers, nil
}
