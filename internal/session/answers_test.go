package session

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnswers(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []Answer
		wantErr error
		errText string
	}{
		{
			name: "two answers",
			input: `- question_id: 1
  option_id: 2
- question_id: 3
  option_id: 7
`,
			want: []Answer{{QuestionID: 1, OptionID: 2}, {QuestionID: 3, OptionID: 7}},
		},
		{
			name:    "empty file",
			input:   "",
			wantErr: ErrNoAnswers,
		},
		{
			name:    "missing option",
			input:   "- question_id: 1\n",
			errText: "invalid answer 1",
		},
		{
			name:    "not a list",
			input:   "question_id: 1\n",
			errText: "yaml.Decode()",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAnswers(strings.NewReader(tt.input))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			if tt.errText != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errText)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
