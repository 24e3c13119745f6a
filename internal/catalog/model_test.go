package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExerciseDefinition(t *testing.T) {
	tests := []struct {
		name         string
		level        int
		wantBlock    int
		wantElevated bool
		wantErr      bool
	}{
		{name: "level 1", level: 1, wantBlock: 1},
		{name: "level 3", level: 3, wantBlock: 1},
		{name: "level 4", level: 4, wantBlock: 2, wantElevated: true},
		{name: "level 6", level: 6, wantBlock: 2, wantElevated: true},
		{name: "level 7", level: 7, wantBlock: 3, wantElevated: true},
		{name: "level 9", level: 9, wantBlock: 3, wantElevated: true},
		{name: "level 0", level: 0, wantErr: true},
		{name: "level 10", level: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewExerciseDefinition(ExerciseCode("EL1", tt.level), "EL", "Digits", tt.level, 1)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBlock, got.Block)
			assert.Equal(t, tt.wantElevated, got.RequiresElevatedTier)
			assert.True(t, got.Active)
		})
	}
}

func TestExerciseDefinition_NormalizeOverridesInput(t *testing.T) {
	e := ExerciseDefinition{Code: "EL1_N5", Level: 5, Block: 1, RequiresElevatedTier: false}
	require.NoError(t, e.normalize())
	assert.Equal(t, 2, e.Block)
	assert.True(t, e.RequiresElevatedTier)
}

func TestExerciseCode(t *testing.T) {
	assert.Equal(t, "EL1_N4", ExerciseCode("EL1", 4))
	assert.Equal(t, "EPM3_N9", ExerciseCode("EPM3", 9))
}

func TestTestDefinition_MatchesAccessCode(t *testing.T) {
	code := "secret"
	wrong := "nope"

	open := TestDefinition{Name: "initial"}
	assert.True(t, open.MatchesAccessCode(nil))

	locked := TestDefinition{Name: "test_1", RequiresAccessCode: true, AccessCode: "secret"}
	assert.False(t, locked.MatchesAccessCode(nil))
	assert.False(t, locked.MatchesAccessCode(&wrong))
	assert.True(t, locked.MatchesAccessCode(&code))
}

func TestTestDefinition_Normalize(t *testing.T) {
	derived := TestDefinition{Text: "  uno dos\ttres\n cuatro  "}
	derived.normalize()
	assert.Equal(t, 4, derived.WordCount)

	explicit := TestDefinition{Text: "uno dos", WordCount: 800}
	explicit.normalize()
	assert.Equal(t, 800, explicit.WordCount)
}

func TestTestDefinition_QuestionAndOption(t *testing.T) {
	def := TestDefinition{Questions: []Question{
		{ID: 10, Options: []Option{{ID: 100}, {ID: 101, IsCorrect: true}}},
	}}

	q := def.Question(10)
	require.NotNil(t, q)
	assert.Nil(t, def.Question(11))

	o := q.Option(101)
	require.NotNil(t, o)
	assert.True(t, o.IsCorrect)
	assert.Nil(t, q.Option(102))
}
