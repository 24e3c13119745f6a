package catalog

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speedreading/trainer/internal/testutil"
)

func TestDBRepository_SaveExercise(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	repo := NewDBRepository(db)

	require.NoError(t, repo.SaveCategory(ctx, Category{Code: "EL", Name: "Reading", Order: 1, Active: true}))

	// block and tier flag from the input are ignored
	require.NoError(t, repo.SaveExercise(ctx, ExerciseDefinition{
		Code: "EL1_N5", CategoryCode: "EL", Name: "Digits", Level: 5, Block: 1, OrderInBlock: 2, Active: true,
	}))
	got, err := repo.FindExercise(ctx, "EL1_N5")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2, got.Block)
	assert.True(t, got.RequiresElevatedTier)

	// updating moves the exercise and re-derives its block
	require.NoError(t, repo.SaveExercise(ctx, ExerciseDefinition{
		Code: "EL1_N5", CategoryCode: "EL", Name: "Digits", Level: 2, OrderInBlock: 2, Active: true,
	}))
	got, err = repo.FindExercise(ctx, "EL1_N5")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Block)
	assert.False(t, got.RequiresElevatedTier)

	err = repo.SaveExercise(ctx, ExerciseDefinition{Code: "EL1_N10", CategoryCode: "EL", Level: 10})
	assert.Error(t, err)

	missing, err := repo.FindExercise(ctx, "EL9_N1")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDBRepository_ActiveExerciseCodes(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	testutil.CreateExercise(t, db, "EL1_N1", "EL", 1)
	testutil.CreateExercise(t, db, "EO1_N2", "EO", 2)
	testutil.CreateExercise(t, db, "EL2_N3", "EL", 3, testutil.WithInactiveExercise())
	testutil.CreateExercise(t, db, "EL1_N4", "EL", 4)
	repo := NewDBRepository(db)

	tests := []struct {
		name  string
		block int
		want  []string
	}{
		{name: "block 1 skips inactive", block: 1, want: []string{"EL1_N1", "EO1_N2"}},
		{name: "block 2", block: 2, want: []string{"EL1_N4"}},
		{name: "empty block", block: 3, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.ActiveExerciseCodes(ctx, tt.block)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDBRepository_SaveTestUpdatesQuestionsInPlace(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	repo := NewDBRepository(db)

	def := TestDefinition{
		Name:   "initial",
		Title:  "Initial Test",
		Active: true,
		Text:   "one two three",
		Questions: []Question{
			{Prompt: "first", Options: []Option{{Label: "a", IsCorrect: true}, {Label: "b"}}},
			{Prompt: "second", Options: []Option{{Label: "c"}, {Label: "d", IsCorrect: true}}},
		},
	}
	require.NoError(t, repo.SaveTest(ctx, def))

	saved, err := repo.FindTest(ctx, "initial")
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, 3, saved.WordCount)
	require.Len(t, saved.Questions, 2)
	assert.Equal(t, 1, saved.Questions[0].Position)
	require.Len(t, saved.Questions[1].Options, 2)
	assert.Equal(t, "d", saved.Questions[1].Options[1].Label)
	assert.True(t, saved.Questions[1].Options[1].IsCorrect)

	// saving the stored definition again keeps every ID
	require.NoError(t, repo.SaveTest(ctx, *saved))
	again, err := repo.FindTest(ctx, "initial")
	require.NoError(t, err)
	assert.Equal(t, saved.Questions, again.Questions)

	def.Title = "Entry Test"
	def.Questions = []Question{
		{Prompt: "first, reworded", Options: []Option{{Label: "a"}, {Label: "b", IsCorrect: true}, {Label: "e"}}},
	}
	require.NoError(t, repo.SaveTest(ctx, def))

	got, err := repo.FindTest(ctx, "initial")
	require.NoError(t, err)
	assert.Equal(t, "Entry Test", got.Title)
	require.Len(t, got.Questions, 1)
	assert.Equal(t, saved.Questions[0].ID, got.Questions[0].ID)
	assert.Equal(t, "first, reworded", got.Questions[0].Prompt)
	require.Len(t, got.Questions[0].Options, 3)
	assert.Equal(t, saved.Questions[0].Options[0].ID, got.Questions[0].Options[0].ID)
	assert.Equal(t, saved.Questions[0].Options[1].ID, got.Questions[0].Options[1].ID)
	assert.True(t, got.Questions[0].Options[1].IsCorrect)
	assert.False(t, got.Questions[0].Options[0].IsCorrect)

	var options int
	require.NoError(t, db.Get(&options, "SELECT COUNT(*) FROM test_options"))
	assert.Equal(t, 3, options)

	tests, err := repo.ListTests(ctx)
	require.NoError(t, err)
	require.Len(t, tests, 1)
	assert.Empty(t, tests[0].Questions)
}

func TestDBRepository_SetActive(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	testutil.CreateExercise(t, db, "EL1_N1", "EL", 1)
	testutil.CreateTest(t, db, "initial", testutil.WithQuestions(1))
	repo := NewDBRepository(db)

	require.NoError(t, repo.SetExerciseActive(ctx, "EL1_N1", false))
	e, err := repo.FindExercise(ctx, "EL1_N1")
	require.NoError(t, err)
	assert.False(t, e.Active)

	// unchanged value still succeeds
	require.NoError(t, repo.SetExerciseActive(ctx, "EL1_N1", false))

	require.NoError(t, repo.SetTestActive(ctx, "initial", false))
	tst, err := repo.FindTest(ctx, "initial")
	require.NoError(t, err)
	assert.False(t, tst.Active)

	err = repo.SetExerciseActive(ctx, "EL9_N9", true)
	assert.True(t, errors.Is(err, ErrExerciseNotFound))
	err = repo.SetTestActive(ctx, "test_9", true)
	assert.True(t, errors.Is(err, ErrTestNotFound))
}

func TestDBRepository_ListCategories(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = mockDB.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT code, name, description, sort_order, active FROM exercise_categories ORDER BY sort_order, code")).
		WillReturnRows(sqlmock.NewRows([]string{"code", "name", "description", "sort_order", "active"}).
			AddRow("EL", "Reading", "", 1, true).
			AddRow("EO", "Eye", "", 2, false))

	repo := NewDBRepository(sqlx.NewDb(mockDB, "mysql"))
	got, err := repo.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Category{
		{Code: "EL", Name: "Reading", Order: 1, Active: true},
		{Code: "EO", Name: "Eye", Order: 2, Active: false},
	}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBRepository_FindTestError(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = mockDB.Close() }()

	mock.ExpectQuery("SELECT name, title").WithArgs("initial").WillReturnError(errors.New("connection refused"))

	repo := NewDBRepository(sqlx.NewDb(mockDB, "mysql"))
	_, err = repo.FindTest(context.Background(), "initial")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
