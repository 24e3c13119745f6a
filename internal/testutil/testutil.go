// Package testutil provides shared test helpers for creating config files, databases and catalog fixtures.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/speedreading/trainer/internal/config"
	"github.com/speedreading/trainer/internal/database"
	"github.com/speedreading/trainer/schemas"
)

// SetupTestConfig creates a config file backed by a SQLite database in tmpDir
// and an empty tests directory. Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	testsDir := filepath.Join(tmpDir, "tests")
	require.NoError(t, os.MkdirAll(testsDir, 0755))

	configContent := fmt.Sprintf(`database:
  driver: sqlite
  sqlite_path: %s
seed:
  tests_directory: %s
`,
		filepath.Join(tmpDir, "trainer.db"),
		testsDir,
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// NewTestDB opens a migrated in-memory SQLite database that is closed when the test ends.
func NewTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := database.Open(config.DatabaseConfig{Driver: database.DriverSQLite, SQLitePath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})

	_, err = database.Migrate(context.Background(), db, schemas.Migrations)
	require.NoError(t, err)
	return db
}

// CreateUser inserts a user and returns its ID.
func CreateUser(t *testing.T, db *sqlx.DB, email, role, tier string) int64 {
	t.Helper()

	result, err := db.Exec(
		"INSERT INTO users (email, name, role, tier, registered_at) VALUES (?, ?, ?, ?, ?)",
		email, strings.Split(email, "@")[0], role, tier, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	id, err := result.LastInsertId()
	require.NoError(t, err)
	return id
}

// ExerciseOption configures optional fields when creating an exercise fixture.
type ExerciseOption func(*exerciseConfig)

type exerciseConfig struct {
	active bool
}

// WithInactiveExercise creates the exercise deactivated.
func WithInactiveExercise() ExerciseOption {
	return func(cfg *exerciseConfig) {
		cfg.active = false
	}
}

// CreateExercise inserts an exercise at level, creating its category on first use.
func CreateExercise(t *testing.T, db *sqlx.DB, code, category string, level int, opts ...ExerciseOption) {
	t.Helper()

	cfg := exerciseConfig{active: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	_, err := db.Exec(
		"INSERT OR IGNORE INTO exercise_categories (code, name, description, sort_order, active) VALUES (?, ?, '', 0, 1)",
		category, category,
	)
	require.NoError(t, err)

	block := (level + 2) / 3
	_, err = db.Exec(
		"INSERT INTO exercises (code, category_code, name, level, block, requires_elevated_tier, order_in_block, active) VALUES (?, ?, ?, ?, ?, ?, 0, ?)",
		code, category, code, level, block, level > 3, cfg.active,
	)
	require.NoError(t, err)
}

// TestOption configures optional fields when creating a reading test fixture.
type TestOption func(*testConfig)

type testConfig struct {
	words      int
	questions  int
	elevated   bool
	accessCode string
	active     bool
}

// WithWords sets the length of the test text.
func WithWords(n int) TestOption {
	return func(cfg *testConfig) {
		cfg.words = n
	}
}

// WithQuestions sets the number of questions. Option 1 of every question is the correct one.
func WithQuestions(n int) TestOption {
	return func(cfg *testConfig) {
		cfg.questions = n
	}
}

func WithElevatedTier() TestOption {
	return func(cfg *testConfig) {
		cfg.elevated = true
	}
}

func WithAccessCode(code string) TestOption {
	return func(cfg *testConfig) {
		cfg.accessCode = code
	}
}

func WithInactiveTest() TestOption {
	return func(cfg *testConfig) {
		cfg.active = false
	}
}

// CreateTest inserts a reading test with a generated text and questions.
// By default the text has 800 words and there are 20 questions of 3 options.
func CreateTest(t *testing.T, db *sqlx.DB, name string, opts ...TestOption) {
	t.Helper()

	cfg := testConfig{words: 800, questions: 20, active: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	text := strings.TrimSpace(strings.Repeat("word ", cfg.words))
	_, err := db.Exec(
		"INSERT INTO tests (name, title, ordinal, requires_elevated_tier, requires_access_code, access_code, active, body, word_count) VALUES (?, ?, 0, ?, ?, ?, ?, ?, ?)",
		name, name, cfg.elevated, cfg.accessCode != "", cfg.accessCode, cfg.active, text, cfg.words,
	)
	require.NoError(t, err)

	for q := 1; q <= cfg.questions; q++ {
		result, err := db.Exec(
			"INSERT INTO test_questions (test_name, position, prompt) VALUES (?, ?, ?)",
			name, q, fmt.Sprintf("Question %d", q),
		)
		require.NoError(t, err)
		questionID, err := result.LastInsertId()
		require.NoError(t, err)
		for o := 1; o <= 3; o++ {
			_, err := db.Exec(
				"INSERT INTO test_options (question_id, position, label, is_correct) VALUES (?, ?, ?, ?)",
				questionID, o, fmt.Sprintf("Option %d", o), o == 1,
			)
			require.NoError(t, err)
		}
	}
}

// CreateTestFile writes a minimal YAML reading test into dir and returns its path.
func CreateTestFile(t *testing.T, dir, name string) string {
	t.Helper()

	content := fmt.Sprintf(`name: %s
title: %s
text: one two three four five six seven eight nine ten
questions:
  - prompt: How many words?
    options:
      - label: ten
        correct: true
      - label: five
`, name, name)

	path := filepath.Join(dir, name+".yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
