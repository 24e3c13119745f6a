package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/speedreading/trainer/internal/database"
)

var (
	ErrExerciseNotFound = errors.New("catalog: exercise not found")
	ErrTestNotFound     = errors.New("catalog: test not found")
)

//go:generate mockgen -source=repository.go -destination=../mocks/catalog/mock_repository.go -package=mock_catalog

// Repository reads and writes definitions. Find methods return nil without
// an error when nothing matches.
type Repository interface {
	FindExercise(ctx context.Context, code string) (*ExerciseDefinition, error)
	FindTest(ctx context.Context, name string) (*TestDefinition, error)
	ActiveExerciseCodes(ctx context.Context, block int) ([]string, error)
	ListCategories(ctx context.Context) ([]Category, error)
	ListExercises(ctx context.Context) ([]ExerciseDefinition, error)
	ListTests(ctx context.Context) ([]TestDefinition, error)
	SaveCategory(ctx context.Context, category Category) error
	SaveExercise(ctx context.Context, exercise ExerciseDefinition) error
	SaveTest(ctx context.Context, test TestDefinition) error
	SetExerciseActive(ctx context.Context, code string, active bool) error
	SetTestActive(ctx context.Context, name string, active bool) error
}

// DBRepository implements Repository using sqlx.
type DBRepository struct {
	db *sqlx.DB
}

func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

const (
	exerciseColumns = "code, category_code, name, level, block, requires_elevated_tier, order_in_block, active"
	testColumns     = "name, title, ordinal, requires_elevated_tier, requires_access_code, access_code, active, body, word_count"
)

func (r *DBRepository) FindExercise(ctx context.Context, code string) (*ExerciseDefinition, error) {
	var e ExerciseDefinition
	err := r.db.GetContext(ctx, &e, "SELECT "+exerciseColumns+" FROM exercises WHERE code = ?", code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(exercises) > %w", err)
	}
	return &e, nil
}

// FindTest returns the test with its questions and options in position order.
func (r *DBRepository) FindTest(ctx context.Context, name string) (*TestDefinition, error) {
	var t TestDefinition
	err := r.db.GetContext(ctx, &t, "SELECT "+testColumns+" FROM tests WHERE name = ?", name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(tests) > %w", err)
	}

	var questions []Question
	if err := r.db.SelectContext(ctx, &questions,
		"SELECT id, test_name, position, prompt FROM test_questions WHERE test_name = ? ORDER BY position",
		name,
	); err != nil {
		return nil, fmt.Errorf("db.SelectContext(test_questions) > %w", err)
	}
	var options []Option
	if err := r.db.SelectContext(ctx, &options,
		`SELECT o.id, o.question_id, o.position, o.label, o.is_correct
FROM test_options o JOIN test_questions q ON q.id = o.question_id
WHERE q.test_name = ? ORDER BY o.question_id, o.position`,
		name,
	); err != nil {
		return nil, fmt.Errorf("db.SelectContext(test_options) > %w", err)
	}

	byQuestion := make(map[int64][]Option, len(questions))
	for _, o := range options {
		byQuestion[o.QuestionID] = append(byQuestion[o.QuestionID], o)
	}
	for i := range questions {
		questions[i].Options = byQuestion[questions[i].ID]
	}
	t.Questions = questions
	return &t, nil
}

// ActiveExerciseCodes returns the codes of the active exercises in block.
func (r *DBRepository) ActiveExerciseCodes(ctx context.Context, block int) ([]string, error) {
	var codes []string
	if err := r.db.SelectContext(ctx, &codes,
		"SELECT code FROM exercises WHERE block = ? AND active = ? ORDER BY code",
		block, true,
	); err != nil {
		return nil, fmt.Errorf("db.SelectContext(exercises) > %w", err)
	}
	return codes, nil
}

func (r *DBRepository) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := r.db.SelectContext(ctx, &categories,
		"SELECT code, name, description, sort_order, active FROM exercise_categories ORDER BY sort_order, code",
	); err != nil {
		return nil, fmt.Errorf("db.SelectContext(exercise_categories) > %w", err)
	}
	return categories, nil
}

func (r *DBRepository) ListExercises(ctx context.Context) ([]ExerciseDefinition, error) {
	var exercises []ExerciseDefinition
	if err := r.db.SelectContext(ctx, &exercises,
		"SELECT "+exerciseColumns+" FROM exercises ORDER BY block, category_code, order_in_block, code",
	); err != nil {
		return nil, fmt.Errorf("db.SelectContext(exercises) > %w", err)
	}
	return exercises, nil
}

// ListTests returns the tests without their questions.
func (r *DBRepository) ListTests(ctx context.Context) ([]TestDefinition, error) {
	var tests []TestDefinition
	if err := r.db.SelectContext(ctx, &tests, "SELECT "+testColumns+" FROM tests ORDER BY ordinal, name"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(tests) > %w", err)
	}
	return tests, nil
}

func (r *DBRepository) SaveCategory(ctx context.Context, c Category) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO exercise_categories (code, name, description, sort_order, active) VALUES (?, ?, ?, ?, ?)",
		c.Code, c.Name, c.Description, c.Order, c.Active,
	)
	if database.IsDuplicateKeyError(err) {
		_, err = r.db.ExecContext(ctx,
			"UPDATE exercise_categories SET name = ?, description = ?, sort_order = ?, active = ? WHERE code = ?",
			c.Name, c.Description, c.Order, c.Active, c.Code,
		)
	}
	if err != nil {
		return fmt.Errorf("db.ExecContext(save exercise_categories) > %w", err)
	}
	return nil
}

// SaveExercise inserts or updates e. Block and the elevated tier flag are
// re-derived from the level on every write.
func (r *DBRepository) SaveExercise(ctx context.Context, e ExerciseDefinition) error {
	if err := e.normalize(); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO exercises ("+exerciseColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		e.Code, e.CategoryCode, e.Name, e.Level, e.Block, e.RequiresElevatedTier, e.OrderInBlock, e.Active,
	)
	if database.IsDuplicateKeyError(err) {
		_, err = r.db.ExecContext(ctx,
			"UPDATE exercises SET category_code = ?, name = ?, level = ?, block = ?, requires_elevated_tier = ?, order_in_block = ?, active = ? WHERE code = ?",
			e.CategoryCode, e.Name, e.Level, e.Block, e.RequiresElevatedTier, e.OrderInBlock, e.Active, e.Code,
		)
	}
	if err != nil {
		return fmt.Errorf("db.ExecContext(save exercises) > %w", err)
	}
	return nil
}

// SaveTest inserts or updates t and its questions in one transaction.
// Questions and options keep their IDs across updates: they are matched by
// position, and positions beyond the new lists are removed.
func (r *DBRepository) SaveTest(ctx context.Context, t TestDefinition) error {
	t.normalize()
	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO tests ("+testColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
			t.Name, t.Title, t.Ordinal, t.RequiresElevatedTier, t.RequiresAccessCode, t.AccessCode, t.Active, t.Text, t.WordCount,
		)
		if database.IsDuplicateKeyError(err) {
			_, err = tx.ExecContext(ctx,
				"UPDATE tests SET title = ?, ordinal = ?, requires_elevated_tier = ?, requires_access_code = ?, access_code = ?, active = ?, body = ?, word_count = ? WHERE name = ?",
				t.Title, t.Ordinal, t.RequiresElevatedTier, t.RequiresAccessCode, t.AccessCode, t.Active, t.Text, t.WordCount, t.Name,
			)
		}
		if err != nil {
			return fmt.Errorf("tx.ExecContext(save tests) > %w", err)
		}

		for i, q := range t.Questions {
			questionID, err := saveQuestion(ctx, tx, t.Name, i+1, q.Prompt)
			if err != nil {
				return err
			}
			for j, o := range q.Options {
				if err := saveOption(ctx, tx, questionID, j+1, o); err != nil {
					return err
				}
			}
			if _, err := tx.ExecContext(ctx,
				"DELETE FROM test_options WHERE question_id = ? AND position > ?", questionID, len(q.Options),
			); err != nil {
				return fmt.Errorf("tx.ExecContext(delete test_options) > %w", err)
			}
		}

		if _, err := tx.ExecContext(ctx,
			"DELETE FROM test_options WHERE question_id IN (SELECT id FROM test_questions WHERE test_name = ? AND position > ?)",
			t.Name, len(t.Questions),
		); err != nil {
			return fmt.Errorf("tx.ExecContext(delete test_options) > %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM test_questions WHERE test_name = ? AND position > ?", t.Name, len(t.Questions),
		); err != nil {
			return fmt.Errorf("tx.ExecContext(delete test_questions) > %w", err)
		}
		return nil
	})
}

// saveQuestion updates the question at position or inserts it, and returns its ID.
func saveQuestion(ctx context.Context, tx *sqlx.Tx, testName string, position int, prompt string) (int64, error) {
	var id int64
	err := tx.GetContext(ctx, &id, "SELECT id FROM test_questions WHERE test_name = ? AND position = ?", testName, position)
	if errors.Is(err, sql.ErrNoRows) {
		result, err := tx.ExecContext(ctx,
			"INSERT INTO test_questions (test_name, position, prompt) VALUES (?, ?, ?)",
			testName, position, prompt,
		)
		if err != nil {
			return 0, fmt.Errorf("tx.ExecContext(insert test_questions) > %w", err)
		}
		id, err = result.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("result.LastInsertId() > %w", err)
		}
		return id, nil
	}
	if err != nil {
		return 0, fmt.Errorf("tx.GetContext(test_questions) > %w", err)
	}
	if _, err := tx.ExecContext(ctx, "UPDATE test_questions SET prompt = ? WHERE id = ?", prompt, id); err != nil {
		return 0, fmt.Errorf("tx.ExecContext(update test_questions) > %w", err)
	}
	return id, nil
}

func saveOption(ctx context.Context, tx *sqlx.Tx, questionID int64, position int, o Option) error {
	var id int64
	err := tx.GetContext(ctx, &id, "SELECT id FROM test_options WHERE question_id = ? AND position = ?", questionID, position)
	if errors.Is(err, sql.ErrNoRows) {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO test_options (question_id, position, label, is_correct) VALUES (?, ?, ?, ?)",
			questionID, position, o.Label, o.IsCorrect,
		); err != nil {
			return fmt.Errorf("tx.ExecContext(insert test_options) > %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("tx.GetContext(test_options) > %w", err)
	}
	if _, err := tx.ExecContext(ctx, "UPDATE test_options SET label = ?, is_correct = ? WHERE id = ?", o.Label, o.IsCorrect, id); err != nil {
		return fmt.Errorf("tx.ExecContext(update test_options) > %w", err)
	}
	return nil
}

func (r *DBRepository) SetExerciseActive(ctx context.Context, code string, active bool) error {
	if _, err := r.db.ExecContext(ctx, "UPDATE exercises SET active = ? WHERE code = ?", active, code); err != nil {
		return fmt.Errorf("db.ExecContext(update exercises) > %w", err)
	}
	e, err := r.FindExercise(ctx, code)
	if err != nil {
		return err
	}
	if e == nil {
		return fmt.Errorf("%w: %s", ErrExerciseNotFound, code)
	}
	return nil
}

func (r *DBRepository) SetTestActive(ctx context.Context, name string, active bool) error {
	if _, err := r.db.ExecContext(ctx, "UPDATE tests SET active = ? WHERE name = ?", active, name); err != nil {
		return fmt.Errorf("db.ExecContext(update tests) > %w", err)
	}
	var found int
	err := r.db.GetContext(ctx, &found, "SELECT 1 FROM tests WHERE name = ?", name)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrTestNotFound, name)
	}
	if err != nil {
		return fmt.Errorf("db.GetContext(tests) > %w", err)
	}
	return nil
}
