package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yml
var defaultCatalog []byte

// CatalogFile is the YAML layout of categories and their base exercises.
// Every base exercise is expanded over its levels into one definition per level.
type CatalogFile struct {
	Categories []CategorySeed `yaml:"categories" validate:"required,min=1,dive"`
}

type CategorySeed struct {
	Code        string         `yaml:"code" validate:"required"`
	Name        string         `yaml:"name" validate:"required"`
	Description string         `yaml:"description"`
	Order       int            `yaml:"order"`
	Inactive    bool           `yaml:"inactive"`
	Exercises   []ExerciseSeed `yaml:"exercises" validate:"dive"`
}

type ExerciseSeed struct {
	Base string `yaml:"base" validate:"required"`
	Name string `yaml:"name" validate:"required"`
	// Levels defaults to 1 through 9.
	Levels   []int `yaml:"levels" validate:"dive,gte=1,lte=9"`
	Inactive bool  `yaml:"inactive"`
}

// TestFile is the YAML layout of one reading test.
type TestFile struct {
	Name                 string         `yaml:"name" validate:"required"`
	Title                string         `yaml:"title" validate:"required"`
	Ordinal              int            `yaml:"ordinal"`
	RequiresElevatedTier bool           `yaml:"requires_elevated_tier"`
	RequiresAccessCode   bool           `yaml:"requires_access_code"`
	AccessCode           string         `yaml:"access_code,omitempty" validate:"required_if=RequiresAccessCode true"`
	Inactive             bool           `yaml:"inactive,omitempty"`
	WordCount            int            `yaml:"word_count" validate:"gte=0"`
	Text                 string         `yaml:"text"`
	Questions            []QuestionSeed `yaml:"questions" validate:"dive"`
}

type QuestionSeed struct {
	Prompt  string       `yaml:"prompt" validate:"required"`
	Options []OptionSeed `yaml:"options" validate:"min=2,dive"`
}

type OptionSeed struct {
	Label   string `yaml:"label" validate:"required"`
	Correct bool   `yaml:"correct,omitempty"`
}

// Seed is a fully expanded set of definitions ready to be imported.
type Seed struct {
	Categories []Category
	Exercises  []ExerciseDefinition
	Tests      []TestDefinition
}

var seedValidator = validator.New()

// DefaultCatalog returns the embedded categories and exercises.
func DefaultCatalog() (*Seed, error) {
	return ParseCatalog(strings.NewReader(string(defaultCatalog)))
}

// ParseCatalog reads a CatalogFile and expands its exercises.
func ParseCatalog(r io.Reader) (*Seed, error) {
	var file CatalogFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("yaml.Decode() > %w", err)
	}
	if err := seedValidator.Struct(file); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	seed := &Seed{}
	codes := make(map[string]bool)
	for _, c := range file.Categories {
		seed.Categories = append(seed.Categories, Category{
			Code:        c.Code,
			Name:        c.Name,
			Description: c.Description,
			Order:       c.Order,
			Active:      !c.Inactive,
		})

		// order within a block counts the category's exercises in that block
		orderInBlock := make(map[int]int)
		for _, ex := range c.Exercises {
			levels := ex.Levels
			if len(levels) == 0 {
				for level := MinLevel; level <= MaxLevel; level++ {
					levels = append(levels, level)
				}
			}
			for _, level := range levels {
				code := ExerciseCode(ex.Base, level)
				if codes[code] {
					return nil, fmt.Errorf("invalid catalog: duplicate exercise %s", code)
				}
				codes[code] = true

				block := BlockForLevel(level)
				orderInBlock[block]++
				def, err := NewExerciseDefinition(code, c.Code, ex.Name, level, orderInBlock[block])
				if err != nil {
					return nil, fmt.Errorf("invalid catalog: %w", err)
				}
				def.Active = !ex.Inactive && !c.Inactive
				seed.Exercises = append(seed.Exercises, def)
			}
		}
	}
	return seed, nil
}

// ParseTest reads one TestFile.
func ParseTest(r io.Reader) (*TestDefinition, error) {
	var file TestFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("yaml.Decode() > %w", err)
	}
	if err := seedValidator.Struct(file); err != nil {
		return nil, fmt.Errorf("invalid test %q: %w", file.Name, err)
	}

	t := TestDefinition{
		Name:                 file.Name,
		Title:                file.Title,
		Ordinal:              file.Ordinal,
		RequiresElevatedTier: file.RequiresElevatedTier,
		RequiresAccessCode:   file.RequiresAccessCode,
		AccessCode:           file.AccessCode,
		Active:               !file.Inactive,
		Text:                 file.Text,
		WordCount:            file.WordCount,
	}
	for i, q := range file.Questions {
		question := Question{TestName: file.Name, Position: i + 1, Prompt: q.Prompt}
		correct := 0
		for j, o := range q.Options {
			if o.Correct {
				correct++
			}
			question.Options = append(question.Options, Option{Position: j + 1, Label: o.Label, IsCorrect: o.Correct})
		}
		if correct != 1 {
			return nil, fmt.Errorf("invalid test %q: question %d has %d correct options, want 1", file.Name, i+1, correct)
		}
		t.Questions = append(t.Questions, question)
	}
	t.normalize()
	return &t, nil
}

// NewTestFile converts t back to its YAML layout.
func NewTestFile(t TestDefinition) TestFile {
	file := TestFile{
		Name:                 t.Name,
		Title:                t.Title,
		Ordinal:              t.Ordinal,
		RequiresElevatedTier: t.RequiresElevatedTier,
		RequiresAccessCode:   t.RequiresAccessCode,
		AccessCode:           t.AccessCode,
		Inactive:             !t.Active,
		WordCount:            t.WordCount,
		Text:                 t.Text,
	}
	for _, q := range t.Questions {
		question := QuestionSeed{Prompt: q.Prompt}
		for _, o := range q.Options {
			question.Options = append(question.Options, OptionSeed{Label: o.Label, Correct: o.IsCorrect})
		}
		file.Questions = append(file.Questions, question)
	}
	return file
}

// LoadTestsDirectory parses every .yml and .yaml file in dir, sorted by file name.
func LoadTestsDirectory(dir string) ([]TestDefinition, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("os.ReadDir(%s) > %w", dir, err)
	}
	var names []string
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yml" && ext != ".yaml") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var tests []TestDefinition
	for _, name := range names {
		t, err := parseTestFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		tests = append(tests, *t)
	}
	return tests, nil
}

func parseTestFile(path string) (*TestDefinition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s) > %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	t, err := ParseTest(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ValidateTestSet checks that names are unique and that entryTest is present exactly once.
func ValidateTestSet(tests []TestDefinition, entryTest string) error {
	var errs []error
	seen := make(map[string]int, len(tests))
	for _, t := range tests {
		seen[t.Name]++
		if seen[t.Name] == 2 {
			errs = append(errs, fmt.Errorf("test %q is defined more than once", t.Name))
		}
	}
	if seen[entryTest] == 0 {
		errs = append(errs, fmt.Errorf("entry test %q is missing", entryTest))
	}
	return errors.Join(errs...)
}
