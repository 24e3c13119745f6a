// Package datasync provides import/export orchestration between YAML seed files and the database.
package datasync

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/speedreading/trainer/internal/catalog"
)

// ImportResult tracks counts for each import operation.
type ImportResult struct {
	CategoriesNew     int
	CategoriesSkipped int
	CategoriesUpdated int
	ExercisesNew      int
	ExercisesSkipped  int
	ExercisesUpdated  int
	TestsNew          int
	TestsSkipped      int
	TestsUpdated      int
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun bool

	// UpdateExisting rewrites known definitions from the seed, except for
	// their active flag, which is toggled at runtime.
	UpdateExisting bool
}

// Importer writes seed definitions to the catalog.
type Importer struct {
	repo   catalog.Repository
	writer io.Writer
}

func NewImporter(repo catalog.Repository, writer io.Writer) *Importer {
	return &Importer{repo: repo, writer: writer}
}

// Import imports categories before exercises so that exercises always find their category.
func (imp *Importer) Import(ctx context.Context, seed *catalog.Seed, opts ImportOptions) (*ImportResult, error) {
	var result ImportResult
	if err := imp.importCategories(ctx, seed.Categories, opts, &result); err != nil {
		return nil, fmt.Errorf("importCategories() > %w", err)
	}
	if err := imp.importExercises(ctx, seed.Exercises, opts, &result); err != nil {
		return nil, fmt.Errorf("importExercises() > %w", err)
	}
	if err := imp.importTests(ctx, seed.Tests, opts, &result); err != nil {
		return nil, fmt.Errorf("importTests() > %w", err)
	}
	return &result, nil
}

func (imp *Importer) importCategories(ctx context.Context, categories []catalog.Category, opts ImportOptions, result *ImportResult) error {
	existing, err := imp.repo.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("ListCategories() > %w", err)
	}
	// updates keep the stored active flag; only new definitions take the seed's
	active := make(map[string]bool, len(existing))
	for _, c := range existing {
		active[c.Code] = c.Active
	}

	for _, c := range categories {
		stored, known := active[c.Code]
		if known && !opts.UpdateExisting {
			fmt.Fprintf(imp.writer, "  [SKIP]  category %s\n", c.Code)
			result.CategoriesSkipped++
			continue
		}
		if known {
			c.Active = stored
		}
		if !opts.DryRun {
			if err := imp.repo.SaveCategory(ctx, c); err != nil {
				return fmt.Errorf("SaveCategory(%s) > %w", c.Code, err)
			}
		}
		if known {
			fmt.Fprintf(imp.writer, "  [UPDATE]  category %s\n", c.Code)
			result.CategoriesUpdated++
		} else {
			fmt.Fprintf(imp.writer, "  [NEW]  category %s\n", c.Code)
			result.CategoriesNew++
		}
	}
	return nil
}

func (imp *Importer) importExercises(ctx context.Context, exercises []catalog.ExerciseDefinition, opts ImportOptions, result *ImportResult) error {
	existing, err := imp.repo.ListExercises(ctx)
	if err != nil {
		return fmt.Errorf("ListExercises() > %w", err)
	}
	active := make(map[string]bool, len(existing))
	for _, e := range existing {
		active[e.Code] = e.Active
	}

	for _, e := range exercises {
		stored, known := active[e.Code]
		if known && !opts.UpdateExisting {
			result.ExercisesSkipped++
			continue
		}
		if known {
			e.Active = stored
		}
		if !opts.DryRun {
			if err := imp.repo.SaveExercise(ctx, e); err != nil {
				return fmt.Errorf("SaveExercise(%s) > %w", e.Code, err)
			}
		}
		if known {
			result.ExercisesUpdated++
		} else {
			fmt.Fprintf(imp.writer, "  [NEW]  exercise %s (level %d, block %d)\n", e.Code, e.Level, e.Block)
			result.ExercisesNew++
		}
	}
	return nil
}

func (imp *Importer) importTests(ctx context.Context, tests []catalog.TestDefinition, opts ImportOptions, result *ImportResult) error {
	existing, err := imp.repo.ListTests(ctx)
	if err != nil {
		return fmt.Errorf("ListTests() > %w", err)
	}
	active := make(map[string]bool, len(existing))
	for _, t := range existing {
		active[t.Name] = t.Active
	}

	for _, t := range tests {
		stored, known := active[t.Name]
		if known && !opts.UpdateExisting {
			fmt.Fprintf(imp.writer, "  [SKIP]  test %q\n", t.Name)
			result.TestsSkipped++
			continue
		}
		if known {
			t.Active = stored
		}
		if !opts.DryRun {
			if err := imp.repo.SaveTest(ctx, t); err != nil {
				return fmt.Errorf("SaveTest(%s) > %w", t.Name, err)
			}
		}
		if known {
			fmt.Fprintf(imp.writer, "  [UPDATE]  test %q (%d questions)\n", t.Name, len(t.Questions))
			result.TestsUpdated++
		} else {
			fmt.Fprintf(imp.writer, "  [NEW]  test %q (%d questions)\n", t.Name, len(t.Questions))
			result.TestsNew++
		}
	}
	return nil
}

// ExportData holds all exported definitions from the database.
type ExportData struct {
	Categories []catalog.Category
	Exercises  []catalog.ExerciseDefinition
	Tests      []catalog.TestDefinition
}

// Exporter reads the catalog and returns domain structs.
type Exporter struct {
	repo catalog.Repository
}

func NewExporter(repo catalog.Repository) *Exporter {
	return &Exporter{repo: repo}
}

// Export reads every definition, including the questions of each test.
func (e *Exporter) Export(ctx context.Context) (*ExportData, error) {
	categories, err := e.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.ListCategories() > %w", err)
	}
	exercises, err := e.repo.ListExercises(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.ListExercises() > %w", err)
	}
	summaries, err := e.repo.ListTests(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.ListTests() > %w", err)
	}

	tests := make([]catalog.TestDefinition, 0, len(summaries))
	for _, s := range summaries {
		t, err := e.repo.FindTest(ctx, s.Name)
		if err != nil {
			return nil, fmt.Errorf("repo.FindTest(%s) > %w", s.Name, err)
		}
		if t == nil {
			continue
		}
		tests = append(tests, *t)
	}

	return &ExportData{
		Categories: categories,
		Exercises:  exercises,
		Tests:      tests,
	}, nil
}

// WriteTestFiles writes one YAML file per test into dir, in the layout
// catalog.LoadTestsDirectory reads back.
func WriteTestFiles(dir string, tests []catalog.TestDefinition) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
	}

	paths := make([]string, 0, len(tests))
	for _, t := range tests {
		path := filepath.Join(dir, t.Name+".yml")
		content, err := yaml.Marshal(catalog.NewTestFile(t))
		if err != nil {
			return nil, fmt.Errorf("yaml.Marshal(%s) > %w", t.Name, err)
		}
		if err := os.WriteFile(path, content, 0644); err != nil {
			return nil, fmt.Errorf("os.WriteFile(%s) > %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
