package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/speedreading/trainer/internal/access"
	"github.com/speedreading/trainer/internal/catalog"
	"github.com/speedreading/trainer/internal/config"
	"github.com/speedreading/trainer/internal/database"
	"github.com/speedreading/trainer/internal/datasync"
	"github.com/speedreading/trainer/schemas"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := openDB(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer func() {
				_ = db.Close()
			}()

			applied, err := database.Migrate(ctx, db, schemas.Migrations)
			if err != nil {
				return fmt.Errorf("database.Migrate() > %w", err)
			}
			out := cmd.OutOrStdout()
			if len(applied) == 0 {
				_, _ = fmt.Fprintln(out, "No pending migrations.")
				return nil
			}
			for _, name := range applied {
				_, _ = fmt.Fprintf(out, "  [APPLIED]  %s\n", name)
			}
			return nil
		},
	}
}

// loadSeed returns the embedded catalog plus the tests found in dir.
func loadSeed(cfg *config.Config, dir string) (*catalog.Seed, error) {
	seed, err := catalog.DefaultCatalog()
	if err != nil {
		return nil, fmt.Errorf("catalog.DefaultCatalog() > %w", err)
	}
	if dir == "" {
		dir = cfg.Seed.TestsDirectory
	}
	if dir == "" {
		return seed, nil
	}

	tests, err := catalog.LoadTestsDirectory(dir)
	if err != nil {
		return nil, fmt.Errorf("catalog.LoadTestsDirectory() > %w", err)
	}
	if err := catalog.ValidateTestSet(tests, cfg.Progression.EntryTest); err != nil {
		return nil, fmt.Errorf("invalid tests in %s: %w", dir, err)
	}
	seed.Tests = tests
	return seed, nil
}

func newSeedCommand() *cobra.Command {
	var dryRun bool
	var updateExisting bool
	var testsDirectory string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Import the exercise catalog and the reading tests into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return runWithApp(ctx, func(a *app) error {
				seed, err := loadSeed(a.cfg, testsDirectory)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				importer := datasync.NewImporter(a.catalog, out)
				opts := datasync.ImportOptions{
					DryRun:         dryRun,
					UpdateExisting: updateExisting,
				}
				result, err := importer.Import(ctx, seed, opts)
				if err != nil {
					return fmt.Errorf("importer.Import() > %w", err)
				}

				_, _ = fmt.Fprintln(out, "\nImport Summary:")
				if opts.DryRun {
					_, _ = fmt.Fprintln(out, "  (dry-run mode, no changes made)")
				}
				_, _ = fmt.Fprintf(out, "  Categories: %d new, %d skipped, %d updated\n", result.CategoriesNew, result.CategoriesSkipped, result.CategoriesUpdated)
				_, _ = fmt.Fprintf(out, "  Exercises:  %d new, %d skipped, %d updated\n", result.ExercisesNew, result.ExercisesSkipped, result.ExercisesUpdated)
				_, _ = fmt.Fprintf(out, "  Tests:      %d new, %d skipped, %d updated\n", result.TestsNew, result.TestsSkipped, result.TestsUpdated)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview changes without modifying the database")
	cmd.Flags().BoolVar(&updateExisting, "update-existing", false, "Update existing records with new data")
	cmd.Flags().StringVar(&testsDirectory, "tests-directory", "", "Directory of reading test files, defaults to seed.tests_directory")
	return cmd
}

func newValidateCommand() *cobra.Command {
	var testsDirectory string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the progression rules, the catalog and the reading test files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if _, err := access.RulesFromConfig(cfg.Progression); err != nil {
				return err
			}
			seed, err := loadSeed(cfg, testsDirectory)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Validation passed: %d categories, %d exercises, %d tests.\n",
				len(seed.Categories), len(seed.Exercises), len(seed.Tests))
			return nil
		},
	}
	cmd.Flags().StringVar(&testsDirectory, "tests-directory", "", "Directory of reading test files, defaults to seed.tests_directory")
	return cmd
}

func newExportCommand() *cobra.Command {
	var outputDirectory string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the reading tests in the database as YAML files",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return runWithApp(ctx, func(a *app) error {
				data, err := datasync.NewExporter(a.catalog).Export(ctx)
				if err != nil {
					return fmt.Errorf("exporter.Export() > %w", err)
				}
				paths, err := datasync.WriteTestFiles(outputDirectory, data.Tests)
				if err != nil {
					return fmt.Errorf("datasync.WriteTestFiles() > %w", err)
				}

				out := cmd.OutOrStdout()
				for _, path := range paths {
					_, _ = fmt.Fprintf(out, "  [WRITE]  %s\n", path)
				}
				_, _ = fmt.Fprintf(out, "Exported %d tests. The catalog holds %d categories and %d exercises.\n",
					len(paths), len(data.Categories), len(data.Exercises))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&outputDirectory, "output", "o", "", "Directory to write the test files to")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
