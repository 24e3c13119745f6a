package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/speedreading/trainer/internal/access"
	"github.com/speedreading/trainer/internal/catalog"
)

func newAccessCommand() *cobra.Command {
	accessCmd := &cobra.Command{
		Use:   "access",
		Short: "Explain whether a user may open an exercise, a test or a block",
	}
	accessCmd.AddCommand(newAccessExerciseCommand())
	accessCmd.AddCommand(newAccessTestCommand())
	accessCmd.AddCommand(newAccessBlockCommand())
	return accessCmd
}

// printDecision writes allowed in green, or denied in red followed by the reasons.
func printDecision(w io.Writer, subject string, allowed bool, reasons []string) {
	if allowed {
		_, _ = color.New(color.FgGreen).Fprintf(w, "%s: allowed\n", subject)
		return
	}
	_, _ = color.New(color.FgRed).Fprintf(w, "%s: denied\n", subject)
	for _, reason := range reasons {
		_, _ = fmt.Fprintf(w, "  - %s\n", reason)
	}
}

// exerciseOrUnavailable returns a stand-in inactive definition when code is unknown.
func exerciseOrUnavailable(e *catalog.ExerciseDefinition, code string) catalog.ExerciseDefinition {
	if e == nil {
		return catalog.ExerciseDefinition{Code: code}
	}
	return *e
}

func testOrUnavailable(t *catalog.TestDefinition, name string) catalog.TestDefinition {
	if t == nil {
		return catalog.TestDefinition{Name: name}
	}
	return *t
}

func newAccessExerciseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "exercise EMAIL CODE",
		Short: "Check access to an exercise",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return runWithApp(ctx, func(a *app) error {
				user, err := a.findUser(ctx, args[0])
				if err != nil {
					return err
				}
				exercise, err := a.catalog.FindExercise(ctx, args[1])
				if err != nil {
					return err
				}
				decision, err := a.evaluator.CanAccessExercise(ctx, *user, exerciseOrUnavailable(exercise, args[1]))
				if err != nil {
					return err
				}
				printDecision(cmd.OutOrStdout(), args[1], decision.Allowed, decision.ReasonStrings())
				return nil
			})
		},
	}
}

func newAccessTestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test EMAIL NAME",
		Short: "Check access to a reading test",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			supplied, err := optionalString(cmd.Flags(), "code")
			if err != nil {
				return err
			}
			return runWithApp(ctx, func(a *app) error {
				user, err := a.findUser(ctx, args[0])
				if err != nil {
					return err
				}
				test, err := a.catalog.FindTest(ctx, args[1])
				if err != nil {
					return err
				}
				decision, err := a.evaluator.CanAccessTest(ctx, *user, testOrUnavailable(test, args[1]), supplied)
				if err != nil {
					return err
				}
				var reasons []string
				if !decision.Allowed {
					reasons = []string{decision.ReasonString()}
				}
				printDecision(cmd.OutOrStdout(), args[1], decision.Allowed, reasons)
				return nil
			})
		},
	}
	cmd.Flags().String("code", "", "Access code supplied by the user")
	return cmd
}

func newAccessBlockCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "block EMAIL BLOCK",
		Short: "Show the prerequisites and remaining exercises of a block",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			block, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid block %q: %w", args[1], err)
			}
			return runWithApp(ctx, func(a *app) error {
				user, err := a.findUser(ctx, args[0])
				if err != nil {
					return err
				}
				unmet, err := a.evaluator.UnmetPrerequisites(ctx, user.ID, block)
				if err != nil {
					return err
				}
				reasons := make([]string, 0, len(unmet))
				for _, r := range unmet {
					reasons = append(reasons, r.String())
				}
				out := cmd.OutOrStdout()
				printDecision(out, fmt.Sprintf("block %d", block), len(unmet) == 0, reasons)

				remaining, err := a.ledger.IncompleteExercises(ctx, user.ID, block)
				if err != nil {
					return err
				}
				if len(remaining) == 0 {
					_, _ = fmt.Fprintf(out, "All exercises of block %d are complete.\n", block)
					return nil
				}
				_, _ = fmt.Fprintf(out, "%d exercises left in block %d:\n", len(remaining), block)
				for _, code := range remaining {
					_, _ = fmt.Fprintf(out, "  %s\n", code)
				}
				return nil
			})
		},
	}
}

func newExerciseCommand() *cobra.Command {
	exerciseCmd := &cobra.Command{
		Use:   "exercise",
		Short: "Exercise commands",
	}
	exerciseCmd.AddCommand(newExerciseCompleteCommand())
	return exerciseCmd
}

func newExerciseCompleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "complete EMAIL CODE",
		Short: "Mark an exercise as completed by a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return runWithApp(ctx, func(a *app) error {
				user, err := a.findUser(ctx, args[0])
				if err != nil {
					return err
				}
				exercise, err := a.catalog.FindExercise(ctx, args[1])
				if err != nil {
					return err
				}
				decision, err := a.evaluator.CanAccessExercise(ctx, *user, exerciseOrUnavailable(exercise, args[1]))
				if err != nil {
					return err
				}
				if !decision.Allowed {
					printDecision(cmd.OutOrStdout(), args[1], false, decision.ReasonStrings())
					return fmt.Errorf("%w: %s", access.ErrDenied, args[1])
				}
				if err := a.ledger.MarkExerciseCompleted(ctx, user.ID, args[1]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Completed %s\n", args[1])
				return nil
			})
		},
	}
}
