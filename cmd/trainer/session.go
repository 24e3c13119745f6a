package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/speedreading/trainer/internal/access"
	"github.com/speedreading/trainer/internal/catalog"
	"github.com/speedreading/trainer/internal/session"
)

func newSessionCommand() *cobra.Command {
	sessionCmd := &cobra.Command{
		Use:   "session",
		Short: "Reading test session commands",
	}
	sessionCmd.AddCommand(newSessionStartCommand())
	sessionCmd.AddCommand(newSessionFinishReadingCommand())
	sessionCmd.AddCommand(newSessionSubmitCommand())
	sessionCmd.AddCommand(newSessionShowCommand())
	sessionCmd.AddCommand(newSessionListCommand())
	return sessionCmd
}

func parseSessionID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid session id %q: %w", s, err)
	}
	return id, nil
}

func printQuestions(w io.Writer, test catalog.TestDefinition) {
	for _, q := range test.Questions {
		_, _ = fmt.Fprintf(w, "[%d] %s\n", q.ID, q.Prompt)
		for _, o := range q.Options {
			_, _ = fmt.Fprintf(w, "    (%d) %s\n", o.ID, o.Label)
		}
	}
}

func printResult(w io.Writer, sess session.Session) {
	result := sess.Result()
	evaluation := session.Evaluate(result)
	bold := color.New(color.Bold)

	_, _ = bold.Fprintf(w, "Result of %s\n", sess.TestName)
	_, _ = fmt.Fprintf(w, "  Reading time:       %s\n", sess.ReadingDuration().Round(time.Millisecond))
	_, _ = fmt.Fprintf(w, "  Reading speed:      %d wpm (%s)\n", result.ReadingSpeedWPM, evaluation.Speed)
	_, _ = fmt.Fprintf(w, "  Memorization speed: %d wpm (%s)\n", result.MemorizationSpeedWPM, evaluation.Memorization)
	_, _ = fmt.Fprintf(w, "  Comprehension:      %d/%d, %.1f%% (%s)\n", result.CorrectAnswers, result.TotalQuestions, evaluation.ComprehensionPct, evaluation.Comprehension)
	_, _ = fmt.Fprintf(w, "  Message:            %s\n", evaluation.Message)
}

func newSessionStartCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start EMAIL TEST",
		Short: "Start or resume a reading test session",
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
				result, err := a.sessions.Start(ctx, *user, args[1], supplied)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if !result.Decision.Allowed {
					printDecision(out, args[1], false, []string{result.Decision.ReasonString()})
					return fmt.Errorf("%w: %s", access.ErrDenied, args[1])
				}

				sess := result.Session
				verb := "Started"
				if result.Resumed {
					verb = "Resumed"
				}
				_, _ = fmt.Fprintf(out, "%s session %s (%s)\n", verb, sess.ID, sess.State)
				if sess.State == session.StateReading {
					_, _ = fmt.Fprintf(out, "%s, %d words\n\n%s\n", result.Test.Title, result.Test.WordCount, result.Test.Text)
					return nil
				}
				printQuestions(out, *result.Test)
				return nil
			})
		},
	}
	cmd.Flags().String("code", "", "Access code of the test")
	return cmd
}

func newSessionFinishReadingCommand() *cobra.Command {
	var readingTime time.Duration

	cmd := &cobra.Command{
		Use:   "finish-reading EMAIL SESSION_ID",
		Short: "Record the reading time and show the questions",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseSessionID(args[1])
			if err != nil {
				return err
			}
			return runWithApp(ctx, func(a *app) error {
				user, err := a.findUser(ctx, args[0])
				if err != nil {
					return err
				}
				sess, err := a.sessions.FinishReading(ctx, user.ID, id, readingTime.Milliseconds())
				if err != nil {
					return err
				}
				test, err := a.catalog.FindTest(ctx, sess.TestName)
				if err != nil {
					return err
				}
				if test == nil {
					return fmt.Errorf("%w: %s", catalog.ErrTestNotFound, sess.TestName)
				}
				printQuestions(cmd.OutOrStdout(), *test)
				return nil
			})
		},
	}
	cmd.Flags().DurationVar(&readingTime, "time", 0, "Time spent reading, for example 2m30s")
	_ = cmd.MarkFlagRequired("time")
	return cmd
}

func newSessionSubmitCommand() *cobra.Command {
	var answersFile string

	cmd := &cobra.Command{
		Use:   "submit EMAIL SESSION_ID",
		Short: "Submit the answers of a session and show the result",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseSessionID(args[1])
			if err != nil {
				return err
			}
			f, err := os.Open(answersFile)
			if err != nil {
				return fmt.Errorf("os.Open(%s) > %w", answersFile, err)
			}
			defer func() {
				_ = f.Close()
			}()
			answers, err := session.ParseAnswers(f)
			if err != nil {
				return err
			}

			return runWithApp(ctx, func(a *app) error {
				user, err := a.findUser(ctx, args[0])
				if err != nil {
					return err
				}
				sess, err := a.sessions.SubmitAnswers(ctx, user.ID, id, answers)
				if err != nil {
					return err
				}
				printResult(cmd.OutOrStdout(), *sess)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&answersFile, "answers", "a", "", "YAML file with the selected options")
	_ = cmd.MarkFlagRequired("answers")
	return cmd
}

func newSessionShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show EMAIL SESSION_ID",
		Short: "Show the state of a session, and its result once complete",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseSessionID(args[1])
			if err != nil {
				return err
			}
			return runWithApp(ctx, func(a *app) error {
				user, err := a.findUser(ctx, args[0])
				if err != nil {
					return err
				}
				sess, err := a.sessions.Get(ctx, user.ID, id)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if sess.State != session.StateComplete {
					_, _ = fmt.Fprintf(out, "Session %s on %s is %s\n", sess.ID, sess.TestName, sess.State)
					return nil
				}
				printResult(out, *sess)
				return nil
			})
		},
	}
}

func newSessionListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list EMAIL",
		Short: "List the completed sessions of a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return runWithApp(ctx, func(a *app) error {
				user, err := a.findUser(ctx, args[0])
				if err != nil {
					return err
				}
				sessions, err := a.sessions.ListCompleted(ctx, user.ID)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for _, s := range sessions {
					_, _ = fmt.Fprintf(out, "  %s  %-10s  %4d wpm  %4d wpm  %d/%d\n",
						s.ID, s.TestName, s.ReadingSpeedWPM, s.MemorizationSpeedWPM, s.CorrectAnswers, s.TotalQuestions)
				}
				return nil
			})
		},
	}
}

func newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats EMAIL",
		Short: "Show the progress summary of a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return runWithApp(ctx, func(a *app) error {
				user, err := a.findUser(ctx, args[0])
				if err != nil {
					return err
				}
				summary, err := a.ledger.Summary(ctx, user.ID)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(out, "Tests completed:         %d\n", summary.TestsCompleted)
				_, _ = fmt.Fprintf(out, "Best reading speed:      %d wpm\n", summary.BestReadingSpeed)
				_, _ = fmt.Fprintf(out, "Best memorization speed: %d wpm\n", summary.BestMemorizationSpeed)
				_, _ = fmt.Fprintf(out, "Average reading speed:   %d wpm\n", summary.AverageReadingSpeed)
				_, _ = fmt.Fprintf(out, "Exercises completed:     %d\n", summary.ExercisesCompleted)
				categories := make([]string, 0, len(summary.ExercisesByCategory))
				for category := range summary.ExercisesByCategory {
					categories = append(categories, category)
				}
				sort.Strings(categories)
				for _, category := range categories {
					_, _ = fmt.Fprintf(out, "  %-4s %d\n", category, summary.ExercisesByCategory[category])
				}
				if summary.LastTest != nil {
					_, _ = fmt.Fprintf(out, "Last test:               %s on %s\n",
						a.evaluator.Rules().DisplayName(summary.LastTest.TestName), summary.LastTest.CompletedAt.Format(time.DateOnly))
				}
				return nil
			})
		},
	}
}
