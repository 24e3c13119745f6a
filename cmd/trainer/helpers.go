package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/pflag"

	"github.com/speedreading/trainer/internal/access"
	"github.com/speedreading/trainer/internal/account"
	"github.com/speedreading/trainer/internal/catalog"
	"github.com/speedreading/trainer/internal/config"
	"github.com/speedreading/trainer/internal/database"
	"github.com/speedreading/trainer/internal/progress"
	"github.com/speedreading/trainer/internal/session"
	"github.com/speedreading/trainer/internal/telemetry"
)

const readyAttempts = 5

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

func openDB(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("database.Open() > %w", err)
	}
	if err := database.WaitReady(ctx, db, readyAttempts); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database.WaitReady() > %w", err)
	}
	return db, nil
}

// app wires every service over one database handle.
type app struct {
	cfg       *config.Config
	db        *sqlx.DB
	catalog   *catalog.DBRepository
	users     *account.DBUserRepository
	accounts  *account.Service
	ledger    *progress.Ledger
	evaluator *access.Evaluator
	sessions  *session.Service
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	rules, err := access.RulesFromConfig(cfg.Progression)
	if err != nil {
		return nil, err
	}
	db, err := openDB(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	catalogRepo := catalog.NewDBRepository(db)
	users := account.NewDBUserRepository(db)
	ledger := progress.NewLedger(progress.NewDBLedgerStore(db), catalogRepo)
	evaluator := access.NewEvaluator(rules, ledger)
	return &app{
		cfg:       cfg,
		db:        db,
		catalog:   catalogRepo,
		users:     users,
		accounts:  account.NewService(users, account.NewDBPlanChangeRepository(db), account.LogPublisher{}).WithTransactor(account.NewDBTransactor(db)),
		ledger:    ledger,
		evaluator: evaluator,
		sessions:  session.NewService(db, catalogRepo, evaluator, session.ScoringFromConfig(cfg.Scoring)),
	}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}

func (a *app) findUser(ctx context.Context, email string) (*account.User, error) {
	user, err := a.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("users.FindByEmail() > %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %s", account.ErrUserNotFound, email)
	}
	return user, nil
}

// runWithApp builds the app for the duration of fn.
func runWithApp(ctx context.Context, fn func(a *app) error) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = a.Close()
	}()

	shutdown, err := telemetry.Setup(ctx, a.cfg.Tracing)
	if err != nil {
		return fmt.Errorf("telemetry.Setup() > %w", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			slog.Default().Warn("failed to flush traces", "error", err)
		}
	}()
	return fn(a)
}

// optionalString returns nil unless the flag was set on the command line,
// so that an empty value stays distinguishable from no value.
func optionalString(flags *pflag.FlagSet, name string) (*string, error) {
	if !flags.Changed(name) {
		return nil, nil
	}
	value, err := flags.GetString(name)
	if err != nil {
		return nil, fmt.Errorf("flags.GetString(%s) > %w", name, err)
	}
	return &value, nil
}
