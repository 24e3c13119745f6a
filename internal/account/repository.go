package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/speedreading/trainer/internal/database"
)

var ErrEmailTaken = errors.New("account: email already registered")

//go:generate mockgen -source=repository.go -destination=../mocks/account/mock_repository.go -package=mock_account

// UserRepository looks up and mutates users.
type UserRepository interface {
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, user *User) error
	UpdateTier(ctx context.Context, id int64, tier Tier) error
}

// DBUserRepository implements UserRepository using sqlx.
type DBUserRepository struct {
	db sqlx.ExtContext
}

func NewDBUserRepository(db sqlx.ExtContext) *DBUserRepository {
	return &DBUserRepository{db: db}
}

// FindByID returns nil without an error when the user does not exist.
func (r *DBUserRepository) FindByID(ctx context.Context, id int64) (*User, error) {
	var u User
	err := sqlx.GetContext(ctx, r.db, &u, "SELECT id, email, name, role, tier, registered_at FROM users WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(users) > %w", err)
	}
	return &u, nil
}

func (r *DBUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := sqlx.GetContext(ctx, r.db, &u, "SELECT id, email, name, role, tier, registered_at FROM users WHERE email = ?", email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(users) > %w", err)
	}
	return &u, nil
}

// Create inserts user and sets its ID.
func (r *DBUserRepository) Create(ctx context.Context, user *User) error {
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO users (email, name, role, tier, registered_at) VALUES (?, ?, ?, ?, ?)",
		user.Email, user.Name, string(user.Role), string(user.Tier), user.RegisteredAt,
	)
	if database.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %s", ErrEmailTaken, user.Email)
	}
	if err != nil {
		return fmt.Errorf("db.ExecContext(insert users) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("result.LastInsertId() > %w", err)
	}
	user.ID = id
	return nil
}

func (r *DBUserRepository) UpdateTier(ctx context.Context, id int64, tier Tier) error {
	if _, err := r.db.ExecContext(ctx, "UPDATE users SET tier = ? WHERE id = ?", string(tier), id); err != nil {
		return fmt.Errorf("db.ExecContext(update users) > %w", err)
	}
	return nil
}

// DBTransactor implements Transactor with database.RunInTx.
type DBTransactor struct {
	db *sqlx.DB
}

func NewDBTransactor(db *sqlx.DB) *DBTransactor {
	return &DBTransactor{db: db}
}

func (t *DBTransactor) InTx(ctx context.Context, fn func(ctx context.Context, users UserRepository, requests PlanChangeRepository) error) error {
	return database.RunInTx(ctx, t.db, func(ctx context.Context, tx *sqlx.Tx) error {
		return fn(ctx, NewDBUserRepository(tx), NewDBPlanChangeRepository(tx))
	})
}
