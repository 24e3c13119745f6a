package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/speedreading/trainer/internal/database"
)

type PlanChangeKind string

const (
	PlanChangeUpgrade   PlanChangeKind = "upgrade"
	PlanChangeDowngrade PlanChangeKind = "downgrade"
)

func ParsePlanChangeKind(s string) (PlanChangeKind, error) {
	switch k := PlanChangeKind(s); k {
	case PlanChangeUpgrade, PlanChangeDowngrade:
		return k, nil
	}
	return "", fmt.Errorf("unknown plan change kind %q", s)
}

// TargetTier is the tier a user ends up on once the request is approved.
func (k PlanChangeKind) TargetTier() Tier {
	if k == PlanChangeUpgrade {
		return TierPro
	}
	return TierFree
}

type PlanChangeStatus string

const (
	PlanChangePending   PlanChangeStatus = "pending"
	PlanChangeProcessed PlanChangeStatus = "processed"
	PlanChangeCancelled PlanChangeStatus = "cancelled"
)

type PlanChangeRequest struct {
	ID          int64            `db:"id"`
	UserID      int64            `db:"user_id"`
	Kind        PlanChangeKind   `db:"kind"`
	Status      PlanChangeStatus `db:"status"`
	RequestedAt time.Time        `db:"requested_at"`
	ResolvedAt  sql.NullTime     `db:"resolved_at"`
	ResolvedBy  sql.NullInt64    `db:"resolved_by"`
	Notes       string           `db:"notes"`
}

var (
	ErrPendingRequestExists = errors.New("account: a plan change request is already pending")
	ErrRequestNotPending    = errors.New("account: plan change request is not pending")
)

//go:generate mockgen -source=plan_change.go -destination=../mocks/account/mock_plan_change.go -package=mock_account

// PlanChangeRepository stores plan change requests. At most one request per
// user is pending at a time.
type PlanChangeRepository interface {
	FindByID(ctx context.Context, id int64) (*PlanChangeRequest, error)
	FindPending(ctx context.Context, userID int64) (*PlanChangeRequest, error)
	ListPending(ctx context.Context) ([]PlanChangeRequest, error)
	Create(ctx context.Context, req *PlanChangeRequest) error
	Resolve(ctx context.Context, id int64, status PlanChangeStatus, resolvedBy int64, resolvedAt time.Time, notes string) error
}

type DBPlanChangeRepository struct {
	db sqlx.ExtContext
}

func NewDBPlanChangeRepository(db sqlx.ExtContext) *DBPlanChangeRepository {
	return &DBPlanChangeRepository{db: db}
}

const planChangeColumns = "id, user_id, kind, status, requested_at, resolved_at, resolved_by, notes"

func (r *DBPlanChangeRepository) FindByID(ctx context.Context, id int64) (*PlanChangeRequest, error) {
	var req PlanChangeRequest
	err := sqlx.GetContext(ctx, r.db, &req, "SELECT "+planChangeColumns+" FROM plan_change_requests WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(plan_change_requests) > %w", err)
	}
	return &req, nil
}

func (r *DBPlanChangeRepository) FindPending(ctx context.Context, userID int64) (*PlanChangeRequest, error) {
	var req PlanChangeRequest
	err := sqlx.GetContext(ctx, r.db, &req,
		"SELECT "+planChangeColumns+" FROM plan_change_requests WHERE user_id = ? AND status = ?",
		userID, string(PlanChangePending),
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(plan_change_requests) > %w", err)
	}
	return &req, nil
}

func (r *DBPlanChangeRepository) ListPending(ctx context.Context) ([]PlanChangeRequest, error) {
	var reqs []PlanChangeRequest
	if err := sqlx.SelectContext(ctx, r.db, &reqs,
		"SELECT "+planChangeColumns+" FROM plan_change_requests WHERE status = ? ORDER BY requested_at, id",
		string(PlanChangePending),
	); err != nil {
		return nil, fmt.Errorf("db.SelectContext(plan_change_requests) > %w", err)
	}
	return reqs, nil
}

// Create inserts a pending request. The pending_slot column makes a second
// pending request for the same user a unique key violation.
func (r *DBPlanChangeRepository) Create(ctx context.Context, req *PlanChangeRequest) error {
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO plan_change_requests (user_id, kind, status, requested_at, notes, pending_slot) VALUES (?, ?, ?, ?, ?, 1)",
		req.UserID, string(req.Kind), string(PlanChangePending), req.RequestedAt, req.Notes,
	)
	if database.IsDuplicateKeyError(err) {
		return ErrPendingRequestExists
	}
	if err != nil {
		return fmt.Errorf("db.ExecContext(insert plan_change_requests) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("result.LastInsertId() > %w", err)
	}
	req.ID = id
	req.Status = PlanChangePending
	return nil
}

// Resolve moves a pending request to status. It returns ErrRequestNotPending
// when the request was already resolved.
func (r *DBPlanChangeRepository) Resolve(ctx context.Context, id int64, status PlanChangeStatus, resolvedBy int64, resolvedAt time.Time, notes string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE plan_change_requests SET status = ?, resolved_at = ?, resolved_by = ?, notes = ?, pending_slot = NULL WHERE id = ? AND status = ?",
		string(status), resolvedAt, resolvedBy, notes, id, string(PlanChangePending),
	)
	if err != nil {
		return fmt.Errorf("db.ExecContext(update plan_change_requests) > %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("result.RowsAffected() > %w", err)
	}
	if affected == 0 {
		return ErrRequestNotPending
	}
	return nil
}
