package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

var (
	ErrNotAdministrator        = errors.New("account: administrator role required")
	ErrUserNotFound            = errors.New("account: user not found")
	ErrRequestNotFound         = errors.New("account: plan change request not found")
	ErrPlanChangeNotApplicable = errors.New("account: plan change does not apply to the current tier")
)

// PlanChanged is emitted after a user's tier has been persisted with a new value.
type PlanChanged struct {
	UserID    int64
	From      Tier
	To        Tier
	ChangedBy int64
	ChangedAt time.Time
}

//go:generate mockgen -source=service.go -destination=../mocks/account/mock_service.go -package=mock_account

// EventPublisher delivers PlanChanged events to whoever notifies users.
type EventPublisher interface {
	PublishPlanChanged(ctx context.Context, event PlanChanged) error
}

// Transactor runs fn with repositories bound to a single transaction. fn's
// writes are committed together or not at all.
type Transactor interface {
	InTx(ctx context.Context, fn func(ctx context.Context, users UserRepository, requests PlanChangeRepository) error) error
}

// directTx runs fn on the service's own repositories without a transaction.
type directTx struct {
	users    UserRepository
	requests PlanChangeRepository
}

func (d directTx) InTx(ctx context.Context, fn func(ctx context.Context, users UserRepository, requests PlanChangeRepository) error) error {
	return fn(ctx, d.users, d.requests)
}

// LogPublisher writes PlanChanged events to the default logger.
type LogPublisher struct{}

func (LogPublisher) PublishPlanChanged(ctx context.Context, event PlanChanged) error {
	slog.Default().InfoContext(ctx, "plan changed",
		"user_id", event.UserID,
		"from", event.From,
		"to", event.To,
		"changed_by", event.ChangedBy,
		"changed_at", event.ChangedAt,
	)
	return nil
}

type Service struct {
	users     UserRepository
	requests  PlanChangeRepository
	publisher EventPublisher
	tx        Transactor
	now       func() time.Time
}

func NewService(users UserRepository, requests PlanChangeRepository, publisher EventPublisher) *Service {
	return &Service{
		users:     users,
		requests:  requests,
		publisher: publisher,
		tx:        directTx{users: users, requests: requests},
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// WithTransactor makes plan approvals resolve the request and update the
// tier in one transaction run by tx.
func (s *Service) WithTransactor(tx Transactor) *Service {
	s.tx = tx
	return s
}

// Register creates a regular free-tier user.
func (s *Service) Register(ctx context.Context, email, name string) (*User, error) {
	user := &User{
		Email:        email,
		Name:         name,
		Role:         RoleRegular,
		Tier:         TierFree,
		RegisteredAt: s.now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("users.Create() > %w", err)
	}
	return user, nil
}

// ChangeTier sets the tier of userID on behalf of actor and emits PlanChanged
// when the stored tier actually changes.
func (s *Service) ChangeTier(ctx context.Context, actor User, userID int64, tier Tier) (*User, error) {
	if !IsAdministrator(actor) {
		return nil, ErrNotAdministrator
	}
	user, event, err := s.applyTier(ctx, s.users, actor, userID, tier)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, event)
	return user, nil
}

// applyTier writes tier through users. The event is nil when the tier was
// already set.
func (s *Service) applyTier(ctx context.Context, users UserRepository, actor User, userID int64, tier Tier) (*User, *PlanChanged, error) {
	if _, err := ParseTier(string(tier)); err != nil {
		return nil, nil, err
	}
	user, err := users.FindByID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("users.FindByID() > %w", err)
	}
	if user == nil {
		return nil, nil, fmt.Errorf("%w: %d", ErrUserNotFound, userID)
	}
	if user.Tier == tier {
		return user, nil, nil
	}

	if err := users.UpdateTier(ctx, userID, tier); err != nil {
		return nil, nil, fmt.Errorf("users.UpdateTier() > %w", err)
	}
	event := &PlanChanged{
		UserID:    userID,
		From:      user.Tier,
		To:        tier,
		ChangedBy: actor.ID,
		ChangedAt: s.now(),
	}
	user.Tier = tier
	return user, event, nil
}

func (s *Service) publish(ctx context.Context, event *PlanChanged) {
	if event == nil {
		return
	}
	if err := s.publisher.PublishPlanChanged(ctx, *event); err != nil {
		slog.Default().WarnContext(ctx, "failed to publish plan change", "user_id", event.UserID, "error", err)
	}
}

// RequestPlanChange records a pending request from user to move to the tier kind points at.
func (s *Service) RequestPlanChange(ctx context.Context, user User, kind PlanChangeKind, notes string) (*PlanChangeRequest, error) {
	if _, err := ParsePlanChangeKind(string(kind)); err != nil {
		return nil, err
	}
	if IsAdministrator(user) || user.Tier == kind.TargetTier() {
		return nil, ErrPlanChangeNotApplicable
	}

	pending, err := s.requests.FindPending(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("requests.FindPending() > %w", err)
	}
	if pending != nil {
		return nil, ErrPendingRequestExists
	}

	req := &PlanChangeRequest{
		UserID:      user.ID,
		Kind:        kind,
		RequestedAt: s.now(),
		Notes:       notes,
	}
	if err := s.requests.Create(ctx, req); err != nil {
		if errors.Is(err, ErrPendingRequestExists) {
			return nil, err
		}
		return nil, fmt.Errorf("requests.Create() > %w", err)
	}
	return req, nil
}

// ResolvePlanChange approves or rejects a pending request. Approval resolves
// the request and applies the tier change together; PlanChanged is published
// only after both are stored.
func (s *Service) ResolvePlanChange(ctx context.Context, actor User, requestID int64, approve bool, notes string) (*PlanChangeRequest, error) {
	if !IsAdministrator(actor) {
		return nil, ErrNotAdministrator
	}
	req, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("requests.FindByID() > %w", err)
	}
	if req == nil {
		return nil, fmt.Errorf("%w: %d", ErrRequestNotFound, requestID)
	}

	status := PlanChangeCancelled
	if approve {
		status = PlanChangeProcessed
	}
	resolvedAt := s.now()
	var event *PlanChanged
	err = s.tx.InTx(ctx, func(ctx context.Context, users UserRepository, requests PlanChangeRepository) error {
		if err := requests.Resolve(ctx, req.ID, status, actor.ID, resolvedAt, notes); err != nil {
			if errors.Is(err, ErrRequestNotPending) {
				return err
			}
			return fmt.Errorf("requests.Resolve() > %w", err)
		}
		if !approve {
			return nil
		}
		var err error
		_, event, err = s.applyTier(ctx, users, actor, req.UserID, req.Kind.TargetTier())
		return err
	})
	if err != nil {
		return nil, err
	}
	req.Status = status
	req.ResolvedAt.Time, req.ResolvedAt.Valid = resolvedAt, true
	req.ResolvedBy.Int64, req.ResolvedBy.Valid = actor.ID, true
	req.Notes = notes

	s.publish(ctx, event)
	return req, nil
}

// CancelPlanChange lets the owner withdraw a pending request.
func (s *Service) CancelPlanChange(ctx context.Context, user User, requestID int64) error {
	req, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return fmt.Errorf("requests.FindByID() > %w", err)
	}
	if req == nil || req.UserID != user.ID {
		return fmt.Errorf("%w: %d", ErrRequestNotFound, requestID)
	}
	if err := s.requests.Resolve(ctx, req.ID, PlanChangeCancelled, user.ID, s.now(), req.Notes); err != nil {
		if errors.Is(err, ErrRequestNotPending) {
			return err
		}
		return fmt.Errorf("requests.Resolve() > %w", err)
	}
	return nil
}
