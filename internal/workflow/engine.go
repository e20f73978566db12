package workflow

import (
	"context"
	"time"

	"creditdesk/internal/models"
	"creditdesk/pkg/utils"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// MinimumAmount is the smallest accepted creation amount in currency units.
var MinimumAmount = decimal.RequireFromString("0.01")

// Store is the authoritative transaction record. It is the only writer of
// status changes; Transition must guarantee at most one winner when two
// callers race on the same id.
type Store interface {
	Insert(ctx context.Context, tx models.Transaction) error
	GetByID(ctx context.Context, id string) (models.Transaction, error)
	ListAll(ctx context.Context) ([]models.Transaction, error)
	ListByOwner(ctx context.Context, owner string) ([]models.Transaction, error)
	Transition(ctx context.Context, id string, target models.TransactionStatus) (models.Transaction, error)
}

// CreditLedger exposes the per-user available credit. Balance mutation on
// approval happens behind the store, not here.
type CreditLedger interface {
	Balance(ctx context.Context, userID string) (decimal.Decimal, error)
}

// Notifier is told about every decided transaction. Implementations must not
// block the caller.
type Notifier interface {
	TransactionDecided(tx models.Transaction)
}

// Engine enforces creation validation, the pending -> approved|rejected state
// machine and role authorization. It holds no mutable state of its own, so it
// is safe to share across concurrent requests.
type Engine struct {
	store    Store
	credits  CreditLedger
	notifier Notifier
}

func NewEngine(store Store, credits CreditLedger) *Engine {
	return &Engine{store: store, credits: credits}
}

// SetNotifier attaches an optional decision notifier.
func (e *Engine) SetNotifier(n Notifier) {
	e.notifier = n
}

// Create validates and persists a new pending transaction owned by the
// requester. The returned record carries the generated id and timestamp so
// callers can update their local view without a re-fetch.
func (e *Engine) Create(ctx context.Context, requester models.Identity, amount decimal.Decimal, description string) (models.Transaction, error) {
	if amount.Sign() <= 0 {
		return models.Transaction{}, ErrNonPositiveAmount
	}
	if amount.LessThan(MinimumAmount) {
		return models.Transaction{}, ErrBelowMinimum
	}

	id, err := uuid.NewV4()
	if err != nil {
		return models.Transaction{}, utils.ErrorHandler(err, "failed to generate transaction id")
	}

	tx := models.Transaction{
		ID:          id.String(),
		Owner:       requester.ID,
		Amount:      amount,
		Description: description,
		Status:      models.StatusPending,
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}

	if err := e.store.Insert(ctx, tx); err != nil {
		return models.Transaction{}, err
	}
	return tx, nil
}

// Transition moves a pending transaction to approved or rejected. Only admins
// may call it; a transaction already in a terminal status always fails with
// ErrInvalidTransition, double decisions are never silently accepted.
func (e *Engine) Transition(ctx context.Context, requester models.Identity, id string, target models.TransactionStatus) (models.Transaction, error) {
	switch requester.Role {
	case models.RoleAdmin:
	case models.RoleUser:
		return models.Transaction{}, ErrForbidden
	default:
		return models.Transaction{}, ErrForbidden
	}

	if !target.Terminal() {
		return models.Transaction{}, ErrInvalidTransition
	}

	updated, err := e.store.Transition(ctx, id, target)
	if err != nil {
		return models.Transaction{}, err
	}

	if e.notifier != nil {
		e.notifier.TransactionDecided(updated)
	}
	return updated, nil
}

// List returns the requester's visible slice of the collection: everything for
// admins, own transactions for users.
func (e *Engine) List(ctx context.Context, requester models.Identity) ([]models.Transaction, error) {
	switch requester.Role {
	case models.RoleAdmin:
		return e.store.ListAll(ctx)
	case models.RoleUser:
		return e.store.ListByOwner(ctx, requester.ID)
	default:
		return nil, ErrForbidden
	}
}

// ListOwner returns one owner's transactions. Users may only ask for their
// own; admins may ask for anyone's.
func (e *Engine) ListOwner(ctx context.Context, requester models.Identity, owner string) ([]models.Transaction, error) {
	switch requester.Role {
	case models.RoleAdmin:
	case models.RoleUser:
		if requester.ID != owner {
			return nil, ErrForbidden
		}
	default:
		return nil, ErrForbidden
	}
	return e.store.ListByOwner(ctx, owner)
}

// Credit returns the available credit for userID, subject to the same
// self-or-admin rule as ListOwner.
func (e *Engine) Credit(ctx context.Context, requester models.Identity, userID string) (decimal.Decimal, error) {
	switch requester.Role {
	case models.RoleAdmin:
	case models.RoleUser:
		if requester.ID != userID {
			return decimal.Zero, ErrForbidden
		}
	default:
		return decimal.Zero, ErrForbidden
	}
	return e.credits.Balance(ctx, userID)
}
