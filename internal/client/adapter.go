package client

import (
	"context"
	"errors"
	"sync"

	"creditdesk/internal/models"
	"creditdesk/internal/views"
	"creditdesk/internal/workflow"

	"github.com/shopspring/decimal"
)

var (
	// ErrRequestInFlight means a prior call for the same intent has not come
	// back yet; the duplicate is never sent.
	ErrRequestInFlight = errors.New("request already in flight")

	// ErrNotConfirmed means the confirmation step declined the action.
	ErrNotConfirmed = errors.New("action not confirmed")
)

const createGuardKey = "create"

// Notifier surfaces outcomes to the person driving the adapter. Every failed
// attempt produces exactly one Failure call.
type Notifier interface {
	Success(message string)
	Failure(message string)
}

// ConfirmFunc is the mandatory "are you sure" step before a transition.
// Returning false abandons the action without a network call.
type ConfirmFunc func(tx models.Transaction, target models.TransactionStatus) bool

// Adapter keeps a local projection of the transaction collection. Local state
// changes only after the server acknowledges a write, never before: Submit
// prepends the record the server returned, Decide patches only the status of
// the matching local record. An in-flight guard per intent blocks double
// submits.
type Adapter struct {
	api      *Client
	identity models.Identity
	notifier Notifier
	confirm  ConfirmFunc

	mu         sync.Mutex
	projection []models.Transaction
	inflight   map[string]bool
	sortState  views.SortState
}

func NewAdapter(api *Client, identity models.Identity, notifier Notifier, confirm ConfirmFunc) *Adapter {
	return &Adapter{
		api:      api,
		identity: identity,
		notifier: notifier,
		confirm:  confirm,
		inflight: make(map[string]bool),
	}
}

func (a *Adapter) Identity() models.Identity {
	return a.identity
}

// Refresh replaces the projection with the server's truth; run it on session
// establishment and on reconnect to self-heal.
func (a *Adapter) Refresh(ctx context.Context) error {
	var txs []models.Transaction
	var err error

	switch a.identity.Role {
	case models.RoleAdmin:
		txs, err = a.api.ListAll(ctx)
	case models.RoleUser:
		txs, err = a.api.ListUser(ctx, a.identity.ID)
	default:
		err = workflow.ErrForbidden
	}
	if err != nil {
		a.notifier.Failure("Failed to load transactions")
		return err
	}

	a.mu.Lock()
	a.projection = txs
	a.mu.Unlock()
	return nil
}

// Transactions returns the projection ordered by the current sort state.
func (a *Adapter) Transactions() []models.Transaction {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sortState.Apply(a.projection)
}

// ToggleSort flips or switches the active sort column and returns the
// reordered view.
func (a *Adapter) ToggleSort(key views.SortKey) []models.Transaction {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sortState.Toggle(key)
	return a.sortState.Apply(a.projection)
}

// Submit validates and sends a creation request. The local projection gains
// the record only after the server accepts the write.
func (a *Adapter) Submit(ctx context.Context, amount decimal.Decimal, description string) (models.Transaction, error) {
	// Mirror the server's validation so bad input never leaves the client.
	if amount.Sign() <= 0 {
		a.notifier.Failure(workflow.ErrNonPositiveAmount.Error())
		return models.Transaction{}, workflow.ErrNonPositiveAmount
	}
	if amount.LessThan(workflow.MinimumAmount) {
		a.notifier.Failure(workflow.ErrBelowMinimum.Error())
		return models.Transaction{}, workflow.ErrBelowMinimum
	}

	if err := a.acquire(createGuardKey); err != nil {
		return models.Transaction{}, err
	}
	defer a.release(createGuardKey)

	tx, err := a.api.Create(ctx, a.identity.ID, amount, description)
	if err != nil {
		a.notifier.Failure("Failed to submit transaction")
		return models.Transaction{}, err
	}

	a.mu.Lock()
	a.projection = append([]models.Transaction{tx}, a.projection...)
	a.mu.Unlock()

	a.notifier.Success("Transaction submitted successfully!")
	return tx, nil
}

// Decide runs the confirmation step and, if confirmed, asks the server to
// approve or reject the transaction. On failure the local record is left
// untouched; no status is ever guessed.
func (a *Adapter) Decide(ctx context.Context, id string, target models.TransactionStatus) (models.Transaction, error) {
	local, _ := a.lookup(id)

	if a.confirm == nil || !a.confirm(local, target) {
		return models.Transaction{}, ErrNotConfirmed
	}

	if err := a.acquire(id); err != nil {
		return models.Transaction{}, err
	}
	defer a.release(id)

	var updated models.Transaction
	var err error
	switch target {
	case models.StatusApproved:
		updated, err = a.api.Approve(ctx, id)
	case models.StatusRejected:
		updated, err = a.api.Reject(ctx, id)
	default:
		err = workflow.ErrInvalidTransition
	}
	if err != nil {
		a.notifier.Failure("Error updating transaction status")
		return models.Transaction{}, err
	}

	a.mu.Lock()
	for i := range a.projection {
		if a.projection[i].ID == id {
			a.projection[i].Status = updated.Status
			break
		}
	}
	a.mu.Unlock()

	a.notifier.Success("Transaction " + string(updated.Status) + " successfully!")
	return updated, nil
}

// Credit fetches the requester's own available credit.
func (a *Adapter) Credit(ctx context.Context) (decimal.Decimal, error) {
	balance, err := a.api.Credit(ctx, a.identity.ID)
	if err != nil {
		a.notifier.Failure("Failed to load credit balance")
		return decimal.Zero, err
	}
	return balance, nil
}

func (a *Adapter) lookup(id string) (models.Transaction, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, tx := range a.projection {
		if tx.ID == id {
			return tx, true
		}
	}
	return models.Transaction{ID: id}, false
}

func (a *Adapter) acquire(key string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.inflight[key] {
		return ErrRequestInFlight
	}
	a.inflight[key] = true
	return nil
}

func (a *Adapter) release(key string) {
	a.mu.Lock()
	delete(a.inflight, key)
	a.mu.Unlock()
}
