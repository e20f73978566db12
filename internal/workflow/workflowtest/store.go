// Package workflowtest provides in-memory stand-ins for the workflow engine's
// collaborators.
package workflowtest

import (
	"context"
	"fmt"
	"sync"

	"creditdesk/internal/models"
	"creditdesk/internal/workflow"

	"github.com/shopspring/decimal"
)

// InMemoryStore implements workflow.Store with the same at-most-one-winner
// transition guarantee as the SQL store.
type InMemoryStore struct {
	mu    sync.Mutex
	txs   map[string]models.Transaction
	order []string
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{txs: make(map[string]models.Transaction)}
}

func (s *InMemoryStore) Insert(_ context.Context, tx models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs[tx.ID] = tx
	s.order = append(s.order, tx.ID)
	return nil
}

func (s *InMemoryStore) GetByID(_ context.Context, id string) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.txs[id]
	if !ok {
		return models.Transaction{}, workflow.ErrNotFound
	}
	return tx, nil
}

func (s *InMemoryStore) ListAll(_ context.Context) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Transaction, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		out = append(out, s.txs[s.order[i]])
	}
	return out, nil
}

func (s *InMemoryStore) ListByOwner(_ context.Context, owner string) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Transaction
	for i := len(s.order) - 1; i >= 0; i-- {
		if tx := s.txs[s.order[i]]; tx.Owner == owner {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (s *InMemoryStore) Transition(_ context.Context, id string, target models.TransactionStatus) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.txs[id]
	if !ok {
		return models.Transaction{}, workflow.ErrNotFound
	}
	if tx.Status != models.StatusPending {
		return models.Transaction{}, fmt.Errorf("%w: already %s", workflow.ErrInvalidTransition, tx.Status)
	}
	tx.Status = target
	s.txs[id] = tx
	return tx, nil
}

// InMemoryLedger implements workflow.CreditLedger.
type InMemoryLedger struct {
	mu       sync.Mutex
	Balances map[string]decimal.Decimal
}

func NewInMemoryLedger() *InMemoryLedger {
	return &InMemoryLedger{Balances: make(map[string]decimal.Decimal)}
}

func (l *InMemoryLedger) Balance(_ context.Context, userID string) (decimal.Decimal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.Balances[userID], nil
}
