// Package transactions is the MySQL-backed authoritative transaction record.
package transactions

import (
	"context"
	"database/sql"
	"fmt"

	"creditdesk/internal/models"
	"creditdesk/internal/workflow"
	"creditdesk/pkg/utils"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Insert(ctx context.Context, tx models.Transaction) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (id, owner, amount, description, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, tx.ID, tx.Owner, tx.Amount, tx.Description, tx.Status, tx.CreatedAt)
	if err != nil {
		return utils.ErrorHandler(err, "failed to insert transaction")
	}
	return nil
}

func (s *Store) GetByID(ctx context.Context, id string) (models.Transaction, error) {
	var tx models.Transaction
	err := s.db.QueryRowContext(ctx, `
		SELECT id, owner, amount, description, status, created_at
		FROM transactions WHERE id = ?
	`, id).Scan(&tx.ID, &tx.Owner, &tx.Amount, &tx.Description, &tx.Status, &tx.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Transaction{}, workflow.ErrNotFound
		}
		return models.Transaction{}, utils.ErrorHandler(err, "failed to fetch transaction")
	}
	return tx, nil
}

func (s *Store) ListAll(ctx context.Context) ([]models.Transaction, error) {
	return s.list(ctx, `
		SELECT id, owner, amount, description, status, created_at
		FROM transactions ORDER BY created_at DESC
	`)
}

func (s *Store) ListByOwner(ctx context.Context, owner string) ([]models.Transaction, error) {
	return s.list(ctx, `
		SELECT id, owner, amount, description, status, created_at
		FROM transactions WHERE owner = ? ORDER BY created_at DESC
	`, owner)
}

func (s *Store) list(ctx context.Context, query string, args ...any) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, utils.ErrorHandler(err, "failed to fetch transactions")
	}
	defer rows.Close()

	var txs []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(&tx.ID, &tx.Owner, &tx.Amount, &tx.Description, &tx.Status, &tx.CreatedAt); err != nil {
			return nil, utils.ErrorHandler(err, "failed to scan transaction row")
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, utils.ErrorHandler(err, "failed reading transaction rows")
	}
	return txs, nil
}

// Transition flips a pending transaction to its terminal status. The
// conditional UPDATE is the serialization point: when two admins race on the
// same id, exactly one UPDATE matches and the loser sees ErrInvalidTransition.
// Approval debits the owner's credit balance in the same database transaction.
func (s *Store) Transition(ctx context.Context, id string, target models.TransactionStatus) (models.Transaction, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Transaction{}, utils.ErrorHandler(err, "failed to start transaction")
	}
	defer dbTx.Rollback()

	res, err := dbTx.ExecContext(ctx, `
		UPDATE transactions SET status = ? WHERE id = ? AND status = ?
	`, target, id, models.StatusPending)
	if err != nil {
		return models.Transaction{}, utils.ErrorHandler(err, "failed to update transaction status")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return models.Transaction{}, utils.ErrorHandler(err, "failed to read affected rows")
	}

	if affected == 0 {
		var current models.TransactionStatus
		err := dbTx.QueryRowContext(ctx, `SELECT status FROM transactions WHERE id = ?`, id).Scan(&current)
		if err == sql.ErrNoRows {
			return models.Transaction{}, workflow.ErrNotFound
		}
		if err != nil {
			return models.Transaction{}, utils.ErrorHandler(err, "failed to fetch transaction status")
		}
		return models.Transaction{}, fmt.Errorf("%w: already %s", workflow.ErrInvalidTransition, current)
	}

	var updated models.Transaction
	err = dbTx.QueryRowContext(ctx, `
		SELECT id, owner, amount, description, status, created_at
		FROM transactions WHERE id = ?
	`, id).Scan(&updated.ID, &updated.Owner, &updated.Amount, &updated.Description, &updated.Status, &updated.CreatedAt)
	if err != nil {
		return models.Transaction{}, utils.ErrorHandler(err, "failed to fetch updated transaction")
	}

	if target == models.StatusApproved {
		_, err = dbTx.ExecContext(ctx, `
			UPDATE credits SET balance = balance - ? WHERE user_id = ?
		`, updated.Amount, updated.Owner)
		if err != nil {
			return models.Transaction{}, utils.ErrorHandler(err, "failed to adjust credit balance")
		}
	}

	if err := dbTx.Commit(); err != nil {
		return models.Transaction{}, utils.ErrorHandler(err, "failed to commit transition")
	}
	return updated, nil
}
