// Package credits reads the per-user available credit maintained by the
// external ledger.
package credits

import (
	"context"
	"database/sql"

	"creditdesk/pkg/utils"

	"github.com/shopspring/decimal"
)

type Ledger struct {
	db *sql.DB
}

func NewLedger(db *sql.DB) *Ledger {
	return &Ledger{db: db}
}

// Balance returns the user's available credit. A user without a credits row
// has zero credit.
func (l *Ledger) Balance(ctx context.Context, userID string) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := l.db.QueryRowContext(ctx, `SELECT balance FROM credits WHERE user_id = ?`, userID).Scan(&balance)
	if err != nil {
		if err == sql.ErrNoRows {
			return decimal.Zero, nil
		}
		return decimal.Zero, utils.ErrorHandler(err, "failed to fetch credit balance")
	}
	return balance, nil
}
