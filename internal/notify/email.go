// Package notify tells transaction owners about admin decisions.
package notify

import (
	"context"
	"database/sql"
	"time"

	"creditdesk/internal/models"
	"creditdesk/pkg/utils"
)

// EmailNotifier resolves the owner's address from the users table the
// identity service maintains and sends a decision email. Delivery is
// best-effort: failures are logged, never propagated into the workflow.
type EmailNotifier struct {
	db *sql.DB
}

func NewEmailNotifier(db *sql.DB) *EmailNotifier {
	return &EmailNotifier{db: db}
}

func (n *EmailNotifier) TransactionDecided(tx models.Transaction) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var email, name string
		err := n.db.QueryRowContext(ctx, `SELECT email, name FROM users WHERE id = ?`, tx.Owner).Scan(&email, &name)
		if err != nil {
			utils.Logger.Errorf("failed to look up owner %s for decision email: %v", tx.Owner, err)
			return
		}

		if err := utils.SendDecisionEmail(email, name, tx); err != nil {
			utils.Logger.Errorf("failed to send decision email to %s: %v", email, err)
		}
	}()
}
