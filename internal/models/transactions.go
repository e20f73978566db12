package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionStatus string

const (
	StatusPending  TransactionStatus = "pending"
	StatusApproved TransactionStatus = "approved"
	StatusRejected TransactionStatus = "rejected"
)

// Terminal reports whether no further status change is allowed.
func (s TransactionStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

func (s TransactionStatus) Valid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

type Transaction struct {
	ID          string            `json:"_id" db:"id"`
	Owner       string            `json:"user" db:"owner"`
	Amount      decimal.Decimal   `json:"amount" db:"amount"`
	Description string            `json:"description" db:"description"`
	Status      TransactionStatus `json:"status" db:"status"`
	CreatedAt   time.Time         `json:"createdAt" db:"created_at"`
}
