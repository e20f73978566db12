// Package views produces ordered projections of a transaction collection for
// table rendering. Sorting is stable so equal keys keep their original
// relative order.
package views

import (
	"sort"
	"strings"

	"creditdesk/internal/models"
)

type SortKey string

const (
	SortByCreatedAt   SortKey = "createdAt"
	SortByOwner       SortKey = "user"
	SortByDescription SortKey = "description"
	SortByAmount      SortKey = "amount"
	SortByStatus      SortKey = "status"
)

func (k SortKey) Valid() bool {
	switch k {
	case SortByCreatedAt, SortByOwner, SortByDescription, SortByAmount, SortByStatus:
		return true
	}
	return false
}

type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

func (d Direction) Valid() bool {
	return d == Ascending || d == Descending
}

// Sort returns a sorted copy; the input slice is left untouched.
func Sort(txs []models.Transaction, key SortKey, dir Direction) []models.Transaction {
	out := make([]models.Transaction, len(txs))
	copy(out, txs)

	sort.SliceStable(out, func(i, j int) bool {
		c := compare(out[i], out[j], key)
		if dir == Descending {
			return c > 0
		}
		return c < 0
	})
	return out
}

func compare(a, b models.Transaction, key SortKey) int {
	switch key {
	case SortByCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	case SortByOwner:
		return strings.Compare(a.Owner, b.Owner)
	case SortByDescription:
		return strings.Compare(a.Description, b.Description)
	case SortByAmount:
		return a.Amount.Cmp(b.Amount)
	case SortByStatus:
		return strings.Compare(string(a.Status), string(b.Status))
	}
	return 0
}

// SortState tracks the column header toggling of a table view: selecting the
// active key flips direction, selecting a new key resets to ascending.
type SortState struct {
	Key       SortKey
	Direction Direction
}

func (s *SortState) Toggle(key SortKey) {
	if s.Key == key && s.Direction == Ascending {
		s.Direction = Descending
		return
	}
	s.Key = key
	s.Direction = Ascending
}

// Apply sorts txs by the current state; with no key selected the input order
// is preserved.
func (s SortState) Apply(txs []models.Transaction) []models.Transaction {
	if s.Key == "" {
		out := make([]models.Transaction, len(txs))
		copy(out, txs)
		return out
	}
	return Sort(txs, s.Key, s.Direction)
}
