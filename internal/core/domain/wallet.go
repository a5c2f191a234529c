package domain

import (
	"time"

	"github.com/google/uuid"
)

// Wallet holds a user's balance in minor currency units.
// Balance is never negative; exactly one wallet exists per user, created
// when the user is onboarded and never deleted.
type Wallet struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Balance   int64     `json:"balance"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CanDebit returns true if the wallet holds at least amount.
func (w *Wallet) CanDebit(amount int64) bool {
	return amount > 0 && w.Balance >= amount
}
