package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Structural validation errors for ledger entries.
var (
	ErrNonPositiveAmount = errors.New("amount must be positive")
	ErrNoParticipants    = errors.New("transaction requires a sender or a receiver")
	ErrSameParticipant   = errors.New("sender and receiver must differ")
)

// TransactionKind classifies a ledger entry by which participants are set.
type TransactionKind string

const (
	TransactionKindDeposit    TransactionKind = "DEPOSIT"
	TransactionKindWithdrawal TransactionKind = "WITHDRAWAL"
	TransactionKindTransfer   TransactionKind = "TRANSFER"
	TransactionKindUnknown    TransactionKind = "UNKNOWN"
)

// Transaction is an immutable, append-only ledger entry for a completed
// money movement. Entries are never updated or deleted once created.
//
// Sender-only entries are withdrawals, receiver-only entries are deposits,
// and entries with both participants set are peer transfers.
type Transaction struct {
	ID            uuid.UUID  `json:"id"`
	SenderID      *uuid.UUID `json:"sender_id,omitempty"`
	ReceiverID    *uuid.UUID `json:"receiver_id,omitempty"`
	Amount        int64      `json:"amount"` // Minor units, always > 0
	EncryptedNote *string    `json:"-"`      // Sealed memo, nil when no note was attached
	CreatedAt     time.Time  `json:"created_at"`
}

// Kind derives the movement type from participant presence.
func (t *Transaction) Kind() TransactionKind {
	switch {
	case t.SenderID != nil && t.ReceiverID != nil:
		return TransactionKindTransfer
	case t.ReceiverID != nil:
		return TransactionKindDeposit
	case t.SenderID != nil:
		return TransactionKindWithdrawal
	default:
		return TransactionKindUnknown
	}
}

// Validate checks the structural ledger invariants: a positive amount,
// at least one participant, and distinct participants when both are set.
func (t *Transaction) Validate() error {
	if t.Amount <= 0 {
		return ErrNonPositiveAmount
	}
	if t.SenderID == nil && t.ReceiverID == nil {
		return ErrNoParticipants
	}
	if t.SenderID != nil && t.ReceiverID != nil && *t.SenderID == *t.ReceiverID {
		return ErrSameParticipant
	}
	return nil
}
