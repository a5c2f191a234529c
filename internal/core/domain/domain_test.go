package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTransaction_Kind(t *testing.T) {
	sender := uuid.New()
	receiver := uuid.New()

	tests := []struct {
		name     string
		tx       Transaction
		expected TransactionKind
	}{
		{"transfer", Transaction{SenderID: &sender, ReceiverID: &receiver, Amount: 100}, TransactionKindTransfer},
		{"deposit", Transaction{ReceiverID: &receiver, Amount: 100}, TransactionKindDeposit},
		{"withdrawal", Transaction{SenderID: &sender, Amount: 100}, TransactionKindWithdrawal},
		{"unknown", Transaction{Amount: 100}, TransactionKindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.tx.Kind())
		})
	}
}

func TestTransaction_Validate(t *testing.T) {
	sender := uuid.New()
	receiver := uuid.New()

	tests := []struct {
		name    string
		tx      Transaction
		wantErr error
	}{
		{"valid transfer", Transaction{SenderID: &sender, ReceiverID: &receiver, Amount: 1}, nil},
		{"valid deposit", Transaction{ReceiverID: &receiver, Amount: 500}, nil},
		{"valid withdrawal", Transaction{SenderID: &sender, Amount: 500}, nil},
		{"zero amount", Transaction{SenderID: &sender, Amount: 0}, ErrNonPositiveAmount},
		{"negative amount", Transaction{SenderID: &sender, Amount: -10}, ErrNonPositiveAmount},
		{"no participants", Transaction{Amount: 100}, ErrNoParticipants},
		{"same participant", Transaction{SenderID: &sender, ReceiverID: &sender, Amount: 100}, ErrSameParticipant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tx.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestWallet_CanDebit(t *testing.T) {
	w := &Wallet{Balance: 800}

	assert.True(t, w.CanDebit(800))
	assert.True(t, w.CanDebit(1))
	assert.False(t, w.CanDebit(801))
	assert.False(t, w.CanDebit(0))
	assert.False(t, w.CanDebit(-5))
}

func TestUser_CanReceiveTransfers(t *testing.T) {
	tests := []struct {
		name     string
		user     User
		expected bool
	}{
		{"active verified", User{Status: UserStatusActive, IsVerified: true}, true},
		{"active unverified", User{Status: UserStatusActive, IsVerified: false}, false},
		{"suspended verified", User{Status: UserStatusSuspended, IsVerified: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.user.CanReceiveTransfers())
		})
	}
}

func TestUser_HasPIN(t *testing.T) {
	u := User{}
	assert.False(t, u.HasPIN())

	empty := ""
	u.PINHash = &empty
	assert.False(t, u.HasPIN())

	hash := "$argon2id$..."
	u.PINHash = &hash
	assert.True(t, u.HasPIN())
}

func TestTransferChallenge_Expired(t *testing.T) {
	now := time.Now().UTC()
	c := &TransferChallenge{Secret: "SECRET", IssuedAt: now}

	assert.False(t, c.Expired(now.Add(5*time.Minute), 15*time.Minute))
	assert.False(t, c.Expired(now.Add(15*time.Minute), 15*time.Minute))
	assert.True(t, c.Expired(now.Add(15*time.Minute+time.Second), 15*time.Minute))
}
