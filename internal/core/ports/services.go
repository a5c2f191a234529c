package ports

import (
	"context"
	"time"

	"e-wallet-core/internal/core/domain"

	"github.com/google/uuid"
)

// NoteCodec seals and opens free-text transaction memos with authenticated
// encryption. Encrypting an empty string yields an empty token; decrypting
// a malformed or tampered token fails.
type NoteCodec interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(token string) (string, error)
}

// HashService handles secret hashing (Argon2id) for passwords and PINs.
type HashService interface {
	Hash(secret string) (string, error)
	Verify(secret string, hash string) (bool, error)
}

// CodeService issues per-challenge secrets and verifies time-windowed codes
// derived from them. Codes are stateless; single-use semantics come from the
// caller clearing the stored challenge after a successful verification.
type CodeService interface {
	// IssueChallenge generates a fresh random secret stamped with now.
	IssueChallenge(now time.Time) (domain.TransferChallenge, error)
	// CurrentCode derives the code for the time window containing now.
	CurrentCode(secret string, now time.Time) (string, error)
	// Verify returns nil only if the challenge is unexpired and the code
	// matches the current or an immediately adjacent time window.
	Verify(challenge domain.TransferChallenge, code string, now time.Time) error
	// TTL returns the configured challenge time-to-live.
	TTL() time.Duration
}

// TokenService handles JWT session token operations.
type TokenService interface {
	Generate(userID uuid.UUID, email string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	UserID uuid.UUID
	Email  string
}

// TransactionEvent describes a completed money movement for out-of-band
// delivery to a user.
type TransactionEvent struct {
	UserID     uuid.UUID `json:"user_id"`
	Kind       string    `json:"kind"` // deposit, withdraw, transfer_in, transfer_out
	Amount     int64     `json:"amount"`
	Note       string    `json:"note,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Notifier delivers transaction events on a side channel after commit.
// Delivery is fire-and-forget: failures are logged and never affect or roll
// back the committed operation.
type Notifier interface {
	Notify(event TransactionEvent)
}

// --- Service Ports (Business Logic) ---

// AuthService defines registration, login, and PIN management.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, time.Time, error)
	// SetTransactionPIN re-verifies the login password before storing a new
	// PIN hash.
	SetTransactionPIN(ctx context.Context, userID uuid.UUID, password, pin string) error
}

// RegisterRequest holds input for user registration.
type RegisterRequest struct {
	Email    string
	Password string
	FullName string
}

// WalletService covers single-party operations and read accessors.
// Deposits and withdrawals bypass the PIN+OTP challenge gate; only peer
// transfers route through TransferService.
type WalletService interface {
	Deposit(ctx context.Context, userID uuid.UUID, amount int64, note string) (*domain.Transaction, error)
	Withdraw(ctx context.Context, userID uuid.UUID, amount int64, note string) (*domain.Transaction, error)
	Balance(ctx context.Context, userID uuid.UUID) (int64, string, error)
	History(ctx context.Context, params TransactionListParams) ([]HistoryEntry, int64, error)
}

// HistoryEntry is a ledger entry with the memo opened for the reader.
type HistoryEntry struct {
	ID         uuid.UUID              `json:"id"`
	SenderID   *uuid.UUID             `json:"sender_id,omitempty"`
	ReceiverID *uuid.UUID             `json:"receiver_id,omitempty"`
	Amount     int64                  `json:"amount"`
	Kind       domain.TransactionKind `json:"kind"`
	Note       string                 `json:"note"`
	CreatedAt  time.Time              `json:"created_at"`
}

// TransferService is the transfer-authorization state machine:
// Idle -> PinVerified -> ChallengeIssued -> Authorized -> Committed.
// Every rejection leaves balances and challenge state untouched.
type TransferService interface {
	RequestChallenge(ctx context.Context, userID uuid.UUID, pin string) (*ChallengeIssued, error)
	Commit(ctx context.Context, req TransferRequest) (*domain.Transaction, error)
}

// ChallengeIssued reports a freshly issued transfer challenge. The code
// itself travels on the out-of-band delivery channel, never in the API
// response.
type ChallengeIssued struct {
	ExpiresAt time.Time `json:"expires_at"`
}

// TransferRequest holds validated input for a transfer commit.
type TransferRequest struct {
	SenderID   uuid.UUID
	PIN        string
	Code       string
	ReceiverID uuid.UUID
	Amount     int64
	Note       string
}
