package ports

import (
	"context"
	"time"

	"e-wallet-core/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UserRepository defines persistence operations for users.
// Get methods return (nil, nil) when no row matches.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdatePINHash(ctx context.Context, userID uuid.UUID, pinHash string) error
}

// WalletRepository defines persistence operations for wallets.
// Get methods return (nil, nil) when no row matches.
// Methods accepting pgx.Tx are used inside transaction blocks for pessimistic
// row locking; all balance mutations go through UpdateBalance within such a
// transaction so concurrent debits against one wallet serialize.
type WalletRepository interface {
	Create(ctx context.Context, wallet *domain.Wallet) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Wallet, error)
	GetByUserIDForUpdate(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (*domain.Wallet, error)
	UpdateBalance(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balance int64) error
}

// TransactionRepository defines persistence for the append-only ledger.
// There is deliberately no update or delete operation.
type TransactionRepository interface {
	Create(ctx context.Context, tx pgx.Tx, transaction *domain.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	ListByParticipant(ctx context.Context, params TransactionListParams) ([]domain.Transaction, int64, error)
}

// TransactionListParams holds filter + pagination for ledger reads.
type TransactionListParams struct {
	UserID   uuid.UUID // Matches sender or receiver
	From     *int64    // Unix timestamp
	To       *int64    // Unix timestamp
	Page     int
	PageSize int
}

// ChallengeStore holds ephemeral OTP challenges, keyed by user and purpose.
// Put replaces any existing challenge for the same user+purpose; Clear
// consumes it. A store-level TTL bounds the challenge lifetime in addition
// to the issuance-time check performed by callers.
type ChallengeStore interface {
	Put(ctx context.Context, userID uuid.UUID, purpose domain.ChallengePurpose, challenge domain.TransferChallenge, ttl time.Duration) error
	Get(ctx context.Context, userID uuid.UUID, purpose domain.ChallengePurpose) (*domain.TransferChallenge, error)
	Clear(ctx context.Context, userID uuid.UUID, purpose domain.ChallengePurpose) error
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
