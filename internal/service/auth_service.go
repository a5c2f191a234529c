package service

import (
	"context"
	"time"

	"e-wallet-core/internal/core/domain"
	"e-wallet-core/internal/core/ports"
	"e-wallet-core/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AuthServiceImpl implements ports.AuthService.
type AuthServiceImpl struct {
	users    ports.UserRepository
	wallets  ports.WalletRepository
	hash     ports.HashService
	tokens   ports.TokenService
	currency string
	log      zerolog.Logger
}

// NewAuthService creates the authentication service. Every registered user
// gets a zero-balance wallet in the configured currency.
func NewAuthService(
	users ports.UserRepository,
	wallets ports.WalletRepository,
	hash ports.HashService,
	tokens ports.TokenService,
	currency string,
	log zerolog.Logger,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		users:    users,
		wallets:  wallets,
		hash:     hash,
		tokens:   tokens,
		currency: currency,
		log:      log.With().Str("service", "auth").Logger(),
	}
}

// Register creates a new user account and its wallet.
func (s *AuthServiceImpl) Register(ctx context.Context, req ports.RegisterRequest) (*domain.User, error) {
	existing, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperror.ErrStorage(err)
	}
	if existing != nil {
		return nil, apperror.ErrEmailExists()
	}

	passwordHash, err := s.hash.Hash(req.Password)
	if err != nil {
		return nil, apperror.InternalError(err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New(),
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: passwordHash,
		IsVerified:   true,
		Status:       domain.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperror.ErrStorage(err)
	}

	wallet := &domain.Wallet{
		ID:        uuid.New(),
		UserID:    user.ID,
		Balance:   0,
		Currency:  s.currency,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.wallets.Create(ctx, wallet); err != nil {
		return nil, apperror.ErrStorage(err)
	}

	s.log.Info().
		Str("user_id", user.ID.String()).
		Str("wallet_id", wallet.ID.String()).
		Msg("user registered")

	return user, nil
}

// Login verifies credentials and issues a session token.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", time.Time{}, apperror.ErrStorage(err)
	}
	if user == nil {
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	ok, err := s.hash.Verify(password, user.PasswordHash)
	if err != nil || !ok {
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	if !user.IsActive() {
		return "", time.Time{}, apperror.ErrAccountSuspended()
	}

	token, expiresAt, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(err)
	}

	s.log.Info().Str("user_id", user.ID.String()).Msg("user logged in")

	return token, expiresAt, nil
}

// SetTransactionPIN re-verifies the login password before storing the new
// PIN hash. An existing PIN is silently replaced.
func (s *AuthServiceImpl) SetTransactionPIN(ctx context.Context, userID uuid.UUID, password, pin string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return apperror.ErrStorage(err)
	}
	if user == nil {
		return apperror.ErrNotFound("User")
	}

	ok, err := s.hash.Verify(password, user.PasswordHash)
	if err != nil || !ok {
		return apperror.ErrInvalidCredentials()
	}

	pinHash, err := s.hash.Hash(pin)
	if err != nil {
		return apperror.InternalError(err)
	}

	if err := s.users.UpdatePINHash(ctx, userID, pinHash); err != nil {
		return apperror.ErrStorage(err)
	}

	s.log.Info().Str("user_id", userID.String()).Msg("transaction PIN updated")

	return nil
}
