package service

import (
	"bytes"
	"context"
	"errors"
	"time"

	"e-wallet-core/internal/core/domain"
	"e-wallet-core/internal/core/ports"
	"e-wallet-core/pkg/apperror"
	"e-wallet-core/pkg/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// TransferServiceImpl implements ports.TransferService, the two-phase peer
// transfer flow: RequestChallenge verifies the PIN and issues a fresh OTP
// challenge; Commit re-verifies PIN and code, then moves money atomically.
//
// Every rejection on either phase leaves balances untouched, and a failed
// Commit never consumes the stored challenge, so the caller may retry with
// a corrected code until the challenge expires.
type TransferServiceImpl struct {
	transactor ports.DBTransactor
	users      ports.UserRepository
	wallets    ports.WalletRepository
	ledger     ports.TransactionRepository
	challenges ports.ChallengeStore
	codes      ports.CodeService
	hash       ports.HashService
	notes      ports.NoteCodec
	notifier   ports.Notifier
	collector  *metrics.Collector
	log        zerolog.Logger
}

// NewTransferService creates the transfer service.
func NewTransferService(
	transactor ports.DBTransactor,
	users ports.UserRepository,
	wallets ports.WalletRepository,
	ledger ports.TransactionRepository,
	challenges ports.ChallengeStore,
	codes ports.CodeService,
	hash ports.HashService,
	notes ports.NoteCodec,
	notifier ports.Notifier,
	collector *metrics.Collector,
	log zerolog.Logger,
) *TransferServiceImpl {
	return &TransferServiceImpl{
		transactor: transactor,
		users:      users,
		wallets:    wallets,
		ledger:     ledger,
		challenges: challenges,
		codes:      codes,
		hash:       hash,
		notes:      notes,
		notifier:   notifier,
		collector:  collector,
		log:        log.With().Str("service", "transfer").Logger(),
	}
}

// RequestChallenge verifies the sender's PIN and issues a fresh transfer
// challenge, replacing any prior unconsumed one for this user.
func (s *TransferServiceImpl) RequestChallenge(ctx context.Context, userID uuid.UUID, pin string) (*ports.ChallengeIssued, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.ErrStorage(err)
	}
	if user == nil {
		return nil, apperror.ErrNotFound("User")
	}

	if err := s.verifyPIN(user, pin); err != nil {
		return nil, s.reject(err)
	}

	challenge, err := s.codes.IssueChallenge(time.Now())
	if err != nil {
		return nil, apperror.InternalError(err)
	}

	// The stored challenge must outlive its verification TTL: a stale but
	// still-present challenge reports "expired", while a missing one reports
	// "invalid". Evicting the key at exactly the verification TTL would
	// collapse the two.
	ttl := s.codes.TTL()
	if err := s.challenges.Put(ctx, userID, domain.ChallengePurposeTransfer, challenge, 2*ttl); err != nil {
		return nil, apperror.ErrStorage(err)
	}

	// The code travels out-of-band, never in the API response. Until a
	// real delivery channel (SMS, email) is wired, surface it in the debug
	// log for manual testing.
	if code, err := s.codes.CurrentCode(challenge.Secret, time.Now()); err == nil {
		s.log.Debug().
			Str("user_id", userID.String()).
			Str("code", code).
			Msg("transfer challenge issued")
	}

	return &ports.ChallengeIssued{ExpiresAt: challenge.IssuedAt.Add(ttl)}, nil
}

// Commit authorizes and executes the transfer. The authorization checks run
// in a fixed order (amount, PIN, code, receiver) before any money moves;
// the debit and credit then commit in one database transaction, and the
// challenge is consumed only after that transaction succeeds.
func (s *TransferServiceImpl) Commit(ctx context.Context, req ports.TransferRequest) (*domain.Transaction, error) {
	start := time.Now()

	if req.Amount <= 0 {
		return nil, s.reject(apperror.ErrInvalidAmount())
	}

	sender, err := s.users.GetByID(ctx, req.SenderID)
	if err != nil {
		return nil, apperror.ErrStorage(err)
	}
	if sender == nil {
		return nil, apperror.ErrNotFound("User")
	}

	if err := s.verifyPIN(sender, req.PIN); err != nil {
		return nil, s.reject(err)
	}

	challenge, err := s.challenges.Get(ctx, req.SenderID, domain.ChallengePurposeTransfer)
	if err != nil {
		return nil, apperror.ErrStorage(err)
	}
	if challenge == nil {
		return nil, s.reject(apperror.ErrOTPInvalid())
	}
	if err := s.codes.Verify(*challenge, req.Code, time.Now()); err != nil {
		return nil, s.reject(err)
	}

	if req.ReceiverID == req.SenderID {
		return nil, s.reject(apperror.ErrSelfTransfer())
	}

	receiver, err := s.users.GetByID(ctx, req.ReceiverID)
	if err != nil {
		return nil, apperror.ErrStorage(err)
	}
	if receiver == nil {
		return nil, s.reject(apperror.ErrReceiverNotFound())
	}
	if !receiver.CanReceiveTransfers() {
		return nil, s.reject(apperror.ErrReceiverUnverified())
	}

	entry, err := s.moveFunds(ctx, req)
	if err != nil {
		return nil, s.reject(err)
	}

	// The challenge is single-use: consume it only after the committed
	// transfer. A failed Clear leaves a challenge that expires on its own,
	// which is preferable to losing a committed transfer's response.
	if err := s.challenges.Clear(ctx, req.SenderID, domain.ChallengePurposeTransfer); err != nil {
		s.log.Error().
			Err(err).
			Str("user_id", req.SenderID.String()).
			Msg("failed to clear consumed transfer challenge")
	}

	s.collector.ObserveCommit("TRANSFER", req.Amount, time.Since(start))
	occurredAt := entry.CreatedAt
	s.notifier.Notify(ports.TransactionEvent{
		UserID:     req.SenderID,
		Kind:       "transfer_out",
		Amount:     req.Amount,
		Note:       req.Note,
		OccurredAt: occurredAt,
	})
	s.notifier.Notify(ports.TransactionEvent{
		UserID:     req.ReceiverID,
		Kind:       "transfer_in",
		Amount:     req.Amount,
		Note:       req.Note,
		OccurredAt: occurredAt,
	})

	s.log.Info().
		Str("sender_id", req.SenderID.String()).
		Str("receiver_id", req.ReceiverID.String()).
		Str("transaction_id", entry.ID.String()).
		Int64("amount", req.Amount).
		Msg("transfer committed")

	return entry, nil
}

// moveFunds locks both wallet rows in a deterministic order, checks the
// sender's funds, applies the debit and credit, and appends the ledger
// entry, all inside one database transaction.
func (s *TransferServiceImpl) moveFunds(ctx context.Context, req ports.TransferRequest) (*domain.Transaction, error) {
	encryptedNote, err := s.sealNote(req.Note)
	if err != nil {
		return nil, apperror.InternalError(err)
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrStorage(err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	// Lock both rows in UUID order so two opposing transfers cannot
	// deadlock against each other.
	first, second := req.SenderID, req.ReceiverID
	if bytes.Compare(second[:], first[:]) < 0 {
		first, second = second, first
	}

	firstWallet, err := s.wallets.GetByUserIDForUpdate(ctx, dbTx, first)
	if err != nil {
		return nil, apperror.ErrStorage(err)
	}
	secondWallet, err := s.wallets.GetByUserIDForUpdate(ctx, dbTx, second)
	if err != nil {
		return nil, apperror.ErrStorage(err)
	}
	if firstWallet == nil || secondWallet == nil {
		return nil, apperror.ErrNotFound("Wallet")
	}

	senderWallet, receiverWallet := firstWallet, secondWallet
	if first != req.SenderID {
		senderWallet, receiverWallet = secondWallet, firstWallet
	}

	if !senderWallet.CanDebit(req.Amount) {
		return nil, apperror.ErrInsufficientFunds()
	}

	if err := s.wallets.UpdateBalance(ctx, dbTx, senderWallet.ID, senderWallet.Balance-req.Amount); err != nil {
		return nil, apperror.ErrStorage(err)
	}
	if err := s.wallets.UpdateBalance(ctx, dbTx, receiverWallet.ID, receiverWallet.Balance+req.Amount); err != nil {
		return nil, apperror.ErrStorage(err)
	}

	senderID, receiverID := req.SenderID, req.ReceiverID
	entry := &domain.Transaction{
		ID:            uuid.New(),
		SenderID:      &senderID,
		ReceiverID:    &receiverID,
		Amount:        req.Amount,
		EncryptedNote: encryptedNote,
		CreatedAt:     time.Now(),
	}
	if err := entry.Validate(); err != nil {
		return nil, apperror.InternalError(err)
	}

	if err := s.ledger.Create(ctx, dbTx, entry); err != nil {
		return nil, apperror.ErrStorage(err)
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.ErrStorage(err)
	}

	return entry, nil
}

// verifyPIN checks that the user has a PIN set and that pin matches it.
// Failed attempts are logged but never lock the account.
func (s *TransferServiceImpl) verifyPIN(user *domain.User, pin string) error {
	if !user.HasPIN() {
		return apperror.ErrPINNotSet()
	}

	ok, err := s.hash.Verify(pin, *user.PINHash)
	if err != nil {
		return apperror.InternalError(err)
	}
	if !ok {
		s.log.Warn().Str("user_id", user.ID.String()).Msg("transaction PIN mismatch")
		return apperror.ErrPINMismatch()
	}
	return nil
}

func (s *TransferServiceImpl) sealNote(note string) (*string, error) {
	if note == "" {
		return nil, nil
	}
	sealed, err := s.notes.Encrypt(note)
	if err != nil {
		return nil, err
	}
	return &sealed, nil
}

// reject records the rejection metric and passes the error through.
func (s *TransferServiceImpl) reject(err error) error {
	code := "SYS_001"
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		code = appErr.Code
	}
	s.collector.ObserveRejection("TRANSFER", code)
	return err
}
