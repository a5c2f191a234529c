package service

import (
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

// decryptFailurePlaceholder is returned in place of a memo whose stored
// ciphertext can no longer be opened, for example after a key rotation.
// The read must not fail the whole history request.
const decryptFailurePlaceholder = "Error decrypting note"

// WalletServiceImpl implements ports.WalletService. Deposits and
// withdrawals run inside a single database transaction that locks the
// wallet row, updates the balance, and appends the ledger entry.
type WalletServiceImpl struct {
	transactor ports.DBTransactor
	wallets    ports.WalletRepository
	ledger     ports.TransactionRepository
	notes      ports.NoteCodec
	notifier   ports.Notifier
	collector  *metrics.Collector
	maxDeposit int64
	log        zerolog.Logger
}

// NewWalletService creates the wallet service.
func NewWalletService(
	transactor ports.DBTransactor,
	wallets ports.WalletRepository,
	ledger ports.TransactionRepository,
	notes ports.NoteCodec,
	notifier ports.Notifier,
	collector *metrics.Collector,
	maxDeposit int64,
	log zerolog.Logger,
) *WalletServiceImpl {
	return &WalletServiceImpl{
		transactor: transactor,
		wallets:    wallets,
		ledger:     ledger,
		notes:      notes,
		notifier:   notifier,
		collector:  collector,
		maxDeposit: maxDeposit,
		log:        log.With().Str("service", "wallet").Logger(),
	}
}

// Deposit credits the user's wallet. No PIN or one-time code is required.
func (s *WalletServiceImpl) Deposit(ctx context.Context, userID uuid.UUID, amount int64, note string) (*domain.Transaction, error) {
	start := time.Now()

	if amount <= 0 {
		return nil, s.reject("DEPOSIT", apperror.ErrInvalidAmount())
	}
	if s.maxDeposit > 0 && amount > s.maxDeposit {
		return nil, s.reject("DEPOSIT", apperror.ErrDepositLimitExceeded(s.maxDeposit))
	}

	entry, err := s.applyMovement(ctx, nil, &userID, amount, note)
	if err != nil {
		return nil, s.reject("DEPOSIT", err)
	}

	s.collector.ObserveCommit("DEPOSIT", amount, time.Since(start))
	s.notifier.Notify(ports.TransactionEvent{
		UserID:     userID,
		Kind:       "deposit",
		Amount:     amount,
		Note:       note,
		OccurredAt: entry.CreatedAt,
	})

	s.log.Info().
		Str("user_id", userID.String()).
		Str("transaction_id", entry.ID.String()).
		Int64("amount", amount).
		Msg("deposit committed")

	return entry, nil
}

// Withdraw debits the user's wallet. No PIN or one-time code is required.
func (s *WalletServiceImpl) Withdraw(ctx context.Context, userID uuid.UUID, amount int64, note string) (*domain.Transaction, error) {
	start := time.Now()

	if amount <= 0 {
		return nil, s.reject("WITHDRAWAL", apperror.ErrInvalidAmount())
	}

	entry, err := s.applyMovement(ctx, &userID, nil, amount, note)
	if err != nil {
		return nil, s.reject("WITHDRAWAL", err)
	}

	s.collector.ObserveCommit("WITHDRAWAL", amount, time.Since(start))
	s.notifier.Notify(ports.TransactionEvent{
		UserID:     userID,
		Kind:       "withdraw",
		Amount:     amount,
		Note:       note,
		OccurredAt: entry.CreatedAt,
	})

	s.log.Info().
		Str("user_id", userID.String()).
		Str("transaction_id", entry.ID.String()).
		Int64("amount", amount).
		Msg("withdrawal committed")

	return entry, nil
}

// applyMovement locks the single affected wallet row, adjusts the balance,
// and appends the ledger entry in one transaction. Exactly one of senderID
// and receiverID must be set.
func (s *WalletServiceImpl) applyMovement(ctx context.Context, senderID, receiverID *uuid.UUID, amount int64, note string) (*domain.Transaction, error) {
	encryptedNote, err := s.sealNote(note)
	if err != nil {
		return nil, apperror.InternalError(err)
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrStorage(err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	ownerID := receiverID
	if senderID != nil {
		ownerID = senderID
	}

	wallet, err := s.wallets.GetByUserIDForUpdate(ctx, dbTx, *ownerID)
	if err != nil {
		return nil, apperror.ErrStorage(err)
	}
	if wallet == nil {
		return nil, apperror.ErrNotFound("Wallet")
	}

	newBalance := wallet.Balance + amount
	if senderID != nil {
		if !wallet.CanDebit(amount) {
			return nil, apperror.ErrInsufficientFunds()
		}
		newBalance = wallet.Balance - amount
	}

	if err := s.wallets.UpdateBalance(ctx, dbTx, wallet.ID, newBalance); err != nil {
		return nil, apperror.ErrStorage(err)
	}

	entry := &domain.Transaction{
		ID:            uuid.New(),
		SenderID:      senderID,
		ReceiverID:    receiverID,
		Amount:        amount,
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

// Balance returns the current balance and currency for the user's wallet.
func (s *WalletServiceImpl) Balance(ctx context.Context, userID uuid.UUID) (int64, string, error) {
	wallet, err := s.wallets.GetByUserID(ctx, userID)
	if err != nil {
		return 0, "", apperror.ErrStorage(err)
	}
	if wallet == nil {
		return 0, "", apperror.ErrNotFound("Wallet")
	}
	return wallet.Balance, wallet.Currency, nil
}

// History lists the user's ledger entries, newest first, with memos opened
// for the reader. Entries whose memo cannot be decrypted are returned with
// a placeholder note instead of failing the request.
func (s *WalletServiceImpl) History(ctx context.Context, params ports.TransactionListParams) ([]ports.HistoryEntry, int64, error) {
	entries, total, err := s.ledger.ListByParticipant(ctx, params)
	if err != nil {
		return nil, 0, apperror.ErrStorage(err)
	}

	out := make([]ports.HistoryEntry, 0, len(entries))
	for _, entry := range entries {
		note := ""
		if entry.EncryptedNote != nil && *entry.EncryptedNote != "" {
			note, err = s.notes.Decrypt(*entry.EncryptedNote)
			if err != nil {
				s.log.Warn().
					Err(err).
					Str("transaction_id", entry.ID.String()).
					Msg("failed to decrypt transaction note")
				note = decryptFailurePlaceholder
			}
		}

		out = append(out, ports.HistoryEntry{
			ID:         entry.ID,
			SenderID:   entry.SenderID,
			ReceiverID: entry.ReceiverID,
			Amount:     entry.Amount,
			Kind:       entry.Kind(),
			Note:       note,
			CreatedAt:  entry.CreatedAt,
		})
	}

	return out, total, nil
}

// sealNote encrypts a memo, mapping the empty note to a nil pointer.
func (s *WalletServiceImpl) sealNote(note string) (*string, error) {
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
func (s *WalletServiceImpl) reject(kind string, err error) error {
	code := "SYS_001"
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		code = appErr.Code
	}
	s.collector.ObserveRejection(kind, code)
	return err
}
