package postgres

import (
	"context"
	"testing"
	"time"

	"e-wallet-core/internal/core/domain"
	"e-wallet-core/internal/core/ports"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func txnColumns() []string {
	return []string{"id", "sender_id", "receiver_id", "amount", "encrypted_note", "created_at"}
}

func TestTransactionRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	senderID := uuid.New()
	receiverID := uuid.New()
	note := "sealed-token"
	entry := &domain.Transaction{
		ID:            uuid.New(),
		SenderID:      &senderID,
		ReceiverID:    &receiverID,
		Amount:        300,
		EncryptedNote: &note,
		CreatedAt:     time.Now().UTC().Truncate(time.Microsecond),
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO transactions").
		WithArgs(entry.ID, entry.SenderID, entry.ReceiverID, entry.Amount,
			entry.EncryptedNote, entry.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Create(context.Background(), tx, entry)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	receiverID := uuid.New()
	entry := &domain.Transaction{
		ID:         uuid.New(),
		ReceiverID: &receiverID,
		Amount:     1000,
		CreatedAt:  time.Now().UTC().Truncate(time.Microsecond),
	}

	mock.ExpectQuery("SELECT .+ FROM transactions WHERE id").
		WithArgs(entry.ID).
		WillReturnRows(pgxmock.NewRows(txnColumns()).AddRow(
			entry.ID, entry.SenderID, entry.ReceiverID, entry.Amount,
			entry.EncryptedNote, entry.CreatedAt,
		))

	result, err := repo.GetByID(context.Background(), entry.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, domain.TransactionKindDeposit, result.Kind())
	assert.Equal(t, int64(1000), result.Amount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	id := uuid.New()

	mock.ExpectQuery("SELECT .+ FROM transactions WHERE id").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(txnColumns()))

	result, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_ListByParticipant(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	userID := uuid.New()
	otherID := uuid.New()
	now := time.Now().UTC().Truncate(time.Microsecond)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM transactions").
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(2)))

	mock.ExpectQuery("SELECT .+ FROM transactions .+ ORDER BY created_at DESC").
		WithArgs(userID, 20, 0).
		WillReturnRows(pgxmock.NewRows(txnColumns()).
			AddRow(uuid.New(), &userID, &otherID, int64(300), (*string)(nil), now).
			AddRow(uuid.New(), (*uuid.UUID)(nil), &userID, int64(1000), (*string)(nil), now.Add(-time.Hour)))

	txns, total, err := repo.ListByParticipant(context.Background(), ports.TransactionListParams{
		UserID:   userID,
		Page:     1,
		PageSize: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, txns, 2)
	assert.Equal(t, domain.TransactionKindTransfer, txns[0].Kind())
	assert.Equal(t, domain.TransactionKindDeposit, txns[1].Kind())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_ListByParticipant_TimeRange(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	userID := uuid.New()
	from := int64(1700000000)
	to := int64(1700100000)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM transactions").
		WithArgs(userID, from, to).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(0)))

	mock.ExpectQuery("SELECT .+ FROM transactions .+ ORDER BY created_at DESC").
		WithArgs(userID, from, to, 10, 10).
		WillReturnRows(pgxmock.NewRows(txnColumns()))

	txns, total, err := repo.ListByParticipant(context.Background(), ports.TransactionListParams{
		UserID:   userID,
		From:     &from,
		To:       &to,
		Page:     2,
		PageSize: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, txns)
	assert.NoError(t, mock.ExpectationsWereMet())
}
