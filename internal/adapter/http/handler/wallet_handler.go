package handler

import (
	"strconv"
	"time"

	"e-wallet-core/internal/adapter/http/dto"
	"e-wallet-core/internal/core/domain"
	"e-wallet-core/internal/core/ports"
	"e-wallet-core/pkg/apperror"
	"e-wallet-core/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WalletHandler handles wallet and ledger endpoints.
type WalletHandler struct {
	walletSvc ports.WalletService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletSvc ports.WalletService) *WalletHandler {
	return &WalletHandler{walletSvc: walletSvc}
}

// GetBalance handles GET /api/v1/wallets/balance.
func (h *WalletHandler) GetBalance(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	balance, currency, err := h.walletSvc.Balance(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.BalanceResponse{
		Balance:  balance,
		Currency: currency,
	})
}

// Deposit handles POST /api/v1/wallets/deposit.
func (h *WalletHandler) Deposit(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	entry, err := h.walletSvc.Deposit(c.Request.Context(), userID, req.Amount, req.Note)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toTransactionResponse(entry))
}

// Withdraw handles POST /api/v1/wallets/withdraw.
func (h *WalletHandler) Withdraw(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	entry, err := h.walletSvc.Withdraw(c.Request.Context(), userID, req.Amount, req.Note)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toTransactionResponse(entry))
}

// ListTransactions handles GET /api/v1/transactions.
// Query params: from, to (Unix timestamps), page, page_size.
func (h *WalletHandler) ListTransactions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	params := ports.TransactionListParams{
		UserID:   userID,
		Page:     1,
		PageSize: 20,
	}

	if v := c.Query("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			response.Error(c, apperror.Validation("invalid page"))
			return
		}
		params.Page = page
	}
	if v := c.Query("page_size"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size < 1 || size > 100 {
			response.Error(c, apperror.Validation("invalid page_size"))
			return
		}
		params.PageSize = size
	}
	if v := c.Query("from"); v != "" {
		from, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.Error(c, apperror.Validation("invalid from timestamp"))
			return
		}
		params.From = &from
	}
	if v := c.Query("to"); v != "" {
		to, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.Error(c, apperror.Validation("invalid to timestamp"))
			return
		}
		params.To = &to
	}

	entries, total, err := h.walletSvc.History(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]dto.HistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.HistoryEntryResponse{
			ID:         e.ID.String(),
			SenderID:   uuidToString(e.SenderID),
			ReceiverID: uuidToString(e.ReceiverID),
			Amount:     e.Amount,
			Kind:       string(e.Kind),
			Note:       e.Note,
			CreatedAt:  e.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	response.OK(c, dto.TransactionListResponse{
		Transactions: out,
		Total:        total,
		Page:         params.Page,
		PageSize:     params.PageSize,
	})
}

func toTransactionResponse(t *domain.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:         t.ID.String(),
		SenderID:   uuidToString(t.SenderID),
		ReceiverID: uuidToString(t.ReceiverID),
		Amount:     t.Amount,
		Kind:       string(t.Kind()),
		CreatedAt:  t.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func uuidToString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
