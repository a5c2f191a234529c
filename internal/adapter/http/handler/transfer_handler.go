package handler

import (
	"e-wallet-core/internal/adapter/http/dto"
	"e-wallet-core/internal/core/ports"
	"e-wallet-core/pkg/apperror"
	"e-wallet-core/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TransferHandler handles the two-phase peer transfer endpoints.
type TransferHandler struct {
	transferSvc ports.TransferService
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferSvc ports.TransferService) *TransferHandler {
	return &TransferHandler{transferSvc: transferSvc}
}

// RequestOTP handles POST /api/v1/transfers/request-otp.
func (h *TransferHandler) RequestOTP(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.RequestOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	issued, err := h.transferSvc.RequestChallenge(c.Request.Context(), userID, req.PIN)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ChallengeResponse{
		ExpiresAt: issued.ExpiresAt.Unix(),
	})
}

// Commit handles POST /api/v1/transfers.
func (h *TransferHandler) Commit(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	receiverID, err := uuid.Parse(req.ReceiverID)
	if err != nil {
		response.Error(c, apperror.Validation("invalid receiver_id"))
		return
	}

	entry, err := h.transferSvc.Commit(c.Request.Context(), ports.TransferRequest{
		SenderID:   userID,
		PIN:        req.PIN,
		Code:       req.Code,
		ReceiverID: receiverID,
		Amount:     req.Amount,
		Note:       req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toTransactionResponse(entry))
}
