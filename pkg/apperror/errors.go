package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Validation (VAL) ----

func ErrInvalidAmount() *AppError {
	return New("VAL_001", "Amount must be positive", http.StatusBadRequest)
}

func ErrDepositLimitExceeded(limit int64) *AppError {
	return New("VAL_002", fmt.Sprintf("Deposit amount exceeds the limit of %d", limit), http.StatusBadRequest)
}

// Validation returns a VAL_001-style validation error with a custom message.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}

// ---- Wallet & Ledger (WAL) ----

func ErrInsufficientFunds() *AppError {
	return New("WAL_001", "Insufficient balance in wallet", http.StatusPaymentRequired)
}

func ErrNotFound(entity string) *AppError {
	return New("WAL_002", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ---- Transaction PIN (PIN) ----

func ErrPINMismatch() *AppError {
	return New("PIN_001", "Invalid transaction PIN", http.StatusUnauthorized)
}

func ErrPINNotSet() *AppError {
	return New("PIN_002", "Transaction PIN not set", http.StatusBadRequest)
}

// ---- One-time code (OTP) ----

func ErrOTPInvalid() *AppError {
	return New("OTP_001", "Invalid one-time code", http.StatusUnauthorized)
}

func ErrOTPExpired() *AppError {
	return New("OTP_002", "One-time code has expired", http.StatusUnauthorized)
}

// ---- Transfer authorization (TRF) ----

func ErrReceiverNotFound() *AppError {
	return New("TRF_001", "Receiver not found", http.StatusNotFound)
}

func ErrSelfTransfer() *AppError {
	return New("TRF_002", "Cannot transfer to yourself", http.StatusBadRequest)
}

func ErrReceiverUnverified() *AppError {
	return New("TRF_003", "Receiver account is not verified", http.StatusBadRequest)
}

// ---- Authentication (AUTH) ----

func ErrInvalidCredentials() *AppError {
	return New("AUTH_001", "Invalid credentials", http.StatusUnauthorized)
}

func ErrEmailExists() *AppError {
	return New("AUTH_002", "Email already registered", http.StatusConflict)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_003", "Invalid or expired token", http.StatusUnauthorized)
}

func ErrAccountSuspended() *AppError {
	return New("AUTH_004", "Account is suspended", http.StatusForbidden)
}

// ---- Encryption (ENC) ----

func ErrDecryptionFailure(err error) *AppError {
	return Wrap("ENC_001", "Decryption failure", http.StatusInternalServerError, err)
}

// ---- System & Infrastructure (SYS) ----

func ErrStorage(err error) *AppError {
	return Wrap("SYS_001", "Internal storage error", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}
