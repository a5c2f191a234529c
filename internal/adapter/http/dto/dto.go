package dto

// RegisterRequest is the request body for user registration.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=128"`
	FullName string `json:"full_name" binding:"required,min=1,max=100"`
}

// LoginRequest is the request body for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SetPINRequest is the request body for setting the transaction PIN.
// The login password is re-verified before the PIN is stored.
type SetPINRequest struct {
	Password string `json:"password" binding:"required"`
	PIN      string `json:"pin" binding:"required,pin_code"`
}

// DepositRequest is the request body for a wallet deposit.
type DepositRequest struct {
	Amount int64  `json:"amount" binding:"required,gt=0"`
	Note   string `json:"note" binding:"max=255"`
}

// WithdrawRequest is the request body for a wallet withdrawal.
type WithdrawRequest struct {
	Amount int64  `json:"amount" binding:"required,gt=0"`
	Note   string `json:"note" binding:"max=255"`
}

// RequestOTPRequest is the request body for the first transfer phase.
type RequestOTPRequest struct {
	PIN string `json:"pin" binding:"required,pin_code"`
}

// TransferRequest is the request body for the transfer commit phase.
type TransferRequest struct {
	ReceiverID string `json:"receiver_id" binding:"required,uuid"`
	Amount     int64  `json:"amount" binding:"required,gt=0"`
	PIN        string `json:"pin" binding:"required,pin_code"`
	Code       string `json:"code" binding:"required,otp_code"`
	Note       string `json:"note" binding:"max=255"`
}

// RegisterResponse is the response body for successful registration.
type RegisterResponse struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// LoginResponse is the response body for successful login.
type LoginResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// BalanceResponse is the response for a balance query.
type BalanceResponse struct {
	Balance  int64  `json:"balance"`
	Currency string `json:"currency"`
}

// ChallengeResponse is the response for a transfer OTP request. The code
// itself is delivered out-of-band and never appears here.
type ChallengeResponse struct {
	ExpiresAt int64 `json:"expires_at"` // Unix timestamp
}

// TransactionResponse is the response body for a committed money movement.
type TransactionResponse struct {
	ID         string  `json:"id"`
	SenderID   *string `json:"sender_id,omitempty"`
	ReceiverID *string `json:"receiver_id,omitempty"`
	Amount     int64   `json:"amount"`
	Kind       string  `json:"kind"`
	CreatedAt  string  `json:"created_at"`
}

// HistoryEntryResponse is one ledger entry in a history listing, with the
// memo opened for the reader.
type HistoryEntryResponse struct {
	ID         string  `json:"id"`
	SenderID   *string `json:"sender_id,omitempty"`
	ReceiverID *string `json:"receiver_id,omitempty"`
	Amount     int64   `json:"amount"`
	Kind       string  `json:"kind"`
	Note       string  `json:"note"`
	CreatedAt  string  `json:"created_at"`
}

// TransactionListResponse wraps a paginated history listing.
type TransactionListResponse struct {
	Transactions []HistoryEntryResponse `json:"transactions"`
	Total        int64                  `json:"total"`
	Page         int                    `json:"page"`
	PageSize     int                    `json:"page_size"`
}
