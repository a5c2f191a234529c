package domain

import "time"

// ChallengePurpose scopes an OTP challenge to a single flow, so issuing a
// login challenge cannot invalidate a pending transfer challenge and vice
// versa.
type ChallengePurpose string

const (
	ChallengePurposeTransfer ChallengePurpose = "transfer"
	ChallengePurposeLogin    ChallengePurpose = "login"
)

// TransferChallenge is the ephemeral secret issued for one authorization
// attempt. At most one active challenge exists per user and purpose;
// issuing a new one replaces any prior unconsumed challenge. It is cleared
// exactly once upon successful verification and is never reusable.
type TransferChallenge struct {
	Secret   string    `json:"secret"` // Base32 TOTP secret
	IssuedAt time.Time `json:"issued_at"`
}

// Expired reports whether the challenge is older than ttl at instant now.
func (c *TransferChallenge) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(c.IssuedAt) > ttl
}
