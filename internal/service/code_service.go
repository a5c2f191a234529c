package service

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"time"

	"e-wallet-core/internal/core/domain"
	"e-wallet-core/pkg/apperror"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// totpSecretBytes is 160 bits, which base32-encodes to exactly 32
// characters with no padding.
const totpSecretBytes = 20

// TOTPCodeService implements ports.CodeService using RFC 6238 time-based
// one-time codes. The service itself is stateless: expiry comes from the
// challenge issuance timestamp, and single-use semantics come from the
// caller clearing the stored challenge after a successful verification.
type TOTPCodeService struct {
	step time.Duration
	ttl  time.Duration
	skew uint
}

// NewTOTPCodeService creates a code service with the given derivation step,
// challenge time-to-live, and accepted adjacent-window skew.
func NewTOTPCodeService(step, ttl time.Duration, skew uint) *TOTPCodeService {
	return &TOTPCodeService{step: step, ttl: ttl, skew: skew}
}

// IssueChallenge generates a fresh random base32 secret stamped with now.
func (s *TOTPCodeService) IssueChallenge(now time.Time) (domain.TransferChallenge, error) {
	buf := make([]byte, totpSecretBytes)
	if _, err := rand.Read(buf); err != nil {
		return domain.TransferChallenge{}, fmt.Errorf("generating challenge secret: %w", err)
	}

	return domain.TransferChallenge{
		Secret:   base32.StdEncoding.EncodeToString(buf),
		IssuedAt: now.UTC(),
	}, nil
}

// CurrentCode derives the six-digit code for the window containing now.
func (s *TOTPCodeService) CurrentCode(secret string, now time.Time) (string, error) {
	code, err := totp.GenerateCodeCustom(secret, now, s.opts())
	if err != nil {
		return "", fmt.Errorf("deriving code: %w", err)
	}
	return code, nil
}

// Verify returns nil only if the challenge is within its TTL and the code
// matches the current or an immediately adjacent time window.
func (s *TOTPCodeService) Verify(challenge domain.TransferChallenge, code string, now time.Time) error {
	if challenge.Expired(now, s.ttl) {
		return apperror.ErrOTPExpired()
	}

	valid, err := totp.ValidateCustom(code, challenge.Secret, now, s.opts())
	if err != nil || !valid {
		return apperror.ErrOTPInvalid()
	}
	return nil
}

// TTL returns the configured challenge time-to-live.
func (s *TOTPCodeService) TTL() time.Duration {
	return s.ttl
}

func (s *TOTPCodeService) opts() totp.ValidateOpts {
	return totp.ValidateOpts{
		Period:    uint(s.step / time.Second),
		Skew:      s.skew,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	}
}
