package service

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"e-wallet-core/internal/core/ports"

	"github.com/rs/zerolog"
)

// HTTPClient abstracts the HTTP client for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

const (
	notifyMaxAttempts   = 3
	notifyRetryInterval = 2 * time.Second
)

// WebhookNotifier implements ports.Notifier by POSTing signed transaction
// events to a configured sink URL. Delivery runs on its own goroutine and
// is fire-and-forget: a failed delivery is logged and never surfaces to
// the operation that produced the event. An empty sink URL disables
// delivery entirely.
type WebhookNotifier struct {
	sinkURL string
	secret  []byte
	client  HTTPClient
	log     zerolog.Logger
}

// NewWebhookNotifier creates a webhook notifier.
func NewWebhookNotifier(sinkURL, secret string, client HTTPClient, log zerolog.Logger) *WebhookNotifier {
	return &WebhookNotifier{
		sinkURL: sinkURL,
		secret:  []byte(secret),
		client:  client,
		log:     log.With().Str("service", "notifier").Logger(),
	}
}

// Notify delivers the event asynchronously.
func (n *WebhookNotifier) Notify(event ports.TransactionEvent) {
	if n.sinkURL == "" {
		return
	}
	go n.deliver(event)
}

func (n *WebhookNotifier) deliver(event ports.TransactionEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		n.log.Error().Err(err).Msg("failed to marshal transaction event")
		return
	}

	signature := n.sign(payload)

	for attempt := 1; attempt <= notifyMaxAttempts; attempt++ {
		if attempt > 1 {
			time.Sleep(notifyRetryInterval)
		}

		req, err := http.NewRequest(http.MethodPost, n.sinkURL, bytes.NewReader(payload))
		if err != nil {
			n.log.Error().Err(err).Msg("failed to build notification request")
			return
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Signature", signature)

		resp, err := n.client.Do(req)
		if err != nil {
			n.log.Warn().
				Err(err).
				Int("attempt", attempt).
				Str("user_id", event.UserID.String()).
				Msg("notification delivery failed")
			continue
		}
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			n.log.Debug().
				Str("user_id", event.UserID.String()).
				Str("kind", event.Kind).
				Msg("notification delivered")
			return
		}

		n.log.Warn().
			Int("status", resp.StatusCode).
			Int("attempt", attempt).
			Str("user_id", event.UserID.String()).
			Msg("notification rejected by sink")
	}

	n.log.Error().
		Str("user_id", event.UserID.String()).
		Str("kind", event.Kind).
		Msg("notification dropped after retries")
}

// sign computes the hex HMAC-SHA256 signature of the payload.
func (n *WebhookNotifier) sign(payload []byte) string {
	mac := hmac.New(sha256.New, n.secret)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}
