package service

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"e-wallet-core/internal/core/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	body      []byte
	signature string
}

// fakeHTTPClient replays the scripted status codes and pushes every request
// it sees onto a channel so the test can wait for async delivery.
type fakeHTTPClient struct {
	statuses []int
	requests chan capturedRequest
}

func newFakeHTTPClient(statuses ...int) *fakeHTTPClient {
	return &fakeHTTPClient{
		statuses: statuses,
		requests: make(chan capturedRequest, len(statuses)),
	}
}

func (c *fakeHTTPClient) Do(req *http.Request) (*http.Response, error) {
	body, _ := io.ReadAll(req.Body)
	c.requests <- capturedRequest{body: body, signature: req.Header.Get("X-Signature")}

	status := http.StatusOK
	if len(c.statuses) > 0 {
		status = c.statuses[0]
		c.statuses = c.statuses[1:]
	}
	return &http.Response{StatusCode: status, Body: io.NopCloser(bytes.NewReader(nil))}, nil
}

func (c *fakeHTTPClient) wait(t *testing.T) capturedRequest {
	t.Helper()
	select {
	case r := <-c.requests:
		return r
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for notification delivery")
		return capturedRequest{}
	}
}

func TestWebhookNotifier_Delivers(t *testing.T) {
	client := newFakeHTTPClient(http.StatusOK)
	notifier := NewWebhookNotifier("http://sink.local/events", "hook-secret", client, zerolog.Nop())

	event := ports.TransactionEvent{
		UserID:     uuid.New(),
		Kind:       "deposit",
		Amount:     1000,
		OccurredAt: time.Now().UTC(),
	}
	notifier.Notify(event)

	got := client.wait(t)

	var decoded ports.TransactionEvent
	require.NoError(t, json.Unmarshal(got.body, &decoded))
	assert.Equal(t, event.UserID, decoded.UserID)
	assert.Equal(t, "deposit", decoded.Kind)
	assert.Equal(t, int64(1000), decoded.Amount)

	mac := hmac.New(sha256.New, []byte("hook-secret"))
	mac.Write(got.body)
	assert.Equal(t, hex.EncodeToString(mac.Sum(nil)), got.signature)
}

func TestWebhookNotifier_RetriesOnFailure(t *testing.T) {
	client := newFakeHTTPClient(http.StatusInternalServerError, http.StatusOK)
	notifier := NewWebhookNotifier("http://sink.local/events", "hook-secret", client, zerolog.Nop())

	notifier.Notify(ports.TransactionEvent{UserID: uuid.New(), Kind: "withdraw", Amount: 50})

	first := client.wait(t)
	second := client.wait(t)
	assert.Equal(t, first.body, second.body, "retries must resend the same payload")
}

func TestWebhookNotifier_DisabledWithoutSink(t *testing.T) {
	client := newFakeHTTPClient()
	notifier := NewWebhookNotifier("", "hook-secret", client, zerolog.Nop())

	notifier.Notify(ports.TransactionEvent{UserID: uuid.New(), Kind: "deposit", Amount: 10})

	select {
	case <-client.requests:
		t.Fatal("no delivery expected when sink URL is empty")
	case <-time.After(100 * time.Millisecond):
	}
}
