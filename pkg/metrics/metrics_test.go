package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_ObserveAndExpose(t *testing.T) {
	c := NewCollector()

	c.ObserveCommit("TRANSFER", 300, 12*time.Millisecond)
	c.ObserveCommit("TRANSFER", 200, 8*time.Millisecond)
	c.ObserveCommit("DEPOSIT", 1000, 5*time.Millisecond)
	c.ObserveRejection("TRANSFER", "WAL_001")

	srv := httptest.NewServer(c.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := string(body)
	assert.Contains(t, out, `ledger_transactions_committed_total{kind="TRANSFER"} 2`)
	assert.Contains(t, out, `ledger_transactions_committed_total{kind="DEPOSIT"} 1`)
	assert.Contains(t, out, `ledger_amount_moved_total{kind="TRANSFER"} 500`)
	assert.Contains(t, out, `ledger_transactions_rejected_total{code="WAL_001",kind="TRANSFER"} 1`)
}
