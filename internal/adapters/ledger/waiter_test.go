package ledger

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anchor-Protocol/terrariums/internal/domain"
	"github.com/Anchor-Protocol/terrariums/internal/domain/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// scriptedClient returns one scripted QueryTx response per call.
type scriptedClient struct {
	queries int
	script  func(call int) (*models.TxResult, bool, error)
}

func (c *scriptedClient) QueryTx(ctx context.Context, txHash string) (*models.TxResult, bool, error) {
	c.queries++
	return c.script(c.queries)
}

func (c *scriptedClient) SignerAddress() string { return "terra1deployer" }

func (c *scriptedClient) Sign(ctx context.Context, msgs []models.Msg, opts models.SignOptions) (models.SignedTx, error) {
	panic("not used")
}

func (c *scriptedClient) Broadcast(ctx context.Context, tx models.SignedTx) (*models.BroadcastResult, error) {
	panic("not used")
}

func (c *scriptedClient) Sequence(ctx context.Context, account string) (uint64, error) {
	panic("not used")
}

func TestWaitForInclusion(t *testing.T) {
	ctx := context.Background()

	t.Run("returns result once the transaction is found", func(t *testing.T) {
		client := &scriptedClient{script: func(call int) (*models.TxResult, bool, error) {
			if call <= 3 {
				return nil, false, nil
			}
			return &models.TxResult{TxHash: "ABC123", Height: 100}, true, nil
		}}

		waiter := NewWaiterAdapter(client, testLogger()).WithPolling(time.Millisecond, 10)
		result, err := waiter.WaitForInclusion(ctx, "ABC123")

		require.NoError(t, err)
		assert.Equal(t, int64(100), result.Height)
		// 3 not-found polls plus the successful one
		assert.Equal(t, 4, client.queries)
	})

	t.Run("exhausted budget is a timeout with attempt count", func(t *testing.T) {
		client := &scriptedClient{script: func(int) (*models.TxResult, bool, error) {
			return nil, false, nil
		}}

		waiter := NewWaiterAdapter(client, testLogger()).WithPolling(time.Millisecond, 5)
		_, err := waiter.WaitForInclusion(ctx, "ABC123")

		var timeoutErr *domain.InclusionTimeoutErr
		require.ErrorAs(t, err, &timeoutErr)
		assert.Equal(t, "ABC123", timeoutErr.TxHash)
		assert.Equal(t, 5, timeoutErr.Attempts)
		assert.Equal(t, 5, client.queries)
	})

	t.Run("included but reverted transaction is an execution failure", func(t *testing.T) {
		client := &scriptedClient{script: func(int) (*models.TxResult, bool, error) {
			return &models.TxResult{TxHash: "ABC123", Code: 5, RawLog: "out of gas"}, true, nil
		}}

		waiter := NewWaiterAdapter(client, testLogger()).WithPolling(time.Millisecond, 5)
		_, err := waiter.WaitForInclusion(ctx, "ABC123")

		var execErr *domain.ExecutionFailedErr
		require.ErrorAs(t, err, &execErr)
		assert.Equal(t, uint32(5), execErr.Code)
		assert.Equal(t, "out of gas", execErr.RawLog)
	})

	t.Run("transient query errors count against the budget", func(t *testing.T) {
		client := &scriptedClient{script: func(int) (*models.TxResult, bool, error) {
			return nil, false, errors.New("connection refused")
		}}

		waiter := NewWaiterAdapter(client, testLogger()).WithPolling(time.Millisecond, 3)
		_, err := waiter.WaitForInclusion(ctx, "ABC123")

		var timeoutErr *domain.InclusionTimeoutErr
		require.ErrorAs(t, err, &timeoutErr)
		assert.Equal(t, 3, client.queries)
	})

	t.Run("recovers when the endpoint comes back", func(t *testing.T) {
		client := &scriptedClient{script: func(call int) (*models.TxResult, bool, error) {
			if call == 1 {
				return nil, false, errors.New("connection refused")
			}
			return &models.TxResult{TxHash: "ABC123", Height: 7}, true, nil
		}}

		waiter := NewWaiterAdapter(client, testLogger()).WithPolling(time.Millisecond, 5)
		result, err := waiter.WaitForInclusion(ctx, "ABC123")

		require.NoError(t, err)
		assert.Equal(t, int64(7), result.Height)
	})

	t.Run("cancelled context stops the wait", func(t *testing.T) {
		cancelCtx, cancel := context.WithCancel(ctx)

		client := &scriptedClient{script: func(int) (*models.TxResult, bool, error) {
			cancel()
			return nil, false, nil
		}}

		// A long interval forces the select onto ctx.Done
		waiter := NewWaiterAdapter(client, testLogger()).WithPolling(time.Hour, 5)
		_, err := waiter.WaitForInclusion(cancelCtx, "ABC123")

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, client.queries)
	})
}
