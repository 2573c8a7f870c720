package ledger

import (
	"context"
	"log/slog"
	"time"

	"github.com/Anchor-Protocol/terrariums/internal/domain"
	"github.com/Anchor-Protocol/terrariums/internal/domain/models"
	"github.com/Anchor-Protocol/terrariums/internal/usecase"
)

const (
	// DefaultPollInterval is roughly one block time; a fixed short delay is
	// enough and keeps load off the query endpoint.
	DefaultPollInterval = 6 * time.Second

	// DefaultMaxAttempts bounds the polling budget.
	DefaultMaxAttempts = 30
)

// WaiterAdapter polls the ledger for a transaction hash until it is found
// included, the attempt budget runs out, or ctx is done.
type WaiterAdapter struct {
	log          *slog.Logger
	client       usecase.LedgerClient
	pollInterval time.Duration
	maxAttempts  int
}

// NewWaiterAdapter creates a waiter with default polling bounds.
func NewWaiterAdapter(client usecase.LedgerClient, log *slog.Logger) *WaiterAdapter {
	return &WaiterAdapter{
		log:          log.With("component", "Waiter"),
		client:       client,
		pollInterval: DefaultPollInterval,
		maxAttempts:  DefaultMaxAttempts,
	}
}

// WithPolling overrides the poll interval and attempt budget.
func (w *WaiterAdapter) WithPolling(interval time.Duration, maxAttempts int) *WaiterAdapter {
	w.pollInterval = interval
	w.maxAttempts = maxAttempts
	return w
}

// WaitForInclusion blocks until the transaction is included and returns its
// execution result. An included-but-reverted transaction yields an
// ExecutionFailedErr carrying the ledger's raw diagnostic; an exhausted
// budget yields an InclusionTimeoutErr, after which the transaction may or
// may not still land.
func (w *WaiterAdapter) WaitForInclusion(ctx context.Context, txHash string) (*models.TxResult, error) {
	start := time.Now()

	for attempt := 1; attempt <= w.maxAttempts; attempt++ {
		result, found, err := w.client.QueryTx(ctx, txHash)
		if err != nil {
			// Transient query failures count against the budget rather than
			// aborting: the transaction may confirm while the endpoint
			// recovers
			w.log.Warn("tx query failed", "txhash", txHash, "attempt", attempt, "error", err)
		} else if found {
			if result.Code != 0 {
				return nil, &domain.ExecutionFailedErr{TxHash: txHash, Code: result.Code, RawLog: result.RawLog}
			}
			w.log.Debug("tx included", "txhash", txHash, "height", result.Height, "attempts", attempt)
			return result, nil
		}

		if attempt == w.maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(w.pollInterval):
		}
	}

	return nil, &domain.InclusionTimeoutErr{
		TxHash:   txHash,
		Attempts: w.maxAttempts,
		Elapsed:  time.Since(start),
	}
}

// Ensure the adapter implements the interface
var _ usecase.InclusionWaiter = (*WaiterAdapter)(nil)
