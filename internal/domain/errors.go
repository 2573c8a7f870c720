package domain

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for domain operations
var (
	// ErrContractNotConfigured is returned when a contract name has no entry
	// in terrarium.toml
	ErrContractNotConfigured = errors.New("contract not configured")

	// ErrCodeIDNotFound is returned when instantiate is attempted before any
	// code has been stored for the contract on the target network
	ErrCodeIDNotFound = errors.New("no code ID stored")

	// ErrNetworkNotConfigured is returned when the requested network has no
	// entry in terrarium.toml
	ErrNetworkNotConfigured = errors.New("network not configured")
)

// ConfigErr is a fatal configuration problem. It is never retried.
type ConfigErr struct {
	Reason string
	Err    error
}

func (e *ConfigErr) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

func (e *ConfigErr) Unwrap() error { return e.Err }

// ArtifactNotFoundErr is returned when the bytecode artifact for a contract
// is absent at its derived path.
type ArtifactNotFoundErr struct {
	Contract string
	Path     string
}

func (e *ArtifactNotFoundErr) Error() string {
	return fmt.Sprintf("artifact for contract %s not found at %s (run build/optimize first)", e.Contract, e.Path)
}

// BroadcastRejectedErr is returned when the ledger node rejects a transaction
// at submit time with a non-zero code. The raw diagnostic is preserved
// verbatim.
type BroadcastRejectedErr struct {
	Code   uint32
	RawLog string
}

func (e *BroadcastRejectedErr) Error() string {
	return fmt.Sprintf("broadcast rejected with code %d: %s", e.Code, e.RawLog)
}

// InclusionTimeoutErr is returned when the waiter exhausts its polling budget
// without finding the transaction in a block. The transaction may or may not
// eventually land; retrying the whole operation risks a duplicate submission.
type InclusionTimeoutErr struct {
	TxHash   string
	Attempts int
	Elapsed  time.Duration
}

func (e *InclusionTimeoutErr) Error() string {
	return fmt.Sprintf("transaction %s not included after %d polls over %s", e.TxHash, e.Attempts, e.Elapsed.Round(time.Second))
}

// ExecutionFailedErr is returned when a transaction was included in a block
// but its execution reverted on-chain.
type ExecutionFailedErr struct {
	TxHash string
	Code   uint32
	RawLog string
}

func (e *ExecutionFailedErr) Error() string {
	return fmt.Sprintf("transaction %s failed on-chain with code %d: %s", e.TxHash, e.Code, e.RawLog)
}

// RawLogSyntaxErr is returned when a raw log is not well-formed structured
// data. Distinct from EventNotFoundErr: this indicates a malformed
// transaction log, not an unexpected-but-valid execution result.
type RawLogSyntaxErr struct {
	RawLog string
	Err    error
}

func (e *RawLogSyntaxErr) Error() string {
	return fmt.Sprintf("raw log is not valid event data: %v (raw log: %s)", e.Err, e.RawLog)
}

func (e *RawLogSyntaxErr) Unwrap() error { return e.Err }

// EventNotFoundErr is returned when a well-formed raw log does not contain
// any of the expected event/attribute pairs. The transaction may have
// succeeded; only the interpretation failed, so this must never be treated
// as success.
type EventNotFoundErr struct {
	RawLog  string
	Queries []EventQuery
}

func (e *EventNotFoundErr) Error() string {
	return fmt.Sprintf("none of %v found in raw log: %s", e.Queries, e.RawLog)
}
