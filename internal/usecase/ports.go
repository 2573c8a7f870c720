package usecase

import (
	"context"

	"github.com/Anchor-Protocol/terrariums/internal/domain/models"
)

// ReferenceStore handles the persisted (network, contract) -> deployment
// output table. Get/Set operate on the in-memory snapshot only; SaveRefs
// persists the whole snapshot to the configured primary path and mirrors.
type ReferenceStore interface {
	CodeID(network, contract string) (string, bool)
	SetCodeID(network, contract, codeID string)
	Address(network, contract string) (string, bool)
	SetAddress(network, contract, address string)
	Snapshot() models.RefSnapshot
	SaveRefs(ctx context.Context) error
}

// LedgerClient is the transaction-signing and RPC-submission machinery of
// the ledger, consumed as a black box. Broadcast only confirms acceptance
// into the pending pool, never inclusion.
type LedgerClient interface {
	SignerAddress() string
	Sign(ctx context.Context, msgs []models.Msg, opts models.SignOptions) (models.SignedTx, error)
	Broadcast(ctx context.Context, tx models.SignedTx) (*models.BroadcastResult, error)
	// QueryTx reports (nil, false, nil) while the transaction is not yet
	// included.
	QueryTx(ctx context.Context, txHash string) (*models.TxResult, bool, error)
	Sequence(ctx context.Context, account string) (uint64, error)
}

// InclusionWaiter blocks until a broadcast transaction is included in a
// block, the polling budget runs out, or ctx is done. It is the single
// synchronization point over the ledger's asynchronous commitment model.
type InclusionWaiter interface {
	WaitForInclusion(ctx context.Context, txHash string) (*models.TxResult, error)
}

// ArtifactBuilder drives the external build and optimizer toolchains.
type ArtifactBuilder interface {
	Build(ctx context.Context, contract string) error
	Optimize(ctx context.Context, contract string) error
	// ArtifactPath returns the deterministic bytecode path for a contract,
	// including the architecture-specific suffix when applicable.
	ArtifactPath(contract string) string
}

// ContractSelector handles interactive selection of a configured contract.
type ContractSelector interface {
	SelectContract(ctx context.Context, names []string, prompt string) (string, error)
}

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   string
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}

// ExecutionStage represents a stage in the deployment pipeline
type ExecutionStage string

const (
	StageBuilding     ExecutionStage = "Building"
	StageOptimizing   ExecutionStage = "Optimizing"
	StageSigning      ExecutionStage = "Signing"
	StageBroadcasting ExecutionStage = "Broadcasting"
	StageWaiting      ExecutionStage = "Waiting"
	StageParsing      ExecutionStage = "Parsing"
	StageSaving       ExecutionStage = "Saving"
	StageCompleted    ExecutionStage = "Completed"
)
