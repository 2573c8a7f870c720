package usecase

import (
	"context"
	"fmt"
	"os"

	"github.com/Anchor-Protocol/terrariums/internal/config"
	"github.com/Anchor-Protocol/terrariums/internal/domain"
	"github.com/Anchor-Protocol/terrariums/internal/domain/models"
)

// DefaultFeeDenom is applied when the target network configures no fee
// denomination.
const DefaultFeeDenom = "uluna"

// StoreCodeParams contains parameters for uploading contract bytecode
type StoreCodeParams struct {
	Contract string

	// MigrateCodeID, when non-zero, replaces the bytecode stored under an
	// existing code ID instead of storing new code.
	MigrateCodeID uint64

	// Sequence overrides the signer's current on-chain account sequence.
	// Callers pipelining several transactions from one account must allocate
	// these in increasing order themselves.
	Sequence *uint64

	Progress ProgressSink
}

// StoreCodeResult contains the outcome of a successful upload
type StoreCodeResult struct {
	Contract string
	CodeID   string
	TxHash   string
}

// StoreCode uploads a contract's optimized bytecode to the ledger, waits for
// inclusion, extracts the assigned code ID from the transaction log and
// records it in the reference store.
type StoreCode struct {
	cfg       *config.RuntimeConfig
	resolver  *ResolveContract
	artifacts ArtifactBuilder
	client    LedgerClient
	waiter    InclusionWaiter
	refs      ReferenceStore
}

// NewStoreCode creates a new StoreCode use case
func NewStoreCode(
	cfg *config.RuntimeConfig,
	resolver *ResolveContract,
	artifacts ArtifactBuilder,
	client LedgerClient,
	waiter InclusionWaiter,
	refs ReferenceStore,
) *StoreCode {
	return &StoreCode{
		cfg:       cfg,
		resolver:  resolver,
		artifacts: artifacts,
		client:    client,
		waiter:    waiter,
		refs:      refs,
	}
}

// Run executes the store-code operation and returns the new code ID.
func (uc *StoreCode) Run(ctx context.Context, params StoreCodeParams) (*StoreCodeResult, error) {
	progress := params.Progress
	if progress == nil {
		progress = NopProgress{}
	}

	if uc.cfg.Network == nil {
		return nil, &domain.ConfigErr{Reason: "no network selected, --network flag is required"}
	}

	name, _, err := uc.resolver.Run(ctx, params.Contract)
	if err != nil {
		return nil, err
	}

	wasmPath := uc.artifacts.ArtifactPath(name)
	bytecode, err := os.ReadFile(wasmPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &domain.ArtifactNotFoundErr{Contract: name, Path: wasmPath}
		}
		return nil, fmt.Errorf("failed to read artifact %s: %w", wasmPath, err)
	}

	var msg models.Msg
	if params.MigrateCodeID != 0 {
		msg = models.MigrateCodeMsg{
			Sender:       uc.client.SignerAddress(),
			CodeID:       params.MigrateCodeID,
			WASMByteCode: bytecode,
		}
	} else {
		msg = models.StoreCodeMsg{
			Sender:       uc.client.SignerAddress(),
			WASMByteCode: bytecode,
		}
	}

	progress.OnProgress(ctx, ProgressEvent{Stage: string(StageSigning), Message: fmt.Sprintf("Signing store-code for %s", name), Spinner: true})

	signed, err := uc.client.Sign(ctx, []models.Msg{msg}, networkSignOptions(uc.cfg.Network, params.Sequence))
	if err != nil {
		return nil, fmt.Errorf("failed to sign store-code transaction: %w", err)
	}

	progress.OnProgress(ctx, ProgressEvent{Stage: string(StageBroadcasting), Message: "Broadcasting", Spinner: true})

	broadcast, err := uc.client.Broadcast(ctx, signed)
	if err != nil {
		return nil, fmt.Errorf("failed to broadcast store-code transaction: %w", err)
	}
	if broadcast.Code != 0 {
		return nil, &domain.BroadcastRejectedErr{Code: broadcast.Code, RawLog: broadcast.RawLog}
	}

	progress.OnProgress(ctx, ProgressEvent{Stage: string(StageWaiting), Message: fmt.Sprintf("Waiting for inclusion of %s", broadcast.TxHash), Spinner: true})

	result, err := uc.waiter.WaitForInclusion(ctx, broadcast.TxHash)
	if err != nil {
		return nil, err
	}

	progress.OnProgress(ctx, ProgressEvent{Stage: string(StageParsing), Message: "Parsing"})

	codeID, err := domain.ExtractEventAttribute(result.RawLog, domain.StoreCodeQueries)
	if err != nil {
		return nil, err
	}

	progress.OnProgress(ctx, ProgressEvent{Stage: string(StageSaving), Message: "Updating refs"})

	uc.refs.SetCodeID(uc.cfg.Network.Name, name, codeID)
	if err := uc.refs.SaveRefs(ctx); err != nil {
		return nil, fmt.Errorf("failed to save refs: %w", err)
	}

	progress.OnProgress(ctx, ProgressEvent{Stage: string(StageCompleted)})

	return &StoreCodeResult{Contract: name, CodeID: codeID, TxHash: result.TxHash}, nil
}

// networkSignOptions builds the sign options for a network, applying the
// fee-denomination fallback.
func networkSignOptions(network *config.NetworkConfig, sequence *uint64) models.SignOptions {
	feeDenom := network.FeeDenom
	if feeDenom == "" {
		feeDenom = DefaultFeeDenom
	}
	return models.SignOptions{
		Sequence: sequence,
		FeeDenom: feeDenom,
		Gas:      network.Gas,
	}
}
