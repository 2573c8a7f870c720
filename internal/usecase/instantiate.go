package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/Anchor-Protocol/terrariums/internal/config"
	"github.com/Anchor-Protocol/terrariums/internal/domain"
	"github.com/Anchor-Protocol/terrariums/internal/domain/models"
)

// DefaultInstanceLabel is used when no label is given.
const DefaultInstanceLabel = "Instantiate"

// InstantiateParams contains parameters for instantiating a stored contract
type InstantiateParams struct {
	Contract string
	InitMsg  json.RawMessage
	Label    string
	Admin    string
	Funds    []models.Coin

	// Sequence overrides the signer's current on-chain account sequence.
	// Callers pipelining several transactions from one account must allocate
	// these in increasing order themselves.
	Sequence *uint64

	Progress ProgressSink
}

// InstantiateResult contains the outcome of a successful instantiate
type InstantiateResult struct {
	Contract string
	Address  string
	RawLog   string
	TxHash   string
}

// Instantiate creates a live contract instance from the code ID recorded for
// (network, contract), waits for inclusion, extracts the assigned address
// from the transaction log and records it in the reference store.
type Instantiate struct {
	cfg      *config.RuntimeConfig
	resolver *ResolveContract
	client   LedgerClient
	waiter   InclusionWaiter
	refs     ReferenceStore
}

// NewInstantiate creates a new Instantiate use case
func NewInstantiate(
	cfg *config.RuntimeConfig,
	resolver *ResolveContract,
	client LedgerClient,
	waiter InclusionWaiter,
	refs ReferenceStore,
) *Instantiate {
	return &Instantiate{
		cfg:      cfg,
		resolver: resolver,
		client:   client,
		waiter:   waiter,
		refs:     refs,
	}
}

// Run executes the instantiate operation. A missing code ID is a fatal
// configuration error detected before anything is broadcast.
func (uc *Instantiate) Run(ctx context.Context, params InstantiateParams) (*InstantiateResult, error) {
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

	network := uc.cfg.Network.Name
	codeIDStr, ok := uc.refs.CodeID(network, name)
	if !ok {
		return nil, &domain.ConfigErr{
			Reason: fmt.Sprintf("no code ID recorded for %s on %s, run store-code first", name, network),
			Err:    domain.ErrCodeIDNotFound,
		}
	}
	codeID, err := strconv.ParseUint(codeIDStr, 10, 64)
	if err != nil {
		return nil, &domain.ConfigErr{
			Reason: fmt.Sprintf("stored code ID %q for %s on %s is not numeric", codeIDStr, name, network),
			Err:    err,
		}
	}

	// Caller-supplied sequence takes precedence over the on-chain value so
	// several transactions can be issued from one account without waiting
	// for each to finalize
	sequence := params.Sequence
	if sequence == nil {
		current, err := uc.client.Sequence(ctx, uc.client.SignerAddress())
		if err != nil {
			return nil, fmt.Errorf("failed to query account sequence: %w", err)
		}
		sequence = &current
	}

	label := params.Label
	if label == "" {
		label = DefaultInstanceLabel
	}

	msg := models.InstantiateMsg{
		Sender:  uc.client.SignerAddress(),
		Admin:   params.Admin,
		CodeID:  codeID,
		Label:   label,
		InitMsg: params.InitMsg,
		Funds:   params.Funds,
	}

	progress.OnProgress(ctx, ProgressEvent{Stage: string(StageSigning), Message: fmt.Sprintf("Signing instantiate for %s (code %d)", name, codeID), Spinner: true})

	signed, err := uc.client.Sign(ctx, []models.Msg{msg}, networkSignOptions(uc.cfg.Network, sequence))
	if err != nil {
		return nil, fmt.Errorf("failed to sign instantiate transaction: %w", err)
	}

	progress.OnProgress(ctx, ProgressEvent{Stage: string(StageBroadcasting), Message: "Broadcasting", Spinner: true})

	broadcast, err := uc.client.Broadcast(ctx, signed)
	if err != nil {
		return nil, fmt.Errorf("failed to broadcast instantiate transaction: %w", err)
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

	address, err := domain.ExtractEventAttribute(result.RawLog, domain.InstantiateQueries)
	if err != nil {
		return nil, err
	}

	progress.OnProgress(ctx, ProgressEvent{Stage: string(StageSaving), Message: "Updating refs"})

	uc.refs.SetAddress(network, name, address)
	if err := uc.refs.SaveRefs(ctx); err != nil {
		return nil, fmt.Errorf("failed to save refs: %w", err)
	}

	progress.OnProgress(ctx, ProgressEvent{Stage: string(StageCompleted)})

	return &InstantiateResult{
		Contract: name,
		Address:  address,
		RawLog:   result.RawLog,
		TxHash:   result.TxHash,
	}, nil
}
