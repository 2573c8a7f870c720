package usecase

import (
	"context"
	"encoding/json"

	"github.com/Anchor-Protocol/terrariums/internal/domain/models"
)

// DeployContractParams contains parameters for the full pipeline
type DeployContractParams struct {
	Contract      string
	InitMsg       json.RawMessage
	Label         string
	Admin         string
	Funds         []models.Coin
	MigrateCodeID uint64

	// SkipBuild deploys the existing artifact without rebuilding
	SkipBuild bool

	Progress ProgressSink
}

// DeployContractResult aggregates the per-step outcomes
type DeployContractResult struct {
	Contract string
	CodeID   string
	Address  string
	TxHash   string
}

// DeployContract sequences the full pipeline for one contract:
// build -> optimize -> store-code -> instantiate. Each step depends on the
// previous step's output, so the flow is strictly sequential.
type DeployContract struct {
	build       *BuildContract
	storeCode   *StoreCode
	instantiate *Instantiate
}

// NewDeployContract creates a new DeployContract use case
func NewDeployContract(build *BuildContract, storeCode *StoreCode, instantiate *Instantiate) *DeployContract {
	return &DeployContract{
		build:       build,
		storeCode:   storeCode,
		instantiate: instantiate,
	}
}

// Run executes the pipeline.
func (uc *DeployContract) Run(ctx context.Context, params DeployContractParams) (*DeployContractResult, error) {
	if !params.SkipBuild {
		if _, err := uc.build.Run(ctx, BuildContractParams{
			Contract: params.Contract,
			Optimize: true,
			Progress: params.Progress,
		}); err != nil {
			return nil, err
		}
	}

	stored, err := uc.storeCode.Run(ctx, StoreCodeParams{
		Contract:      params.Contract,
		MigrateCodeID: params.MigrateCodeID,
		Progress:      params.Progress,
	})
	if err != nil {
		return nil, err
	}

	instantiated, err := uc.instantiate.Run(ctx, InstantiateParams{
		Contract: stored.Contract,
		InitMsg:  params.InitMsg,
		Label:    params.Label,
		Admin:    params.Admin,
		Funds:    params.Funds,
		Progress: params.Progress,
	})
	if err != nil {
		return nil, err
	}

	return &DeployContractResult{
		Contract: stored.Contract,
		CodeID:   stored.CodeID,
		Address:  instantiated.Address,
		TxHash:   instantiated.TxHash,
	}, nil
}
