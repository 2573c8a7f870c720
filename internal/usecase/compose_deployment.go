package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/Anchor-Protocol/terrariums/internal/config"
	"github.com/Anchor-Protocol/terrariums/internal/domain"
	"github.com/Anchor-Protocol/terrariums/internal/domain/models"
)

// ComposePlan is a YAML deployment plan: an ordered list of contract
// deployments executed against one network.
type ComposePlan struct {
	// SequenceStart, when set, manually allocates account sequences to the
	// plan's transactions in increasing order instead of querying the chain
	// before each one. Every broadcast consumes one sequence, so a step
	// takes two: store-code first, then instantiate. The caller owns
	// correctness of the starting value.
	SequenceStart *uint64 `yaml:"sequence_start"`

	Steps []ComposeStep `yaml:"steps"`
}

// ComposeStep is one deployment in a plan.
type ComposeStep struct {
	Contract      string         `yaml:"contract"`
	Init          map[string]any `yaml:"init"`
	Label         string         `yaml:"label"`
	Admin         string         `yaml:"admin"`
	Funds         []models.Coin  `yaml:"funds"`
	MigrateCodeID uint64         `yaml:"migrate_code_id"`
	SkipBuild     bool           `yaml:"skip_build"`
}

// ComposeDeploymentParams contains parameters for executing a plan
type ComposeDeploymentParams struct {
	PlanPath string
	Progress ProgressSink
}

// ComposeDeploymentResult aggregates per-step outcomes in plan order
type ComposeDeploymentResult struct {
	Deployed []*DeployContractResult
}

// ComposeDeployment executes a multi-contract deployment plan. Steps run
// strictly in order; a failing step aborts the remainder of the plan with
// everything recorded so far already persisted in the reference store.
type ComposeDeployment struct {
	cfg    *config.RuntimeConfig
	deploy *DeployContract
}

// NewComposeDeployment creates a new ComposeDeployment use case
func NewComposeDeployment(cfg *config.RuntimeConfig, deploy *DeployContract) *ComposeDeployment {
	return &ComposeDeployment{cfg: cfg, deploy: deploy}
}

// Run loads, validates and executes the plan.
func (uc *ComposeDeployment) Run(ctx context.Context, params ComposeDeploymentParams) (*ComposeDeploymentResult, error) {
	progress := params.Progress
	if progress == nil {
		progress = NopProgress{}
	}

	plan, err := LoadComposePlan(params.PlanPath)
	if err != nil {
		return nil, err
	}
	if err := uc.validate(plan); err != nil {
		return nil, err
	}

	var nextSequence *uint64
	if plan.SequenceStart != nil {
		seq := *plan.SequenceStart
		nextSequence = &seq
	}

	result := &ComposeDeploymentResult{}
	for i, step := range plan.Steps {
		progress.Info(fmt.Sprintf("[%d/%d] Deploying %s", i+1, len(plan.Steps), step.Contract))

		initMsg, err := json.Marshal(step.Init)
		if err != nil {
			return nil, fmt.Errorf("failed to encode init msg for %s: %w", step.Contract, err)
		}

		deployed, err := uc.deployStep(ctx, step, initMsg, nextSequence, progress)
		if err != nil {
			return result, fmt.Errorf("plan step %d (%s) failed: %w", i+1, step.Contract, err)
		}

		result.Deployed = append(result.Deployed, deployed)
	}

	return result, nil
}

func (uc *ComposeDeployment) deployStep(ctx context.Context, step ComposeStep, initMsg json.RawMessage, sequence *uint64, progress ProgressSink) (*DeployContractResult, error) {
	if !step.SkipBuild {
		if _, err := uc.deploy.build.Run(ctx, BuildContractParams{Contract: step.Contract, Optimize: true, Progress: progress}); err != nil {
			return nil, err
		}
	}

	stored, err := uc.deploy.storeCode.Run(ctx, StoreCodeParams{
		Contract:      step.Contract,
		MigrateCodeID: step.MigrateCodeID,
		Sequence:      allocateSequence(sequence),
		Progress:      progress,
	})
	if err != nil {
		return nil, err
	}

	instantiated, err := uc.deploy.instantiate.Run(ctx, InstantiateParams{
		Contract: stored.Contract,
		InitMsg:  initMsg,
		Label:    step.Label,
		Admin:    step.Admin,
		Funds:    step.Funds,
		Sequence: allocateSequence(sequence),
		Progress: progress,
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

// allocateSequence hands out the current manual sequence and advances the
// counter by one, so each broadcast transaction signs with its own value.
// A nil counter means sequences are queried from the chain instead.
func allocateSequence(counter *uint64) *uint64 {
	if counter == nil {
		return nil
	}
	seq := *counter
	*counter++
	return &seq
}

func (uc *ComposeDeployment) validate(plan *ComposePlan) error {
	if len(plan.Steps) == 0 {
		return &domain.ConfigErr{Reason: "compose plan has no steps"}
	}

	unknown := lo.FilterMap(plan.Steps, func(step ComposeStep, _ int) (string, bool) {
		_, ok := uc.cfg.Terrarium.Contracts[step.Contract]
		return step.Contract, !ok
	})
	if len(unknown) > 0 {
		return &domain.ConfigErr{
			Reason: fmt.Sprintf("plan references contracts not in %s: %v", config.TerrariumFile, lo.Uniq(unknown)),
			Err:    domain.ErrContractNotConfigured,
		}
	}

	return nil
}

// LoadComposePlan reads and parses a YAML deployment plan.
func LoadComposePlan(path string) (*ComposePlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read compose plan: %w", err)
	}

	var plan ComposePlan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse compose plan %s: %w", path, err)
	}

	return &plan, nil
}
