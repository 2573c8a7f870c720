package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/Anchor-Protocol/terrariums/internal/config"
	"github.com/Anchor-Protocol/terrariums/internal/domain"
)

// ResolveContract resolves a contract name against terrarium.toml, falling
// back to interactive selection when the name is unknown and the run is
// interactive.
type ResolveContract struct {
	cfg      *config.RuntimeConfig
	selector ContractSelector
}

// NewResolveContract creates a new ResolveContract use case
func NewResolveContract(cfg *config.RuntimeConfig, selector ContractSelector) *ResolveContract {
	return &ResolveContract{cfg: cfg, selector: selector}
}

// Run returns the configured contract entry for name. An empty name always
// goes through selection.
func (uc *ResolveContract) Run(ctx context.Context, name string) (string, *config.ContractConfig, error) {
	if contract, ok := uc.cfg.Terrarium.Contracts[name]; ok && name != "" {
		return name, &contract, nil
	}

	if uc.cfg.NonInteractive {
		return "", nil, &domain.ConfigErr{
			Reason: fmt.Sprintf("contract '%s' not found in %s [contracts]", name, config.TerrariumFile),
			Err:    domain.ErrContractNotConfigured,
		}
	}

	names := uc.cfg.Terrarium.ContractNames()
	if len(names) == 0 {
		return "", nil, &domain.ConfigErr{
			Reason: fmt.Sprintf("no contracts configured in %s", config.TerrariumFile),
			Err:    domain.ErrContractNotConfigured,
		}
	}
	sort.Strings(names)

	prompt := "Select contract"
	if name != "" {
		prompt = fmt.Sprintf("Contract '%s' not found, select one", name)
	}

	selected, err := uc.selector.SelectContract(ctx, names, prompt)
	if err != nil {
		return "", nil, err
	}

	contract := uc.cfg.Terrarium.Contracts[selected]
	return selected, &contract, nil
}
