package usecase

import (
	"context"
	"fmt"
)

// BuildContractParams contains parameters for the build/optimize pipeline
type BuildContractParams struct {
	Contract string
	Optimize bool
	Progress ProgressSink
}

// BuildContract drives the external build toolchain (and optionally the
// optimizer) for one contract. Not part of the deployment hard core; the
// toolchains are external collaborators.
type BuildContract struct {
	resolver  *ResolveContract
	artifacts ArtifactBuilder
}

// NewBuildContract creates a new BuildContract use case
func NewBuildContract(resolver *ResolveContract, artifacts ArtifactBuilder) *BuildContract {
	return &BuildContract{resolver: resolver, artifacts: artifacts}
}

// Run builds the contract and returns the artifact path.
func (uc *BuildContract) Run(ctx context.Context, params BuildContractParams) (string, error) {
	progress := params.Progress
	if progress == nil {
		progress = NopProgress{}
	}

	name, _, err := uc.resolver.Run(ctx, params.Contract)
	if err != nil {
		return "", err
	}

	progress.OnProgress(ctx, ProgressEvent{Stage: string(StageBuilding), Message: fmt.Sprintf("Building %s", name), Spinner: true})

	if err := uc.artifacts.Build(ctx, name); err != nil {
		return "", fmt.Errorf("build failed for %s: %w", name, err)
	}

	if params.Optimize {
		progress.OnProgress(ctx, ProgressEvent{Stage: string(StageOptimizing), Message: fmt.Sprintf("Optimizing %s", name), Spinner: true})

		if err := uc.artifacts.Optimize(ctx, name); err != nil {
			return "", fmt.Errorf("optimize failed for %s: %w", name, err)
		}
	}

	progress.OnProgress(ctx, ProgressEvent{Stage: string(StageCompleted)})

	return uc.artifacts.ArtifactPath(name), nil
}
