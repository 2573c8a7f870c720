package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/Anchor-Protocol/terrariums/internal/usecase"
)

// DeployRenderer renders deployment pipeline outcomes
type DeployRenderer struct {
	out io.Writer
}

// NewDeployRenderer creates a new deploy renderer
func NewDeployRenderer(out io.Writer) *DeployRenderer {
	return &DeployRenderer{out: out}
}

// RenderStoreCode renders a store-code outcome
func (r *DeployRenderer) RenderStoreCode(result *usecase.StoreCodeResult) error {
	color.New(color.FgGreen).Fprintf(r.out, "✓ Stored code for %s\n", result.Contract)
	fmt.Fprintf(r.out, "  Code ID: %s\n", result.CodeID)
	fmt.Fprintf(r.out, "  Tx:      %s\n", result.TxHash)
	return nil
}

// RenderInstantiate renders an instantiate outcome
func (r *DeployRenderer) RenderInstantiate(result *usecase.InstantiateResult) error {
	color.New(color.FgGreen).Fprintf(r.out, "✓ Instantiated %s\n", result.Contract)
	fmt.Fprintf(r.out, "  Address: %s\n", result.Address)
	fmt.Fprintf(r.out, "  Tx:      %s\n", result.TxHash)
	return nil
}

// RenderDeploy renders a full-pipeline outcome
func (r *DeployRenderer) RenderDeploy(result *usecase.DeployContractResult) error {
	color.New(color.FgGreen).Fprintf(r.out, "✓ Deployed %s\n", result.Contract)
	fmt.Fprintf(r.out, "  Code ID: %s\n", result.CodeID)
	fmt.Fprintf(r.out, "  Address: %s\n", result.Address)
	fmt.Fprintf(r.out, "  Tx:      %s\n", result.TxHash)
	return nil
}

// RenderCompose renders a plan outcome, one line per deployed step.
func (r *DeployRenderer) RenderCompose(result *usecase.ComposeDeploymentResult) error {
	if len(result.Deployed) == 0 {
		fmt.Fprintln(r.out, "Nothing deployed")
		return nil
	}

	color.New(color.FgGreen).Fprintf(r.out, "✓ Deployed %d contract(s)\n", len(result.Deployed))
	for _, deployed := range result.Deployed {
		fmt.Fprintf(r.out, "  %s: code %s at %s\n", deployed.Contract, deployed.CodeID, deployed.Address)
	}
	return nil
}
