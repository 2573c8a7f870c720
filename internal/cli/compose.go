package cli

import (
	"github.com/spf13/cobra"

	"github.com/Anchor-Protocol/terrariums/internal/cli/render"
	"github.com/Anchor-Protocol/terrariums/internal/usecase"
)

// NewComposeCmd creates the compose command
func NewComposeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compose <plan-file>",
		Short: "Execute a multi-contract deployment plan from a YAML file",
		Long: `Execute the deployment steps of a YAML plan strictly in order against one
network. A failing step aborts the remainder of the plan; everything deployed
up to that point is already recorded in the refs file.

Example plan (deploy.yaml):
  sequence_start: 42
  steps:
    - contract: oracle
      init:
        owner: terra1...
    - contract: vault
      label: Main vault
      init:
        oracle: terra1...

With sequence_start set, account sequences are allocated manually in
increasing order instead of being queried from the chain. Every broadcast
consumes one sequence, so each step takes two: store-code first, then
instantiate. This lets the plan's transactions be pipelined from one
account.`,
		Example: `  # Execute a plan against testnet
  terrariums compose deploy.yaml --network testnet`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ComposeDeployment.Run(cmd.Context(), usecase.ComposeDeploymentParams{
				PlanPath: args[0],
				Progress: newProgressSink(app.Config),
			})
			if result != nil && len(result.Deployed) > 0 {
				// Render partial progress even when a later step failed
				_ = render.NewDeployRenderer(cmd.OutOrStdout()).RenderCompose(result)
			}
			return err
		},
	}

	return cmd
}
