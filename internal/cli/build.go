package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Anchor-Protocol/terrariums/internal/usecase"
)

// NewBuildCmd creates the build command
func NewBuildCmd() *cobra.Command {
	var noOptimize bool

	cmd := &cobra.Command{
		Use:   "build [contract]",
		Short: "Build and optimize a contract's wasm artifact",
		Long: `Compile a contract to wasm and run the optimizer over it, producing the
artifact that store-code uploads. Without an argument the contract is chosen
interactively from the ones configured in terrarium.toml.`,
		Example: `  # Build and optimize the vault contract
  terrariums build vault

  # Compile only, skip the optimizer
  terrariums build vault --no-optimize`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			contract := ""
			if len(args) > 0 {
				contract = args[0]
			}

			artifact, err := app.BuildContract.Run(cmd.Context(), usecase.BuildContractParams{
				Contract: contract,
				Optimize: !noOptimize,
				Progress: newProgressSink(app.Config),
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Artifact: %s\n", artifact)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noOptimize, "no-optimize", false, "Skip the wasm optimizer")

	return cmd
}
