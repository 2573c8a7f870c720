package cli

import (
	"github.com/spf13/cobra"

	"github.com/Anchor-Protocol/terrariums/internal/cli/render"
	"github.com/Anchor-Protocol/terrariums/internal/usecase"
)

// NewStoreCodeCmd creates the store-code command
func NewStoreCodeCmd() *cobra.Command {
	var migrateCodeID uint64

	cmd := &cobra.Command{
		Use:   "store-code [contract]",
		Short: "Upload a contract's optimized bytecode to the ledger",
		Long: `Upload the optimized wasm artifact of a contract, wait for the transaction
to be included in a block and record the assigned code ID in the refs file.

With --migrate-code-id the bytecode stored under an existing code ID is
replaced instead of a new code ID being assigned.`,
		Example: `  # Upload the vault contract to testnet
  terrariums store-code vault --network testnet

  # Replace the bytecode behind code ID 42
  terrariums store-code vault --network testnet --migrate-code-id 42`,
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

			result, err := app.StoreCode.Run(cmd.Context(), usecase.StoreCodeParams{
				Contract:      contract,
				MigrateCodeID: migrateCodeID,
				Progress:      newProgressSink(app.Config),
			})
			if err != nil {
				return err
			}

			return render.NewDeployRenderer(cmd.OutOrStdout()).RenderStoreCode(result)
		},
	}

	cmd.Flags().Uint64Var(&migrateCodeID, "migrate-code-id", 0, "Replace the bytecode stored under this code ID")

	return cmd
}
