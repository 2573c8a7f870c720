package cli

import (
	"github.com/spf13/cobra"

	"github.com/Anchor-Protocol/terrariums/internal/cli/render"
	"github.com/Anchor-Protocol/terrariums/internal/usecase"
)

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	var (
		msg           string
		msgFile       string
		label         string
		admin         string
		funds         string
		migrateCodeID uint64
		skipBuild     bool
	)

	cmd := &cobra.Command{
		Use:   "deploy [contract]",
		Short: "Run the full pipeline: build, store code, instantiate",
		Long: `Run the complete deployment pipeline for one contract: build and optimize
the wasm artifact, upload it, wait for inclusion, instantiate the assigned
code ID and record both outputs in the refs file.`,
		Example: `  # Deploy the vault contract to testnet
  terrariums deploy vault --network testnet --msg '{"owner":"terra1..."}'

  # Re-deploy the existing artifact without rebuilding
  terrariums deploy vault --network testnet --skip-build`,
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

			initMsg, err := readInitMsg(msg, msgFile)
			if err != nil {
				return err
			}

			coins, err := parseCoins(funds)
			if err != nil {
				return err
			}

			result, err := app.DeployContract.Run(cmd.Context(), usecase.DeployContractParams{
				Contract:      contract,
				InitMsg:       initMsg,
				Label:         label,
				Admin:         admin,
				Funds:         coins,
				MigrateCodeID: migrateCodeID,
				SkipBuild:     skipBuild,
				Progress:      newProgressSink(app.Config),
			})
			if err != nil {
				return err
			}

			return render.NewDeployRenderer(cmd.OutOrStdout()).RenderDeploy(result)
		},
	}

	cmd.Flags().StringVar(&msg, "msg", "", "Init message as inline JSON")
	cmd.Flags().StringVar(&msgFile, "msg-file", "", "Path to a JSON file with the init message")
	cmd.Flags().StringVar(&label, "label", "", "Human-readable instance label")
	cmd.Flags().StringVar(&admin, "admin", "", "Admin address allowed to migrate the instance")
	cmd.Flags().StringVar(&funds, "funds", "", "Initial funds as comma-separated coins (e.g. 1000000uluna)")
	cmd.Flags().Uint64Var(&migrateCodeID, "migrate-code-id", 0, "Replace the bytecode stored under this code ID")
	cmd.Flags().BoolVar(&skipBuild, "skip-build", false, "Deploy the existing artifact without rebuilding")

	return cmd
}
