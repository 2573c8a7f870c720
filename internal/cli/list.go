package cli

import (
	"github.com/spf13/cobra"

	"github.com/Anchor-Protocol/terrariums/internal/cli/render"
	"github.com/Anchor-Protocol/terrariums/internal/usecase"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List code IDs and addresses recorded in the refs file",
		Example: `  # List all recorded refs
  terrariums list

  # List refs for one network only
  terrariums list --network testnet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			network := ""
			if app.Config.Network != nil {
				network = app.Config.Network.Name
			}

			result, err := app.ListRefs.Run(cmd.Context(), usecase.ListRefsParams{Network: network})
			if err != nil {
				return err
			}

			return render.NewRefsRenderer(cmd.OutOrStdout()).RenderRefList(result)
		},
	}

	return cmd
}
