package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Anchor-Protocol/terrariums/internal/adapters/progress"
	"github.com/Anchor-Protocol/terrariums/internal/app"
	"github.com/Anchor-Protocol/terrariums/internal/config"
	"github.com/Anchor-Protocol/terrariums/internal/usecase"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// Execute runs the root command and releases the command timeout on every
// exit path. Cobra skips the PostRun hooks when a command fails, so the
// release cannot live there alone.
func Execute() error {
	var cancelTimeout context.CancelFunc
	defer func() {
		if cancelTimeout != nil {
			cancelTimeout()
		}
	}()
	return newRootCmd(&cancelTimeout).Execute()
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	var cancelTimeout context.CancelFunc
	return newRootCmd(&cancelTimeout)
}

func newRootCmd(cancelTimeout *context.CancelFunc) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "terrariums",
		Short: "Smart contract deployment orchestrator for Terra",
		Long: `Terrariums orchestrates CosmWasm contract deployments: building and
optimizing wasm artifacts, storing code on chain, instantiating contracts and
recording the resulting code IDs and addresses in a shared refs file.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				return err
			}

			v := config.SetupViper(projectRoot, cmd)

			appInstance, err := app.InitApp(v)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				*cancelTimeout = cancel
			}

			cmd.SetContext(ctx)

			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if *cancelTimeout != nil {
				(*cancelTimeout)()
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to use (e.g., mainnet, testnet, localterra)")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "deployment",
		Title: "Deployment Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	for _, cmd := range []*cobra.Command{
		NewBuildCmd(),
		NewStoreCodeCmd(),
		NewInstantiateCmd(),
		NewDeployCmd(),
		NewComposeCmd(),
	} {
		cmd.GroupID = "deployment"
		rootCmd.AddCommand(cmd)
	}

	listCmd := NewListCmd()
	listCmd.GroupID = "management"
	rootCmd.AddCommand(listCmd)

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}

// newProgressSink picks the progress renderer for the current mode
func newProgressSink(cfg *config.RuntimeConfig) usecase.ProgressSink {
	if cfg.NonInteractive {
		return progress.NewNopSink()
	}
	return progress.NewSpinnerSink()
}
