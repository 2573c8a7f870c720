package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/Anchor-Protocol/terrariums/internal/cli/render"
	"github.com/Anchor-Protocol/terrariums/internal/domain/models"
	"github.com/Anchor-Protocol/terrariums/internal/usecase"
)

// NewInstantiateCmd creates the instantiate command
func NewInstantiateCmd() *cobra.Command {
	var (
		msg      string
		msgFile  string
		label    string
		admin    string
		funds    string
		sequence uint64
	)

	cmd := &cobra.Command{
		Use:   "instantiate [contract]",
		Short: "Create a contract instance from its recorded code ID",
		Long: `Instantiate the code ID recorded for the contract on the selected network,
wait for inclusion and record the assigned contract address in the refs file.

The init message is given inline with --msg or from a file with --msg-file.
--sequence overrides the signer's on-chain account sequence; when pipelining
several transactions from one account the caller must allocate sequences in
increasing order themselves.`,
		Example: `  # Instantiate the vault contract on testnet
  terrariums instantiate vault --network testnet --msg '{"owner":"terra1..."}'

  # Read the init message from a file and attach initial funds
  terrariums instantiate vault --network testnet --msg-file init.json --funds 1000000uluna`,
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

			params := usecase.InstantiateParams{
				Contract: contract,
				InitMsg:  initMsg,
				Label:    label,
				Admin:    admin,
				Funds:    coins,
				Progress: newProgressSink(app.Config),
			}
			if cmd.Flags().Changed("sequence") {
				params.Sequence = &sequence
			}

			result, err := app.Instantiate.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			return render.NewDeployRenderer(cmd.OutOrStdout()).RenderInstantiate(result)
		},
	}

	cmd.Flags().StringVar(&msg, "msg", "", "Init message as inline JSON")
	cmd.Flags().StringVar(&msgFile, "msg-file", "", "Path to a JSON file with the init message")
	cmd.Flags().StringVar(&label, "label", "", "Human-readable instance label")
	cmd.Flags().StringVar(&admin, "admin", "", "Admin address allowed to migrate the instance")
	cmd.Flags().StringVar(&funds, "funds", "", "Initial funds as comma-separated coins (e.g. 1000000uluna)")
	cmd.Flags().Uint64Var(&sequence, "sequence", 0, "Override the signer's account sequence")

	return cmd
}

// readInitMsg resolves the init message from the inline and file flags.
func readInitMsg(msg, msgFile string) (json.RawMessage, error) {
	if msg != "" && msgFile != "" {
		return nil, fmt.Errorf("--msg and --msg-file are mutually exclusive")
	}

	var raw []byte
	switch {
	case msgFile != "":
		data, err := os.ReadFile(msgFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read init msg file: %w", err)
		}
		raw = data
	case msg != "":
		raw = []byte(msg)
	default:
		raw = []byte("{}")
	}

	if !json.Valid(raw) {
		return nil, fmt.Errorf("init msg is not valid JSON")
	}

	return json.RawMessage(raw), nil
}

// parseCoins parses a comma-separated coin list like "1000000uluna,5000ukrw".
func parseCoins(s string) ([]models.Coin, error) {
	if s == "" {
		return nil, nil
	}

	var coins []models.Coin
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		split := len(part)
		for i, r := range part {
			if !unicode.IsDigit(r) {
				split = i
				break
			}
		}
		if split == 0 || split == len(part) {
			return nil, fmt.Errorf("invalid coin %q, expected <amount><denom>", part)
		}
		coins = append(coins, models.Coin{
			Amount: part[:split],
			Denom:  part[split:],
		})
	}

	return coins, nil
}
