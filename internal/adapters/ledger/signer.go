package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/Anchor-Protocol/terrariums/internal/config"
	"github.com/Anchor-Protocol/terrariums/internal/domain/models"
)

// CLISigner signs transactions offline by shelling out to the chain binary,
// keeping key material entirely inside its keyring.
type CLISigner struct {
	log     *slog.Logger
	binary  string
	keyName string
}

// NewCLISigner creates a signer for the configured network's key.
func NewCLISigner(cfg *config.RuntimeConfig, log *slog.Logger) *CLISigner {
	keyName := ""
	if cfg != nil && cfg.Network != nil {
		keyName = cfg.Network.SignerKey
	}
	return &CLISigner{
		log:     log.With("component", "CLISigner"),
		binary:  "terrad",
		keyName: keyName,
	}
}

// Sign writes the unsigned transaction to a temp file, signs it offline and
// returns the signed transaction value ready for broadcast.
func (s *CLISigner) Sign(ctx context.Context, req SignRequest) (models.SignedTx, error) {
	unsigned, err := json.Marshal(map[string]json.RawMessage{
		"type":  json.RawMessage(`"core/StdTx"`),
		"value": req.Tx,
	})
	if err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp("", "terrariums-sign-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	txPath := filepath.Join(dir, "unsigned.json")
	if err := os.WriteFile(txPath, unsigned, 0600); err != nil {
		return nil, err
	}

	args := []string{
		"tx", "sign", txPath,
		"--from", s.keyName,
		"--offline",
		"--chain-id", req.ChainID,
		"--account-number", strconv.FormatUint(req.AccountNumber, 10),
		"--sequence", strconv.FormatUint(req.Sequence, 10),
		"--output", "json",
	}

	s.log.Debug("signing transaction", "chain_id", req.ChainID, "sequence", req.Sequence)

	cmd := exec.CommandContext(ctx, s.binary, args...)
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("%s tx sign failed: %w\n%s", s.binary, err, exitErr.Stderr)
		}
		return nil, fmt.Errorf("%s tx sign failed: %w", s.binary, err)
	}

	// The signer prints {"type": "core/StdTx", "value": {...}}; broadcast
	// wants the value
	var signed struct {
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(output, &signed); err != nil {
		return nil, fmt.Errorf("failed to decode signed tx: %w", err)
	}
	if len(signed.Value) == 0 {
		return nil, fmt.Errorf("signer produced no transaction value")
	}

	return models.SignedTx(signed.Value), nil
}

// Ensure the adapter implements the interface
var _ Signer = (*CLISigner)(nil)
