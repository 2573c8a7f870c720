package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/Anchor-Protocol/terrariums/internal/config"
	"github.com/Anchor-Protocol/terrariums/internal/domain/models"
	"github.com/Anchor-Protocol/terrariums/internal/usecase"
)

// Signer produces a broadcast-ready signed transaction from an unsigned
// transaction body. The signing keys and wire encoding behind it are a
// black box.
type Signer interface {
	Sign(ctx context.Context, req SignRequest) (models.SignedTx, error)
}

// SignRequest carries everything an offline signer needs.
type SignRequest struct {
	// Tx is the unsigned transaction value (msgs, fee, memo)
	Tx json.RawMessage

	ChainID       string
	AccountNumber uint64
	Sequence      uint64
}

// LCDClient implements the LedgerClient port against a Terra LCD endpoint.
type LCDClient struct {
	log        *slog.Logger
	network    *config.NetworkConfig
	signer     Signer
	httpClient *http.Client
}

// NewLCDClient creates a ledger client for the configured network.
func NewLCDClient(cfg *config.RuntimeConfig, signer Signer, log *slog.Logger) *LCDClient {
	var network *config.NetworkConfig
	if cfg != nil {
		network = cfg.Network
	}
	return &LCDClient{
		log:     log.With("component", "LCDClient"),
		network: network,
		signer:  signer,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// SignerAddress returns the configured sender account address.
func (c *LCDClient) SignerAddress() string {
	return c.network.SignerAddress
}

// unsignedTx is the wire shape of an unsigned transaction value.
type unsignedTx struct {
	Msgs []wrappedMsg `json:"msg"`
	Fee  stdFee       `json:"fee"`
	Memo string       `json:"memo"`
}

type wrappedMsg struct {
	Type  string     `json:"type"`
	Value models.Msg `json:"value"`
}

type stdFee struct {
	Amount []models.Coin `json:"amount"`
	Gas    string        `json:"gas"`
}

// Sign resolves the account state, assembles the unsigned transaction and
// delegates signature production to the Signer. A sequence override in opts
// takes precedence over the on-chain value and is not validated.
func (c *LCDClient) Sign(ctx context.Context, msgs []models.Msg, opts models.SignOptions) (models.SignedTx, error) {
	accountNumber, sequence, err := c.account(ctx, c.SignerAddress())
	if err != nil {
		return nil, fmt.Errorf("failed to query signer account: %w", err)
	}
	if opts.Sequence != nil {
		sequence = *opts.Sequence
	}

	gas := opts.Gas
	if gas == 0 {
		gas = 2_000_000
	}

	wrapped := make([]wrappedMsg, len(msgs))
	for i, msg := range msgs {
		wrapped[i] = wrappedMsg{Type: msg.MsgType(), Value: msg}
	}

	tx, err := json.Marshal(unsignedTx{
		Msgs: wrapped,
		Fee: stdFee{
			Amount: []models.Coin{c.fee(gas, opts.FeeDenom)},
			Gas:    strconv.FormatUint(gas, 10),
		},
		Memo: opts.Memo,
	})
	if err != nil {
		return nil, err
	}

	return c.signer.Sign(ctx, SignRequest{
		Tx:            tx,
		ChainID:       c.network.ChainID,
		AccountNumber: accountNumber,
		Sequence:      sequence,
	})
}

// fee derives the fee coin from the gas limit at the network's gas price.
func (c *LCDClient) fee(gas uint64, denom string) models.Coin {
	amount := uint64(math.Ceil(float64(gas) * defaultGasPrice))
	return models.Coin{
		Denom:  denom,
		Amount: strconv.FormatUint(amount, 10),
	}
}

const defaultGasPrice = 0.15

// Broadcast submits a signed transaction in sync mode: the response reports
// admission to the pending pool, not inclusion.
func (c *LCDClient) Broadcast(ctx context.Context, tx models.SignedTx) (*models.BroadcastResult, error) {
	body, err := json.Marshal(map[string]json.RawMessage{
		"tx":   json.RawMessage(tx),
		"mode": json.RawMessage(`"sync"`),
	})
	if err != nil {
		return nil, err
	}

	data, status, err := c.do(ctx, http.MethodPost, "/txs", body)
	if err != nil {
		return nil, fmt.Errorf("broadcast request failed: %w", err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("broadcast returned HTTP %d: %s", status, data)
	}

	var result models.BroadcastResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode broadcast response: %w", err)
	}

	c.log.Debug("broadcast accepted", "txhash", result.TxHash, "code", result.Code)
	return &result, nil
}

// QueryTx looks up a transaction by hash. (nil, false, nil) means the ledger
// does not know the transaction yet.
func (c *LCDClient) QueryTx(ctx context.Context, txHash string) (*models.TxResult, bool, error) {
	data, status, err := c.do(ctx, http.MethodGet, "/txs/"+txHash, nil)
	if err != nil {
		return nil, false, fmt.Errorf("tx query failed: %w", err)
	}
	if status == http.StatusNotFound {
		return nil, false, nil
	}
	if status != http.StatusOK {
		return nil, false, fmt.Errorf("tx query returned HTTP %d: %s", status, data)
	}

	var result models.TxResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, false, fmt.Errorf("failed to decode tx query response: %w", err)
	}

	return &result, true, nil
}

// Sequence returns the account's current on-chain sequence number.
func (c *LCDClient) Sequence(ctx context.Context, account string) (uint64, error) {
	_, sequence, err := c.account(ctx, account)
	return sequence, err
}

// account fetches the account number and sequence for an address.
func (c *LCDClient) account(ctx context.Context, address string) (accountNumber, sequence uint64, err error) {
	data, status, err := c.do(ctx, http.MethodGet, "/auth/accounts/"+address, nil)
	if err != nil {
		return 0, 0, err
	}
	if status != http.StatusOK {
		return 0, 0, fmt.Errorf("account query returned HTTP %d: %s", status, data)
	}

	var response struct {
		Result struct {
			Value struct {
				AccountNumber string `json:"account_number"`
				Sequence      string `json:"sequence"`
			} `json:"value"`
		} `json:"result"`
	}
	if err := json.Unmarshal(data, &response); err != nil {
		return 0, 0, fmt.Errorf("failed to decode account response: %w", err)
	}

	accountNumber, err = strconv.ParseUint(response.Result.Value.AccountNumber, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid account number %q: %w", response.Result.Value.AccountNumber, err)
	}
	// An account that has never signed reports an empty sequence
	if response.Result.Value.Sequence != "" {
		sequence, err = strconv.ParseUint(response.Result.Value.Sequence, 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid sequence %q: %w", response.Result.Value.Sequence, err)
		}
	}

	return accountNumber, sequence, nil
}

// do performs one HTTP round trip and returns the body and status code.
func (c *LCDClient) do(ctx context.Context, method, path string, body []byte) ([]byte, int, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.network.LCDURL+path, reader)
	if err != nil {
		return nil, 0, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}

	return data, resp.StatusCode, nil
}

// Ensure the adapter implements the interface
var _ usecase.LedgerClient = (*LCDClient)(nil)
