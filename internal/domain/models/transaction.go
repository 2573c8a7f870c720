package models

import (
	"encoding/json"
	"time"
)

// Coin is a ledger fee or funds denomination/amount pair.
type Coin struct {
	Denom  string `json:"denom"`
	Amount string `json:"amount"`
}

// Msg is a single ledger message carried by a transaction. Only the message
// types this tool submits are modeled.
type Msg interface {
	MsgType() string
}

// StoreCodeMsg uploads new contract bytecode.
type StoreCodeMsg struct {
	Sender       string `json:"sender"`
	WASMByteCode []byte `json:"wasm_byte_code"`
}

func (StoreCodeMsg) MsgType() string { return "wasm/MsgStoreCode" }

// MigrateCodeMsg replaces the bytecode stored under an existing code ID.
type MigrateCodeMsg struct {
	Sender       string `json:"sender"`
	CodeID       uint64 `json:"code_id"`
	WASMByteCode []byte `json:"wasm_byte_code"`
}

func (MigrateCodeMsg) MsgType() string { return "wasm/MsgMigrateCode" }

// InstantiateMsg creates a live contract instance from a stored code ID.
type InstantiateMsg struct {
	Sender  string          `json:"sender"`
	Admin   string          `json:"admin,omitempty"`
	CodeID  uint64          `json:"code_id"`
	Label   string          `json:"label"`
	InitMsg json.RawMessage `json:"init_msg"`
	Funds   []Coin          `json:"init_coins,omitempty"`
}

func (InstantiateMsg) MsgType() string { return "wasm/MsgInstantiateContract" }

// SignOptions control transaction signing.
type SignOptions struct {
	// Sequence overrides the signer's on-chain account sequence when set.
	// Callers issuing several transactions from one account without waiting
	// for finality must allocate these in increasing order themselves; the
	// value is deliberately not validated against the current sequence.
	Sequence *uint64

	// FeeDenom for the transaction fee; the network default (or "uluna")
	// applies when empty.
	FeeDenom string

	// Gas limit; the network default applies when zero.
	Gas uint64

	Memo string
}

// SignedTx is an opaque signed transaction ready for broadcast.
type SignedTx []byte

// BroadcastResult is the node's synchronous answer to a broadcast. A zero
// Code only means the transaction entered the pending pool; it says nothing
// about eventual inclusion.
type BroadcastResult struct {
	TxHash string `json:"txhash"`
	Code   uint32 `json:"code"`
	RawLog string `json:"raw_log"`
}

// PendingTx is a broadcast transaction awaiting inclusion. Ephemeral, never
// persisted.
type PendingTx struct {
	TxHash      string
	SubmittedAt time.Time
}

// TxResult is the execution result of an included transaction.
type TxResult struct {
	TxHash  string `json:"txhash"`
	Height  int64  `json:"height,string"`
	Code    uint32 `json:"code"`
	RawLog  string `json:"raw_log"`
	GasUsed int64  `json:"gas_used,string"`
}
