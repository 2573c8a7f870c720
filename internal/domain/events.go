package domain

import (
	"encoding/json"
	"fmt"
)

// EventAttribute is a single key/value pair emitted by a ledger event.
type EventAttribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Event is a typed bag of attributes emitted during transaction execution.
// Events are sourced from the ledger and never constructed here outside
// of tests.
type Event struct {
	Type       string           `json:"type"`
	Attributes []EventAttribute `json:"attributes"`
}

// MsgLog is the per-message entry of a transaction's raw log.
type MsgLog struct {
	MsgIndex int     `json:"msg_index"`
	Log      string  `json:"log"`
	Events   []Event `json:"events"`
}

// EventQuery names one (event type, attribute key) pair to look for in a
// raw log.
type EventQuery struct {
	Type    string
	AttrKey string
}

func (q EventQuery) String() string {
	return fmt.Sprintf("%s.%s", q.Type, q.AttrKey)
}

// Candidate lists for the results this tool extracts. Ordered: the first
// match wins. Event names have drifted across ledger versions, which is why
// instantiate carries a fallback entry.
var (
	StoreCodeQueries = []EventQuery{
		{Type: "store_code", AttrKey: "code_id"},
	}

	InstantiateQueries = []EventQuery{
		{Type: "instantiate_contract", AttrKey: "_contract_address"},
		{Type: "instantiate", AttrKey: "_contract_address"},
	}
)

// ExtractEventAttribute parses rawLog as a structured per-message event list
// and returns the value of the first attribute matching any of the queries,
// tried in order across all message logs.
//
// Failure modes are distinguished: a RawLogSyntaxErr means rawLog was not
// well-formed event data (malformed transaction log), an EventNotFoundErr
// means the log was valid but held none of the expected events (the
// transaction may still have succeeded).
func ExtractEventAttribute(rawLog string, queries []EventQuery) (string, error) {
	var logs []MsgLog
	if err := json.Unmarshal([]byte(rawLog), &logs); err != nil {
		return "", &RawLogSyntaxErr{RawLog: rawLog, Err: err}
	}

	for _, q := range queries {
		for _, msgLog := range logs {
			for _, event := range msgLog.Events {
				if event.Type != q.Type {
					continue
				}
				for _, attr := range event.Attributes {
					if attr.Key == q.AttrKey {
						return attr.Value, nil
					}
				}
			}
		}
	}

	return "", &EventNotFoundErr{RawLog: rawLog, Queries: queries}
}
