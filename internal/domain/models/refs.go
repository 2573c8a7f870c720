package models

// ContractRef holds the deployment outputs recorded for one contract on one
// network. CodeID and ContractAddress each hold at most the latest value;
// storing a new one overwrites the prior.
type ContractRef struct {
	CodeID          string `json:"codeId,omitempty"`
	ContractAddress string `json:"contractAddress,omitempty"`
}

// RefSnapshot is the full in-memory reference table across all networks,
// keyed network -> contract name. It is the unit of persistence and is owned
// exclusively by the reference store.
type RefSnapshot map[string]map[string]*ContractRef

// Clone returns a deep copy so callers cannot mutate store-owned state.
func (s RefSnapshot) Clone() RefSnapshot {
	out := make(RefSnapshot, len(s))
	for network, contracts := range s {
		out[network] = make(map[string]*ContractRef, len(contracts))
		for name, ref := range contracts {
			clone := *ref
			out[network][name] = &clone
		}
	}
	return out
}
