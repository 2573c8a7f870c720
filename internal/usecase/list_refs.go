package usecase

import (
	"context"
	"sort"

	"github.com/samber/lo"
)

// ListRefsParams contains filters for listing recorded refs
type ListRefsParams struct {
	// Network limits output to one network when non-empty
	Network string
}

// RefRow is one (network, contract) entry of the reference table
type RefRow struct {
	Network  string
	Contract string
	CodeID   string
	Address  string
}

// ListRefsResult contains the rows sorted by network then contract
type ListRefsResult struct {
	Rows []RefRow
}

// ListRefs reads the reference store snapshot for display.
type ListRefs struct {
	refs ReferenceStore
}

// NewListRefs creates a new ListRefs use case
func NewListRefs(refs ReferenceStore) *ListRefs {
	return &ListRefs{refs: refs}
}

// Run returns the recorded refs, optionally filtered by network.
func (uc *ListRefs) Run(ctx context.Context, params ListRefsParams) (*ListRefsResult, error) {
	snapshot := uc.refs.Snapshot()

	result := &ListRefsResult{}
	for _, network := range lo.Keys(snapshot) {
		if params.Network != "" && network != params.Network {
			continue
		}
		for contract, ref := range snapshot[network] {
			result.Rows = append(result.Rows, RefRow{
				Network:  network,
				Contract: contract,
				CodeID:   ref.CodeID,
				Address:  ref.ContractAddress,
			})
		}
	}

	sort.Slice(result.Rows, func(i, j int) bool {
		if result.Rows[i].Network != result.Rows[j].Network {
			return result.Rows[i].Network < result.Rows[j].Network
		}
		return result.Rows[i].Contract < result.Rows[j].Contract
	})

	return result, nil
}
