package adapters

import (
	"github.com/google/wire"

	"github.com/Anchor-Protocol/terrariums/internal/adapters/interactive"
	"github.com/Anchor-Protocol/terrariums/internal/adapters/ledger"
	"github.com/Anchor-Protocol/terrariums/internal/adapters/refs"
	"github.com/Anchor-Protocol/terrariums/internal/adapters/toolchain"
	"github.com/Anchor-Protocol/terrariums/internal/usecase"
)

// RefsSet provides the filesystem reference store
var RefsSet = wire.NewSet(
	refs.NewStoreAdapter,
	wire.Bind(new(usecase.ReferenceStore), new(*refs.StoreAdapter)),
)

// LedgerSet provides the LCD ledger client, CLI signer and inclusion waiter
var LedgerSet = wire.NewSet(
	ledger.NewCLISigner,
	wire.Bind(new(ledger.Signer), new(*ledger.CLISigner)),

	ledger.NewLCDClient,
	wire.Bind(new(usecase.LedgerClient), new(*ledger.LCDClient)),

	ledger.NewWaiterAdapter,
	wire.Bind(new(usecase.InclusionWaiter), new(*ledger.WaiterAdapter)),
)

// ToolchainSet provides the cargo/optimizer toolchain
var ToolchainSet = wire.NewSet(
	toolchain.NewCargoAdapter,
	wire.Bind(new(usecase.ArtifactBuilder), new(*toolchain.CargoAdapter)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.ContractSelector), new(*interactive.SelectorAdapter)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	RefsSet,
	LedgerSet,
	ToolchainSet,
	InteractiveSet,
)
