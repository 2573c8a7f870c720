package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Anchor-Protocol/terrariums/internal/config"
	"github.com/Anchor-Protocol/terrariums/internal/domain/models"
	"github.com/Anchor-Protocol/terrariums/internal/usecase"
)

// MockLedgerClient is a mock implementation of LedgerClient
type MockLedgerClient struct {
	mock.Mock
}

func (m *MockLedgerClient) SignerAddress() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockLedgerClient) Sign(ctx context.Context, msgs []models.Msg, opts models.SignOptions) (models.SignedTx, error) {
	args := m.Called(ctx, msgs, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.SignedTx), args.Error(1)
}

func (m *MockLedgerClient) Broadcast(ctx context.Context, tx models.SignedTx) (*models.BroadcastResult, error) {
	args := m.Called(ctx, tx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BroadcastResult), args.Error(1)
}

func (m *MockLedgerClient) QueryTx(ctx context.Context, txHash string) (*models.TxResult, bool, error) {
	args := m.Called(ctx, txHash)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.TxResult), args.Bool(1), args.Error(2)
}

func (m *MockLedgerClient) Sequence(ctx context.Context, account string) (uint64, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(uint64), args.Error(1)
}

// MockInclusionWaiter is a mock implementation of InclusionWaiter
type MockInclusionWaiter struct {
	mock.Mock
}

func (m *MockInclusionWaiter) WaitForInclusion(ctx context.Context, txHash string) (*models.TxResult, error) {
	args := m.Called(ctx, txHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TxResult), args.Error(1)
}

// MockReferenceStore is a mock implementation of ReferenceStore
type MockReferenceStore struct {
	mock.Mock
}

func (m *MockReferenceStore) CodeID(network, contract string) (string, bool) {
	args := m.Called(network, contract)
	return args.String(0), args.Bool(1)
}

func (m *MockReferenceStore) SetCodeID(network, contract, codeID string) {
	m.Called(network, contract, codeID)
}

func (m *MockReferenceStore) Address(network, contract string) (string, bool) {
	args := m.Called(network, contract)
	return args.String(0), args.Bool(1)
}

func (m *MockReferenceStore) SetAddress(network, contract, address string) {
	m.Called(network, contract, address)
}

func (m *MockReferenceStore) Snapshot() models.RefSnapshot {
	args := m.Called()
	return args.Get(0).(models.RefSnapshot)
}

func (m *MockReferenceStore) SaveRefs(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockArtifactBuilder is a mock implementation of ArtifactBuilder
type MockArtifactBuilder struct {
	mock.Mock
}

func (m *MockArtifactBuilder) Build(ctx context.Context, contract string) error {
	args := m.Called(ctx, contract)
	return args.Error(0)
}

func (m *MockArtifactBuilder) Optimize(ctx context.Context, contract string) error {
	args := m.Called(ctx, contract)
	return args.Error(0)
}

func (m *MockArtifactBuilder) ArtifactPath(contract string) string {
	args := m.Called(contract)
	return args.String(0)
}

// MockContractSelector is a mock implementation of ContractSelector
type MockContractSelector struct {
	mock.Mock
}

func (m *MockContractSelector) SelectContract(ctx context.Context, names []string, prompt string) (string, error) {
	args := m.Called(ctx, names, prompt)
	return args.String(0), args.Error(1)
}

// MockProgressSink records progress events
type MockProgressSink struct {
	events []usecase.ProgressEvent
	infos  []string
	errors []string
}

func (m *MockProgressSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	m.events = append(m.events, event)
}

func (m *MockProgressSink) Info(message string)  { m.infos = append(m.infos, message) }
func (m *MockProgressSink) Error(message string) { m.errors = append(m.errors, message) }

// testConfig builds a RuntimeConfig with one contract and a testnet network.
func testConfig(contracts ...string) *config.RuntimeConfig {
	entries := make(map[string]config.ContractConfig, len(contracts))
	for _, name := range contracts {
		entries[name] = config.ContractConfig{}
	}

	return &config.RuntimeConfig{
		ProjectRoot:    "/tmp/project",
		NonInteractive: true,
		Terrarium: &config.TerrariumConfig{
			Contracts: entries,
			Networks: map[string]config.NetworkEntry{
				"testnet": {ChainID: "bombay-12", LCD: "https://lcd.test", FeeDenom: "uluna"},
			},
		},
		Network: &config.NetworkConfig{
			Name:          "testnet",
			ChainID:       "bombay-12",
			LCDURL:        "https://lcd.test",
			SignerKey:     "deployer",
			SignerAddress: "terra1deployer",
		},
	}
}
