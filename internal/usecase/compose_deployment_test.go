package usecase_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Anchor-Protocol/terrariums/internal/config"
	"github.com/Anchor-Protocol/terrariums/internal/domain"
	"github.com/Anchor-Protocol/terrariums/internal/domain/models"
	"github.com/Anchor-Protocol/terrariums/internal/usecase"
)

func writePlan(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deploy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadComposePlan(t *testing.T) {
	t.Run("parses steps and sequence start", func(t *testing.T) {
		path := writePlan(t, `
sequence_start: 42
steps:
  - contract: oracle
    init:
      owner: terra1owner
  - contract: vault
    label: Main vault
    admin: terra1admin
    skip_build: true
`)

		plan, err := usecase.LoadComposePlan(path)
		require.NoError(t, err)

		require.NotNil(t, plan.SequenceStart)
		assert.Equal(t, uint64(42), *plan.SequenceStart)
		require.Len(t, plan.Steps, 2)
		assert.Equal(t, "oracle", plan.Steps[0].Contract)
		assert.Equal(t, "terra1owner", plan.Steps[0].Init["owner"])
		assert.Equal(t, "Main vault", plan.Steps[1].Label)
		assert.True(t, plan.Steps[1].SkipBuild)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := usecase.LoadComposePlan("/nonexistent/deploy.yaml")
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writePlan(t, "steps: [unclosed")
		_, err := usecase.LoadComposePlan(path)
		assert.Error(t, err)
	})
}

// pipelineDeps bundles the mocks behind a fully wired deployment pipeline.
type pipelineDeps struct {
	cfg       *config.RuntimeConfig
	artifacts *MockArtifactBuilder
	client    *MockLedgerClient
	waiter    *MockInclusionWaiter
	refs      *MockReferenceStore

	// storeCodeSequences and instantiateSequences record the sequence carried
	// by each sign call of that message kind, in broadcast order
	storeCodeSequences   []uint64
	instantiateSequences []uint64
}

const pipelineRawLog = `[{"msg_index":0,"log":"","events":[` +
	`{"type":"store_code","attributes":[{"key":"code_id","value":"42"}]},` +
	`{"type":"instantiate_contract","attributes":[{"key":"_contract_address","value":"terra1contract"}]}]}]`

func newPipelineDeps(t *testing.T, contracts ...string) *pipelineDeps {
	t.Helper()

	deps := &pipelineDeps{
		cfg:       testConfig(contracts...),
		artifacts: new(MockArtifactBuilder),
		client:    new(MockLedgerClient),
		waiter:    new(MockInclusionWaiter),
		refs:      new(MockReferenceStore),
	}

	dir := t.TempDir()
	for _, name := range contracts {
		path := filepath.Join(dir, name+".wasm")
		require.NoError(t, os.WriteFile(path, []byte("\x00asm"), 0644))
		deps.artifacts.On("ArtifactPath", name).Return(path)
		deps.artifacts.On("Build", mock.Anything, name).Return(nil)
		deps.artifacts.On("Optimize", mock.Anything, name).Return(nil)
	}

	deps.client.On("SignerAddress").Return("terra1deployer")
	deps.client.On("Sequence", mock.Anything, "terra1deployer").Return(uint64(3), nil)
	deps.client.On("Sign", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			msgs := args.Get(1).([]models.Msg)
			opts := args.Get(2).(models.SignOptions)
			if opts.Sequence == nil {
				return
			}
			switch msgs[0].(type) {
			case models.StoreCodeMsg, models.MigrateCodeMsg:
				deps.storeCodeSequences = append(deps.storeCodeSequences, *opts.Sequence)
			case models.InstantiateMsg:
				deps.instantiateSequences = append(deps.instantiateSequences, *opts.Sequence)
			}
		}).
		Return(models.SignedTx(`{}`), nil)
	deps.client.On("Broadcast", mock.Anything, mock.Anything).
		Return(&models.BroadcastResult{TxHash: "TX"}, nil)

	deps.waiter.On("WaitForInclusion", mock.Anything, "TX").
		Return(&models.TxResult{TxHash: "TX", RawLog: pipelineRawLog}, nil)

	deps.refs.On("CodeID", "testnet", mock.Anything).Return("42", true)
	deps.refs.On("SetCodeID", "testnet", mock.Anything, "42").Return()
	deps.refs.On("SetAddress", "testnet", mock.Anything, "terra1contract").Return()
	deps.refs.On("SaveRefs", mock.Anything).Return(nil)

	return deps
}

func (d *pipelineDeps) compose() *usecase.ComposeDeployment {
	resolver := usecase.NewResolveContract(d.cfg, nil)
	build := usecase.NewBuildContract(resolver, d.artifacts)
	storeCode := usecase.NewStoreCode(d.cfg, resolver, d.artifacts, d.client, d.waiter, d.refs)
	instantiate := usecase.NewInstantiate(d.cfg, resolver, d.client, d.waiter, d.refs)
	deploy := usecase.NewDeployContract(build, storeCode, instantiate)
	return usecase.NewComposeDeployment(d.cfg, deploy)
}

func TestComposeDeployment(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects plans with unknown contracts before deploying", func(t *testing.T) {
		deps := newPipelineDeps(t, "vault")

		path := writePlan(t, `
steps:
  - contract: vault
  - contract: unknown
`)

		_, err := deps.compose().Run(ctx, usecase.ComposeDeploymentParams{PlanPath: path})
		assert.ErrorIs(t, err, domain.ErrContractNotConfigured)
		deps.client.AssertNotCalled(t, "Broadcast", mock.Anything, mock.Anything)
	})

	t.Run("rejects empty plans", func(t *testing.T) {
		deps := newPipelineDeps(t, "vault")

		path := writePlan(t, "steps: []")

		_, err := deps.compose().Run(ctx, usecase.ComposeDeploymentParams{PlanPath: path})
		var cfgErr *domain.ConfigErr
		require.ErrorAs(t, err, &cfgErr)
	})

	t.Run("deploys steps strictly in order", func(t *testing.T) {
		deps := newPipelineDeps(t, "oracle", "vault")

		path := writePlan(t, `
steps:
  - contract: oracle
    init:
      owner: terra1owner
  - contract: vault
`)

		result, err := deps.compose().Run(ctx, usecase.ComposeDeploymentParams{PlanPath: path})
		require.NoError(t, err)
		require.Len(t, result.Deployed, 2)
		assert.Equal(t, "oracle", result.Deployed[0].Contract)
		assert.Equal(t, "vault", result.Deployed[1].Contract)
		assert.Equal(t, "42", result.Deployed[0].CodeID)
		assert.Equal(t, "terra1contract", result.Deployed[0].Address)
	})

	t.Run("allocates manual sequences in increasing order", func(t *testing.T) {
		deps := newPipelineDeps(t, "oracle", "vault")

		path := writePlan(t, `
sequence_start: 10
steps:
  - contract: oracle
    skip_build: true
  - contract: vault
    skip_build: true
`)

		result, err := deps.compose().Run(ctx, usecase.ComposeDeploymentParams{PlanPath: path})
		require.NoError(t, err)
		require.Len(t, result.Deployed, 2)

		// Every broadcast consumes one sequence: each step signs its
		// store-code with one value and its instantiate with the next, so
		// two steps from 10 use 10..13. The chain is never asked for the
		// current sequence.
		assert.Equal(t, []uint64{10, 12}, deps.storeCodeSequences)
		assert.Equal(t, []uint64{11, 13}, deps.instantiateSequences)
		deps.client.AssertNotCalled(t, "Sequence", mock.Anything, mock.Anything)
	})

	t.Run("manual sequences never collide across a step's transactions", func(t *testing.T) {
		deps := newPipelineDeps(t, "oracle", "vault")

		path := writePlan(t, `
sequence_start: 6
steps:
  - contract: oracle
    skip_build: true
  - contract: vault
    skip_build: true
`)

		_, err := deps.compose().Run(ctx, usecase.ComposeDeploymentParams{PlanPath: path})
		require.NoError(t, err)

		seen := map[uint64]bool{}
		for _, seq := range append(deps.storeCodeSequences, deps.instantiateSequences...) {
			assert.False(t, seen[seq], "sequence %d signed twice", seq)
			seen[seq] = true
		}
		assert.Len(t, seen, 4)
	})
}
