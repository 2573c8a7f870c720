package toolchain

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/creack/pty"

	"github.com/Anchor-Protocol/terrariums/internal/config"
	"github.com/Anchor-Protocol/terrariums/internal/usecase"
)

const (
	defaultOptimizerImage      = "cosmwasm/workspace-optimizer:0.12.6"
	defaultOptimizerImageArm64 = "cosmwasm/workspace-optimizer-arm64:0.12.6"
)

// CargoAdapter drives the external cargo build and wasm optimizer
// toolchains with streaming output.
type CargoAdapter struct {
	log *slog.Logger
	cfg *config.RuntimeConfig
}

// NewCargoAdapter creates a new toolchain adapter
func NewCargoAdapter(cfg *config.RuntimeConfig, log *slog.Logger) *CargoAdapter {
	return &CargoAdapter{
		log: log.With("component", "CargoAdapter"),
		cfg: cfg,
	}
}

// ArtifactPath returns the deterministic optimized-bytecode path for a
// contract. On arm64 hosts the optimizer emits an architecture-suffixed
// file.
func (a *CargoAdapter) ArtifactPath(contract string) string {
	name := contract
	if runtime.GOARCH == "arm64" {
		name += "-aarch64"
	}
	return filepath.Join(a.cfg.ArtifactsDir(), name+".wasm")
}

// Build compiles the contract crate to wasm.
func (a *CargoAdapter) Build(ctx context.Context, contract string) error {
	srcDir := a.sourceDir(contract)
	if _, err := os.Stat(srcDir); err != nil {
		return fmt.Errorf("contract source directory %s: %w", srcDir, err)
	}

	return a.run(ctx, srcDir, "cargo", "build", "--release", "--lib", "--target", "wasm32-unknown-unknown")
}

// Optimize produces the optimized artifact, either via the contract's
// configured command template or the default containerized optimizer for
// the host architecture.
func (a *CargoAdapter) Optimize(ctx context.Context, contract string) error {
	entry := a.cfg.Terrarium.Contracts[contract]

	if entry.Optimize != "" {
		rendered, err := RenderOptimizeCommand(entry.Optimize, contract, a.cfg.ProjectRoot)
		if err != nil {
			return err
		}
		argv := strings.Fields(rendered)
		if len(argv) == 0 {
			return fmt.Errorf("optimize command for %s rendered empty", contract)
		}
		return a.run(ctx, a.cfg.ProjectRoot, argv[0], argv[1:]...)
	}

	image := defaultOptimizerImage
	if runtime.GOARCH == "arm64" {
		image = defaultOptimizerImageArm64
	}

	return a.run(ctx, a.cfg.ProjectRoot, "docker", "run", "--rm",
		"-v", a.cfg.ProjectRoot+":/code",
		"--mount", "type=volume,source=terrariums_cache,target=/code/target",
		"--mount", "type=volume,source=registry_cache,target=/usr/local/cargo/registry",
		image,
	)
}

func (a *CargoAdapter) sourceDir(contract string) string {
	src := a.cfg.Terrarium.Contracts[contract].Src
	if src == "" {
		src = filepath.Join("contracts", contract)
	}
	if filepath.IsAbs(src) {
		return src
	}
	return filepath.Join(a.cfg.ProjectRoot, src)
}

// run executes a toolchain command through a pty so tool output keeps its
// colors, echoing to stdout in debug mode and buffering otherwise.
func (a *CargoAdapter) run(ctx context.Context, dir, name string, args ...string) error {
	a.log.Debug("running toolchain command", "cmd", name, "args", args, "dir", dir)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	ptyFile, err := pty.Start(cmd)
	if err != nil {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}
	defer func() {
		_ = ptyFile.Close()
	}()

	var output bytes.Buffer
	var sink io.Writer = &output
	if a.cfg.Debug {
		sink = io.MultiWriter(&output, os.Stdout)
	}
	// The pty read returns an error once the child exits; the copy is done
	// at that point
	_, _ = io.Copy(sink, ptyFile)

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("%s failed: %w\nOutput: %s", name, err, output.String())
	}

	return nil
}

// Ensure the adapter implements the interface
var _ usecase.ArtifactBuilder = (*CargoAdapter)(nil)
