package config

import (
	"time"
)

// RuntimeConfig is the resolved per-invocation configuration assembled by
// Provider from terrarium.toml, viper and flags.
type RuntimeConfig struct {
	// ProjectRoot is the directory containing terrarium.toml
	ProjectRoot string

	// DataDir is the local state directory (.terrariums)
	DataDir string

	// Terrarium is the parsed project file
	Terrarium *TerrariumConfig

	// Network is the resolved target network, nil when no --network given
	Network *NetworkConfig

	// RefsPath is the primary reference file path
	RefsPath string

	// RefsCopies are mirror targets kept byte-identical with RefsPath
	RefsCopies []string

	Debug          bool
	NonInteractive bool
	Timeout        time.Duration
}

// ArtifactsDir returns the directory holding optimized bytecode artifacts.
func (c *RuntimeConfig) ArtifactsDir() string {
	return c.ProjectRoot + "/artifacts"
}

// NetworkConfig is one resolved deployment target.
type NetworkConfig struct {
	Name          string
	ChainID       string
	LCDURL        string
	FeeDenom      string
	Gas           uint64
	SignerKey     string
	SignerAddress string
}
