package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// TerrariumFile is the project configuration file name.
const TerrariumFile = "terrarium.toml"

// TerrariumConfig is the parsed terrarium.toml.
type TerrariumConfig struct {
	Contracts map[string]ContractConfig `toml:"contracts"`
	Networks  map[string]NetworkEntry   `toml:"networks"`
	Refs      RefsEntry                 `toml:"refs"`
}

// ContractConfig describes one contract crate in the workspace.
type ContractConfig struct {
	// Src is the contract source directory relative to the project root
	Src string `toml:"src"`

	// Optimize is an optional command template run instead of the default
	// containerized optimizer. Only {{.Contract}} and {{.Workspace}}
	// placeholders are substituted; the rendered string is executed directly,
	// never through a shell.
	Optimize string `toml:"optimize"`
}

// NetworkEntry is one deployment target in terrarium.toml.
type NetworkEntry struct {
	ChainID       string `toml:"chain_id"`
	LCD           string `toml:"lcd"`
	FeeDenom      string `toml:"fee_denom"`
	Gas           uint64 `toml:"gas"`
	Signer        string `toml:"signer"`
	SignerAddress string `toml:"signer_address"`
}

// RefsEntry configures reference file persistence.
type RefsEntry struct {
	Path   string   `toml:"path"`
	Copies []string `toml:"copies"`
}

// LoadTerrariumConfig loads and parses terrarium.toml from the project root.
func LoadTerrariumConfig(projectRoot string) (*TerrariumConfig, error) {
	path := filepath.Join(projectRoot, TerrariumFile)

	var cfg TerrariumConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", TerrariumFile, err)
	}

	// Expand environment variables in signer fields so keys never live in
	// the checked-in file
	for name, network := range cfg.Networks {
		network.Signer = os.ExpandEnv(network.Signer)
		network.SignerAddress = os.ExpandEnv(network.SignerAddress)
		cfg.Networks[name] = network
	}

	return &cfg, nil
}

// ResolveNetwork resolves a network name from terrarium.toml into a
// NetworkConfig.
func (c *TerrariumConfig) ResolveNetwork(name string) (*NetworkConfig, error) {
	entry, ok := c.Networks[name]
	if !ok {
		return nil, fmt.Errorf("network '%s' not found in %s [networks]", name, TerrariumFile)
	}

	return &NetworkConfig{
		Name:          name,
		ChainID:       entry.ChainID,
		LCDURL:        entry.LCD,
		FeeDenom:      entry.FeeDenom,
		Gas:           entry.Gas,
		SignerKey:     entry.Signer,
		SignerAddress: entry.SignerAddress,
	}, nil
}

// ContractNames returns the configured contract names, unsorted.
func (c *TerrariumConfig) ContractNames() []string {
	names := make([]string, 0, len(c.Contracts))
	for name := range c.Contracts {
		names = append(names, name)
	}
	return names
}
