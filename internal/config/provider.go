package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	// Load .env before terrarium.toml so ${VAR} expansion in signer fields
	// sees it
	envFile := filepath.Join(projectRoot, ".env")
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	terrarium, err := LoadTerrariumConfig(projectRoot)
	if err != nil {
		return nil, err
	}

	cfg := &RuntimeConfig{
		ProjectRoot:    projectRoot,
		DataDir:        filepath.Join(projectRoot, ".terrariums"),
		Terrarium:      terrarium,
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		Timeout:        v.GetDuration("timeout"),
	}

	// Refs file: terrarium.toml wins over defaults; copy targets are
	// resolved relative to the project root
	refsPath := terrarium.Refs.Path
	if refsPath == "" {
		refsPath = "refs.terrarium.json"
	}
	cfg.RefsPath = absJoin(projectRoot, refsPath)
	for _, copyPath := range terrarium.Refs.Copies {
		cfg.RefsCopies = append(cfg.RefsCopies, absJoin(projectRoot, copyPath))
	}

	if networkName := v.GetString("network"); networkName != "" {
		network, err := terrarium.ResolveNetwork(networkName)
		if err != nil {
			return nil, err
		}
		cfg.Network = network
	}

	return cfg, nil
}

// FindProjectRoot walks up from the current directory to find terrarium.toml
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, TerrariumFile)); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a terrariums project (%s not found)", TerrariumFile)
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	v.SetConfigName("config.local")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, ".terrariums"))

	v.SetEnvPrefix("TERRARIUMS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	v.SetDefault("timeout", "10m")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("project_root", projectRoot)

	// Config file is optional
	_ = v.ReadInConfig()

	// Bind flags under their underscored names so lookups like
	// v.GetBool("non_interactive") see dashed flags; viper does not
	// normalize the key given to BindPFlag
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if err := v.BindPFlag(key, f); err != nil {
			panic(err)
		}
	})

	return v
}

func absJoin(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
