//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"

	"github.com/Anchor-Protocol/terrariums/internal/adapters"
	"github.com/Anchor-Protocol/terrariums/internal/config"
	"github.com/Anchor-Protocol/terrariums/internal/logging"
	"github.com/Anchor-Protocol/terrariums/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper) (*App, error) {
	wire.Build(
		// Configuration and logging
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewResolveContract,
		usecase.NewBuildContract,
		usecase.NewStoreCode,
		usecase.NewInstantiate,
		usecase.NewDeployContract,
		usecase.NewComposeDeployment,
		usecase.NewListRefs,

		// App
		NewApp,
	)
	return nil, nil
}
