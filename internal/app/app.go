package app

import (
	"github.com/Anchor-Protocol/terrariums/internal/config"
	"github.com/Anchor-Protocol/terrariums/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig

	// Use cases
	BuildContract     *usecase.BuildContract
	StoreCode         *usecase.StoreCode
	Instantiate       *usecase.Instantiate
	DeployContract    *usecase.DeployContract
	ComposeDeployment *usecase.ComposeDeployment
	ListRefs          *usecase.ListRefs
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	buildContract *usecase.BuildContract,
	storeCode *usecase.StoreCode,
	instantiate *usecase.Instantiate,
	deployContract *usecase.DeployContract,
	composeDeployment *usecase.ComposeDeployment,
	listRefs *usecase.ListRefs,
) (*App, error) {
	return &App{
		Config:            cfg,
		BuildContract:     buildContract,
		StoreCode:         storeCode,
		Instantiate:       instantiate,
		DeployContract:    deployContract,
		ComposeDeployment: composeDeployment,
		ListRefs:          listRefs,
	}, nil
}
