// File: internal/provider/registry/registry.go
package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"sitedeploy/internal/config"
	"sitedeploy/pkg/common"
	"sitedeploy/pkg/storage"
)

// Reports nil when cfg holds everything the provider needs, otherwise what is missing
type ProviderConfigCheck func(cfg *config.Config) error

// Builds a storage backend from the injected configuration
type ProviderInitializer func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Storage, error)

type ProviderRegistration struct {
	// One line shown in CLI help
	Description string
	ConfigCheck ProviderConfigCheck
	Initializer ProviderInitializer
}

var (
	providerRegistry = make(map[common.Provider]ProviderRegistration)
	registryMu       sync.RWMutex
)

// Allows a provider implementation package to register itself during init()
func RegisterProvider(name common.Provider, registration ProviderRegistration) {
	registryMu.Lock()
	defer registryMu.Unlock()

	normalizedName := common.ParseProvider(string(name))
	if _, exists := providerRegistry[normalizedName]; exists {
		panic(fmt.Sprintf("provider %s already registered", normalizedName))
	}

	if registration.ConfigCheck == nil {
		panic(fmt.Sprintf("provider %s registration missing ConfigCheck", normalizedName))
	}
	if registration.Initializer == nil {
		panic(fmt.Sprintf("provider %s registration missing Initializer", normalizedName))
	}

	providerRegistry[normalizedName] = registration
}

// Returns a sorted list of all registered provider names
func GetSupportedProviders() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	providers := make([]string, 0, len(providerRegistry))
	for name := range providerRegistry {
		providers = append(providers, string(name))
	}
	sort.Strings(providers)
	return providers
}

func GetRegistration(providerName common.Provider) (ProviderRegistration, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	registration, exists := providerRegistry[common.ParseProvider(string(providerName))]
	return registration, exists
}
