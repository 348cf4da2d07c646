// Package di provides dependency injection configuration for the library client.
package di

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/library-client/internal/api"
	"github.com/listenupapp/library-client/internal/config"
	"github.com/listenupapp/library-client/internal/di/providers"
	"github.com/listenupapp/library-client/internal/logger"
	"github.com/listenupapp/library-client/internal/service"
	"github.com/listenupapp/library-client/internal/session"
	"github.com/listenupapp/library-client/internal/uistore"
)

// NewContainer creates and configures the DI container with all providers.
// args are the command-line arguments, without the program name.
func NewContainer(args []string) *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.ProvideValue(injector, providers.Args(args))
	do.Provide(injector, providers.ProvideLoadResult)
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Session layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideTokenStore)
	do.Provide(injector, providers.ProvideNavigator)

	// Data access layer
	do.Provide(injector, providers.ProvideBackend)
	do.Provide(injector, providers.ProvideClient)

	// UI state and services
	do.Provide(injector, providers.ProvideUIStore)
	do.Provide(injector, providers.ProvideCatalogService)
	do.Provide(injector, providers.ProvideCheckoutService)

	return injector
}

// Bootstrap initializes every service so configuration and storage errors
// surface at startup rather than on first use.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*logger.Logger](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[session.TokenStore](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[session.Navigator](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.BackendHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*api.Client](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*uistore.Store](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*service.CatalogService](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*service.CheckoutService](injector); err != nil {
		return err
	}
	return nil
}
