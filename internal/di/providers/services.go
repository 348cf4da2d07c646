package providers

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/library-client/internal/api"
	"github.com/listenupapp/library-client/internal/config"
	"github.com/listenupapp/library-client/internal/logger"
	"github.com/listenupapp/library-client/internal/service"
	"github.com/listenupapp/library-client/internal/session"
	"github.com/listenupapp/library-client/internal/uistore"
)

// ProvideClient provides the data access client.
func ProvideClient(i do.Injector) (*api.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	backendHandle := do.MustInvoke[*BackendHandle](i)

	return api.New(api.Options{
		Backend:   backendHandle.Backend,
		Tokens:    do.MustInvoke[session.TokenStore](i),
		Navigator: do.MustInvoke[session.Navigator](i),
		LoginPath: cfg.Session.LoginPath,
		Timeout:   cfg.API.Timeout,
		Logger:    log.Component("api"),
	}), nil
}

// ProvideUIStore provides the UI state store.
func ProvideUIStore(i do.Injector) (*uistore.Store, error) {
	log := do.MustInvoke[*logger.Logger](i)
	return uistore.New(log.Component("uistore")), nil
}

// ProvideCatalogService provides the catalog service.
func ProvideCatalogService(i do.Injector) (*service.CatalogService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCatalogService(
		do.MustInvoke[*api.Client](i),
		do.MustInvoke[*uistore.Store](i),
		cfg.Fixture.AuthorTotal,
		log.Component("catalog"),
	), nil
}

// ProvideCheckoutService provides the checkout service.
func ProvideCheckoutService(i do.Injector) (*service.CheckoutService, error) {
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCheckoutService(
		do.MustInvoke[*api.Client](i),
		do.MustInvoke[*uistore.Store](i),
		log.Component("checkout"),
	), nil
}
