package providers

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/library-client/internal/config"
	"github.com/listenupapp/library-client/internal/logger"
	"github.com/listenupapp/library-client/internal/session"
	"github.com/listenupapp/library-client/internal/store"
)

// StoreHandle wraps the on-disk session store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore opens the on-disk store that keeps the session token.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	db, err := store.New(cfg.Session.Path, log.Component("store"))
	if err != nil {
		return nil, err
	}

	log.Debug("session store opened", "path", cfg.Session.Path)
	return &StoreHandle{Store: db}, nil
}

// ProvideTokenStore provides the persistent token store.
func ProvideTokenStore(i do.Injector) (session.TokenStore, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return session.NewPersistentTokens(storeHandle.Store, log.Component("session")), nil
}

// ProvideNavigator provides the navigator used when a session ends.
func ProvideNavigator(i do.Injector) (session.Navigator, error) {
	log := do.MustInvoke[*logger.Logger](i)
	return session.NewLogNavigator(log.Component("navigator")), nil
}
