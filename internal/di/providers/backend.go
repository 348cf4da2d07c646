package providers

import (
	"fmt"

	"github.com/samber/do/v2"

	"github.com/listenupapp/library-client/internal/backend"
	"github.com/listenupapp/library-client/internal/backend/fixture"
	"github.com/listenupapp/library-client/internal/backend/remote"
	"github.com/listenupapp/library-client/internal/config"
	"github.com/listenupapp/library-client/internal/logger"
)

// BackendHandle wraps the selected backend with shutdown capability.
type BackendHandle struct {
	backend.Backend
	shutdown func() error
}

// Shutdown implements do.Shutdownable.
func (h *BackendHandle) Shutdown() error {
	return h.shutdown()
}

// ProvideBackend creates the backend named by the configuration. The choice
// is made once, here.
func ProvideBackend(i do.Injector) (*BackendHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	switch cfg.API.Backend {
	case config.BackendFixture:
		b, err := fixture.New(fixture.Options{
			Delay:       cfg.Fixture.Delay,
			AuthorTotal: &cfg.Fixture.AuthorTotal,
			TokenKey:    cfg.Fixture.TokenKey,
			Logger:      log.Component("fixture"),
		})
		if err != nil {
			return nil, err
		}
		log.Info("using fixture backend", "delay", cfg.Fixture.Delay)
		return &BackendHandle{Backend: b, shutdown: b.Shutdown}, nil

	case config.BackendRemote:
		b, err := remote.New(remote.Options{
			BaseURL: cfg.API.BaseURL,
			RPS:     cfg.API.RateLimitRPS,
			Burst:   cfg.API.RateLimitBurst,
			Logger:  log.Component("remote"),
		})
		if err != nil {
			return nil, err
		}
		log.Info("using remote backend", "base_url", cfg.API.BaseURL)
		return &BackendHandle{Backend: b, shutdown: b.Shutdown}, nil

	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.API.Backend)
	}
}
