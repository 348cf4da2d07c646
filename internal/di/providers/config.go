// Package providers contains dependency injection providers for the library client.
package providers

import (
	"os"

	"github.com/samber/do/v2"

	"github.com/listenupapp/library-client/internal/config"
	"github.com/listenupapp/library-client/internal/logger"
)

// Args are the command-line arguments the container was created with.
type Args []string

// LoadResult is the loaded configuration plus the arguments config did not consume.
type LoadResult struct {
	Config *config.Config
	Rest   []string
}

// ProvideLoadResult loads the configuration from the container's arguments.
func ProvideLoadResult(i do.Injector) (*LoadResult, error) {
	args := do.MustInvoke[Args](i)

	cfg, rest, err := config.Load(args)
	if err != nil {
		return nil, err
	}
	return &LoadResult{Config: cfg, Rest: rest}, nil
}

// ProvideConfig provides the client configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	return do.MustInvoke[*LoadResult](i).Config, nil
}

// ProvideLogger provides the structured logger. Logs go to stderr so stdout
// stays free for command output.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development",
		Environment: cfg.App.Environment,
		Writer:      os.Stderr,
	})

	log.Debug("starting library client",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"backend", cfg.API.Backend,
	)

	return log, nil
}
