// Package main provides a command-line catalog browser on top of the library client.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/listenupapp/library-client/internal/di"
	"github.com/listenupapp/library-client/internal/di/providers"
	"github.com/listenupapp/library-client/internal/logger"
	"github.com/listenupapp/library-client/internal/service"
	"github.com/listenupapp/library-client/internal/uistore"
)

func main() {
	// Create DI container
	injector := di.NewContainer(os.Args[1:])

	// Bootstrap all services
	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap client: %v\n", err)
		os.Exit(1)
	}

	log := do.MustInvoke[*logger.Logger](injector)
	loaded := do.MustInvoke[*providers.LoadResult](injector)

	code := run(injector, log, loaded.Rest)

	// The DI container shuts down the backend and session store in reverse order.
	if err := injector.Shutdown(); err != nil {
		log.Error("Shutdown error", "error", err)
	}
	os.Exit(code)
}

func run(injector do.Injector, log *logger.Logger, args []string) int {
	fs := flag.NewFlagSet("browse", flag.ContinueOnError)
	search := fs.String("search", "", "Case-insensitive text matched against title and author")
	category := fs.String("category", "", "Category id to restrict the listing to")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	ui := do.MustInvoke[*uistore.Store](injector)
	ui.SetSearchQuery(*search)
	if *category != "" {
		ui.SetSelectedCategory(*category)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	catalog := do.MustInvoke[*service.CatalogService](injector)
	books, err := catalog.Browse(ctx)
	if err != nil {
		log.WithError(err).Error("browse failed")
		return 1
	}

	for _, b := range books {
		fmt.Printf("%s\t%s\t%s\t%d/%d\n", b.ID, b.Title, b.Author.Name, b.Availability.Available, b.Availability.Total)
	}
	log.WithFields(map[string]any{"count": len(books), "search": *search, "category": *category}).Debug("browse done")
	return 0
}
