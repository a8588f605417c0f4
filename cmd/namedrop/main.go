package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/custodia-labs/namedrop/internal/acceptance"
	"github.com/custodia-labs/namedrop/internal/adapters/driven/annotator"
	"github.com/custodia-labs/namedrop/internal/adapters/driven/annotator/gazetteer"
	"github.com/custodia-labs/namedrop/internal/adapters/driven/classifier"
	"github.com/custodia-labs/namedrop/internal/adapters/driven/config/file"
	"github.com/custodia-labs/namedrop/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/namedrop/internal/adapters/driving/cli"
	"github.com/custodia-labs/namedrop/internal/core/services"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	configDir, err := file.DefaultDir()
	if err != nil {
		return err
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("reading settings: %w", err)
	}

	gazetteerPath := settings.Gazetteer
	if gazetteerPath == "" {
		gazetteerPath = filepath.Join(configDir, "gazetteer.toml")
	}
	gaz, err := gazetteer.LoadOrEmpty(gazetteerPath)
	if err != nil {
		return fmt.Errorf("loading gazetteer: %w", err)
	}

	policy, err := acceptance.PolicyFor(settings.Policy)
	if err != nil {
		return err
	}

	store, err := sqlite.NewStore(filepath.Join(configDir, "data"))
	if err != nil {
		return fmt.Errorf("opening span store: %w", err)
	}
	defer store.Close()

	annotationService := services.NewAnnotationService(
		annotator.NewRateLimited(gaz, settings.Rate),
		classifier.NewTypeTable(settings.Types),
		policy,
		store.SpanStore(),
	)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Annotation:    annotationService,
		Span:          services.NewSpanService(store.SpanStore()),
		Settings:      settingsService,
		ConfigWatcher: configStore,
	})

	return cli.Execute(ctx)
}
