// Package main provides the CLI entrypoint for the link cleaner.
// It wires subcommands (serve, clean, tables, jwt), loads configuration, and initializes logging.
package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log"
	"os"

	"linkcleaner/internal/cleaner"
	"linkcleaner/internal/config"
	"linkcleaner/pkg/logger"
	"linkcleaner/pkg/redirect/httpprobe"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// newCleaner builds the cleaner with an HTTP prober configured from cfg.
func newCleaner(ctx context.Context, cfg *config.Config, mp metric.MeterProvider) cleaner.Cleaner {
	prober := httpprobe.New(nil, httpprobe.Options{
		Timeout:   cfg.Resolver.Timeout,
		UserAgent: cfg.Resolver.UserAgent,
	})

	opts := cleaner.NewOptions(cfg)
	opts.MeterProvider = mp
	opts.TracerProvider = otel.GetTracerProvider()

	c, err := cleaner.New(prober, opts)
	if err != nil {
		logger.Fatal(ctx, "could not create cleaner", zap.Error(err))
	}

	return c
}

// main sets up the root Cobra command, loads configuration and logging, and
// registers subcommands before executing the CLI.
func main() {
	rootCmd := &cobra.Command{
		Use:   "linkcleaner",
		Short: "Strips tracking metadata from links and resolves URL shorteners",
	}

	// there is no way to access flags before command execution in cobra.
	// configPath here is parsed using the standard flags package.
	// following line is just added to prevent errors when Cobra is parsing the flags.
	rootCmd.PersistentFlags().StringP("config", "c", "config.yml", "Config File Path")

	configPath := flag.String("c", "config.yml", "The config file path")
	flag.Parse()

	// a missing config file is fine, settings then come from the environment.
	path := *configPath
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		path = ""
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatal("could not load config file: ", err)
	}

	if err = logger.Setup(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatal("could not setup logger: ", err)
	}

	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			_ = logger.Get(ctx).Sync()

			panic(p)
		}
	}()

	rootCmd.AddCommand(
		serveCommand(cfg),
		cleanCommand(cfg),
		tablesCommand(),
		JWTCommand(cfg),
	)

	err = rootCmd.Execute()
	_ = logger.Get(ctx).Sync()
	if err != nil {
		os.Exit(1) //nolint: gocritic
	}
}
