// Package main is the Katalog CLI entry point.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/katalog/internal/catalog"
	"github.com/hyperjump/katalog/internal/config"
	"github.com/hyperjump/katalog/internal/ranking"
	"github.com/hyperjump/katalog/internal/search"
	"github.com/hyperjump/katalog/internal/server"
	"github.com/hyperjump/katalog/internal/watcher"
	"github.com/hyperjump/katalog/pkg/utils"
)

var version = "dev"

const (
	defaultConfigPath = "/usr/local/etc/katalog/config.yaml"
	defaultServerURL  = "http://localhost:8080"
)

// loadConfig loads config from path. When path is the default, config.yaml in
// the current directory wins if it exists, so "katalog server" run from a
// project directory picks up that project's config.
// Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, err := os.Getwd(); err == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, err := os.Stat(fallback); err == nil {
				cfg, err := config.Load(fallback)
				if err != nil {
					return nil, "", err
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "search":
		runSearch()
	case "typeahead":
		runTypeahead()
	case "facets":
		runFacets()
	case "suggest":
		runSuggest()
	case "import":
		runImport()
	case "delete":
		runDelete()
	case "status":
		runStatus()
	case "watch":
		runWatch()
	case "version", "--version", "-v":
		fmt.Printf("katalog version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// Components holds initialized services.
type Components struct {
	Store    *catalog.SQLiteCatalog
	Engine   *search.Engine
	Importer *catalog.Importer
}

// Close releases the catalog database.
func (c *Components) Close() {
	if c.Store != nil {
		_ = c.Store.Close()
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*Components, error) {
	store, err := catalog.NewSQLiteCatalog(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize catalog: %w", err)
	}
	engine := search.NewEngine(store, &cfg.Search,
		search.WithRanker(ranking.NewRanker(&cfg.Ranking)),
		search.WithLogger(logger),
	)
	return &Components{
		Store:    store,
		Engine:   engine,
		Importer: catalog.NewImporter(store, catalog.WithLogger(logger)),
	}, nil
}

// setup loads config, builds the logger and opens the catalog, exiting on failure.
func setup(configPath string, debug bool) (*config.Config, string, *zap.Logger, *Components) {
	cfg, resolved, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug || debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	return cfg, resolved, logger, components
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (per-query engine logs, seed imports, etc.)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, logger, components := setup(*configPath, *debug)
	defer logger.Sync()
	defer components.Close()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", cfg.Debug || *debug),
	)

	watchSvc := watcher.NewWatcher(
		components.Importer,
		cfg.Watch.Directories,
		cfg.Watch.Extensions,
		cfg.Watch.RecursiveOrDefault(),
		watcher.WithLogger(logger),
	)
	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if err := watchSvc.Start(watchCtx); err != nil {
		logger.Fatal("Failed to start watcher", zap.Error(err))
	}
	watchSvc.ImportExisting()

	srv := server.NewServer(components.Engine, components.Store, cfg, logger,
		server.WithWatch(watchSvc, resolvedConfigPath))
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func printUsage() {
	fmt.Println(`katalog - Multi-tenant catalog search engine

Usage:
  katalog server [flags]                Start the HTTP server
  katalog search [flags] <query>        Full search with ranking and suggestions
  katalog typeahead [flags] <prefix>    Prefix suggestions for incremental input
  katalog facets [flags] [term]         Category, subcategory, city and status counts
  katalog suggest [flags] [prefix]      Distinct category, subcategory and city values
  katalog import [flags] <file|dir>     Import seed files (.json, .yaml, .yml, .xlsx)
  katalog delete --tenant <t> <id>      Delete a catalog record
  katalog status [flags]                Show catalog status
  katalog watch <add|remove|list>       Manage watched seed directories
  katalog version                       Show version
  katalog help                          Show this help

Query Flags (search, typeahead, facets, suggest):
  --tenant string     Tenant id; empty searches the published catalog of all tenants
  --category string   Category key filter
  --limit int         Page size (default from config)
  --output string     Output format: text, compact or json (default: text)
  --server string     Server URL (default: http://localhost:8080). Use --server "" to read the database directly.
  --config string     Config file path (for direct database mode)

Search Flags:
  --offset int        Result offset for paging
  --status string     Status filter (tenant search only; default excludes deleted)
  --subcategory string
  --metadata          Include record metadata in results

Import Flags:
  --tenant string     Tenant id (default: file name without extension)

Examples:
  katalog server
  katalog search --tenant oslo tennisbane
  katalog search "møterom sentrum"              # public search
  katalog typeahead --tenant oslo ten
  katalog facets --tenant oslo --category SPORT
  katalog suggest --output json os
  katalog import ./seeds/oslo.yaml
  katalog status --output json
  katalog watch add ./seeds`)
}
