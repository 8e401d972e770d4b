package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/hyperjump/katalog/internal/catalog"
	"github.com/hyperjump/katalog/internal/watcher"
)

type statusResponse struct {
	Records        int64                 `json:"records"`
	Tenants        []string              `json:"tenants"`
	DiskUsageBytes *int64                `json:"disk_usage_bytes,omitempty"`
	Config         *statusConfigResponse `json:"config,omitempty"`
}

type statusConfigResponse struct {
	DatabasePath   string `json:"database_path"`
	DefaultLimit   int    `json:"default_limit"`
	MaxLimit       int    `json:"max_limit"`
	TypeaheadLimit int    `json:"typeahead_limit"`
}

func runStatus() {
	flags := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := flags.String("config", defaultConfigPath, "config file path")
	serverURL := flags.String("server", defaultServerURL, "server URL (empty = read the database directly)")
	outputFormat := flags.String("output", "text", "output format: text or json")
	_ = flags.Parse(os.Args[2:])

	var status statusResponse
	if *serverURL != "" {
		resp, err := http.Get(strings.TrimRight(*serverURL, "/") + "/api/v1/status")
		exitOnError("Status", err)
		defer resp.Body.Close()
		exitOnError("Status", decodeResponse(resp, http.StatusOK, &status))
	} else {
		cfg, _, logger, components := setup(*configPath, false)
		defer logger.Sync()
		defer components.Close()
		ctx := context.Background()
		count, err := components.Store.CountRecords(ctx)
		exitOnError("Count records", err)
		tenants, err := components.Store.ListTenants(ctx)
		exitOnError("List tenants", err)
		status = statusResponse{
			Records: count,
			Tenants: tenants,
			Config: &statusConfigResponse{
				DatabasePath:   cfg.Storage.DatabasePath,
				DefaultLimit:   cfg.Search.DefaultLimit,
				MaxLimit:       cfg.Search.MaxLimit,
				TypeaheadLimit: cfg.Search.TypeaheadLimit,
			},
		}
		if size, err := catalog.DatabaseSizeBytes(cfg.Storage.DatabasePath); err == nil {
			status.DiskUsageBytes = &size
		}
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		exitOnError("Output", enc.Encode(status))
	case "text":
		fmt.Printf("records:            %d   # catalog records across all tenants\n", status.Records)
		fmt.Printf("tenants:            %d   # %s\n", len(status.Tenants), strings.Join(status.Tenants, ", "))
		if status.DiskUsageBytes != nil {
			fmt.Printf("disk_usage_bytes:   %d   # catalog database on disk\n", *status.DiskUsageBytes)
		}
		if status.Config != nil {
			fmt.Println()
			fmt.Println("# configuration")
			fmt.Printf("database_path:      %s\n", status.Config.DatabasePath)
			fmt.Printf("default_limit:      %d\n", status.Config.DefaultLimit)
			fmt.Printf("max_limit:          %d\n", status.Config.MaxLimit)
			fmt.Printf("typeahead_limit:    %d\n", status.Config.TypeaheadLimit)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

func runImport() {
	flags := flag.NewFlagSet("import", flag.ExitOnError)
	configPath := flags.String("config", defaultConfigPath, "config file path")
	tenant := flags.String("tenant", "", "tenant id (default: file name without extension)")
	_ = flags.Parse(searchArgsReorder(os.Args[2:]))

	if flags.NArg() < 1 {
		fmt.Println("Usage: katalog import [flags] <file-or-directory>")
		os.Exit(1)
	}
	path := flags.Arg(0)

	cfg, _, logger, components := setup(*configPath, false)
	defer logger.Sync()
	defer components.Close()

	info, err := os.Stat(path)
	exitOnError("Stat path", err)
	files := []string{path}
	if info.IsDir() {
		exts := cfg.Watch.Extensions
		if len(exts) == 0 {
			exts = catalog.SupportedExtensions
		}
		files, err = watcher.SeedFiles(path, exts)
		exitOnError("Scan directory", err)
	}

	ctx := context.Background()
	total := 0
	for _, f := range files {
		tenantID := *tenant
		if tenantID == "" {
			tenantID = catalog.TenantFromPath(f)
		}
		n, err := components.Importer.ImportFile(ctx, tenantID, f)
		exitOnError("Import "+f, err)
		fmt.Printf("Imported %d record(s) for tenant %s from %s\n", n, tenantID, f)
		total += n
	}
	if len(files) != 1 {
		fmt.Printf("Imported %d record(s) from %d file(s)\n", total, len(files))
	}
}

func runDelete() {
	flags := flag.NewFlagSet("delete", flag.ExitOnError)
	configPath := flags.String("config", defaultConfigPath, "config file path")
	serverURL := flags.String("server", defaultServerURL, "server URL (empty = write the database directly)")
	tenant := flags.String("tenant", "", "tenant id")
	_ = flags.Parse(searchArgsReorder(os.Args[2:]))

	if flags.NArg() < 1 || *tenant == "" {
		fmt.Println("Usage: katalog delete --tenant <tenant> <record-id>")
		os.Exit(1)
	}
	id := flags.Arg(0)

	if *serverURL != "" {
		endpoint := strings.TrimRight(*serverURL, "/") + apiPath(*tenant, "records/"+url.PathEscape(id))
		req, err := http.NewRequest(http.MethodDelete, endpoint, nil)
		exitOnError("Delete", err)
		resp, err := http.DefaultClient.Do(req)
		exitOnError("Delete", err)
		defer resp.Body.Close()
		exitOnError("Delete", decodeResponse(resp, http.StatusOK, nil))
	} else {
		_, _, logger, components := setup(*configPath, false)
		defer logger.Sync()
		defer components.Close()
		exitOnError("Delete", components.Store.DeleteRecord(context.Background(), *tenant, id))
	}
	fmt.Printf("Record deleted: %s/%s\n", *tenant, id)
}

func runWatch() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: katalog watch <add|remove|list> [path]")
		fmt.Println("  katalog watch add <path>     Add seed directory to watch")
		fmt.Println("  katalog watch remove <path>  Remove seed directory from watch")
		fmt.Println("  katalog watch list           List watched directories")
		os.Exit(1)
	}
	sub := os.Args[2]
	flags := flag.NewFlagSet("watch", flag.ExitOnError)
	serverURL := flags.String("server", defaultServerURL, "server URL")
	noImport := flags.Bool("no-import", false, "do not import seed files already in the directory")
	_ = flags.Parse(searchArgsReorder(os.Args[3:]))
	base := strings.TrimRight(*serverURL, "/") + "/api/v1/watch/directories"

	switch sub {
	case "add":
		if flags.NArg() < 1 {
			fmt.Println("Usage: katalog watch add <path>")
			os.Exit(1)
		}
		path, _ := filepath.Abs(flags.Arg(0))
		importExisting := !*noImport
		body, _ := json.Marshal(map[string]interface{}{"path": path, "import": importExisting})
		resp, err := http.Post(base, "application/json", bytes.NewReader(body))
		exitOnError("Add", err)
		defer resp.Body.Close()
		exitOnError("Add", decodeResponse(resp, http.StatusCreated, nil))
		fmt.Printf("Added: %s\n", path)
	case "remove":
		if flags.NArg() < 1 {
			fmt.Println("Usage: katalog watch remove <path>")
			os.Exit(1)
		}
		path, _ := filepath.Abs(flags.Arg(0))
		req, err := http.NewRequest(http.MethodDelete, base+"?path="+url.QueryEscape(path), nil)
		exitOnError("Remove", err)
		resp, err := http.DefaultClient.Do(req)
		exitOnError("Remove", err)
		defer resp.Body.Close()
		exitOnError("Remove", decodeResponse(resp, http.StatusOK, nil))
		fmt.Printf("Removed: %s\n", path)
	case "list":
		resp, err := http.Get(base)
		exitOnError("List", err)
		defer resp.Body.Close()
		var out struct {
			Directories []string `json:"directories"`
		}
		exitOnError("List", decodeResponse(resp, http.StatusOK, &out))
		for _, d := range out.Directories {
			fmt.Println(d)
		}
	default:
		fmt.Printf("Unknown watch subcommand: %s\n", sub)
		os.Exit(1)
	}
}
