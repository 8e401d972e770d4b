package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/hyperjump/katalog/internal/cli"
	"github.com/hyperjump/katalog/internal/models"
)

// queryFlags are shared by the search, typeahead, facets and suggest commands.
type queryFlags struct {
	fs         *flag.FlagSet
	configPath *string
	serverURL  *string
	tenant     *string
	category   *string
	limit      *int
	output     *string
}

func newQueryFlags(name string, defaultLimit int) *queryFlags {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	return &queryFlags{
		fs:         fs,
		configPath: fs.String("config", defaultConfigPath, "config file path"),
		serverURL:  fs.String("server", defaultServerURL, "server URL (empty = read the database directly)"),
		tenant:     fs.String("tenant", "", "tenant id (empty = published catalog of all tenants)"),
		category:   fs.String("category", "", "category key filter"),
		limit:      fs.Int("limit", defaultLimit, "page size"),
		output:     fs.String("output", "text", "output format: text, compact, or json"),
	}
}

func (q *queryFlags) parse(args []string) {
	_ = q.fs.Parse(searchArgsReorder(args))
}

func (q *queryFlags) format() cli.OutputFormat {
	return cli.ParseOutputFormat(*q.output)
}

// apiPath returns the tenant or public endpoint for op.
func apiPath(tenant, op string) string {
	if tenant == "" {
		return "/api/v1/public/" + op
	}
	return "/api/v1/tenants/" + url.PathEscape(tenant) + "/" + op
}

// buildSearchQuery joins all positional args with spaces so multi-word queries
// work the same with or without shell quoting.
func buildSearchQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// searchConfigPathFromArgs returns the value of -config/--config from args if present, else defaultPath.
func searchConfigPathFromArgs(args []string, defaultPath string) string {
	for i, a := range args {
		if (a == "-config" || a == "--config") && i+1 < len(args) {
			return args[i+1]
		}
	}
	return defaultPath
}

// searchLimitDefaultFromConfig returns the configured default page size, or
// the built-in default when the config cannot be loaded.
func searchLimitDefaultFromConfig(path string) int {
	cfg, _, err := loadConfig(path)
	if err != nil || cfg == nil || cfg.Search.DefaultLimit <= 0 {
		return models.DefaultSearchLimit
	}
	return cfg.Search.DefaultLimit
}

// searchArgsReorder moves any flags (and their values) that appear after the query
// to the front of the slice so that flag.Parse() sees them. Go's flag package
// stops at the first non-flag argument, so "katalog search tennis -limit 5"
// would otherwise leave -limit unparsed.
func searchArgsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

func exitOnError(what string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s failed: %v\n", what, err)
		os.Exit(1)
	}
}

func runSearch() {
	args := os.Args[2:]
	q := newQueryFlags("search", searchLimitDefaultFromConfig(searchConfigPathFromArgs(args, defaultConfigPath)))
	offset := q.fs.Int("offset", 0, "result offset")
	status := q.fs.String("status", "", "status filter")
	subcategory := q.fs.String("subcategory", "", "subcategory key filter")
	metadata := q.fs.Bool("metadata", false, "include record metadata")
	q.fs.Usage = func() {
		fmt.Fprintf(q.fs.Output(), "Usage: katalog search [flags] <query>\n\n")
		q.fs.PrintDefaults()
	}
	q.parse(args)

	query := &models.SearchQuery{
		Query:           buildSearchQuery(q.fs.Args()),
		CategoryKey:     *q.category,
		SubcategoryKey:  *subcategory,
		Status:          models.Status(*status),
		Limit:           *q.limit,
		Offset:          *offset,
		IncludeMetadata: *metadata,
	}

	var resp models.SearchResponse
	if *q.serverURL != "" {
		exitOnError("Search", postJSON(*q.serverURL, apiPath(*q.tenant, "search"), query, &resp))
	} else {
		_, _, logger, components := setup(*q.configPath, false)
		defer logger.Sync()
		defer components.Close()
		ctx := context.Background()
		var out *models.SearchResponse
		var err error
		if *q.tenant == "" {
			out, err = components.Engine.PublicSearch(ctx, query)
		} else {
			out, err = components.Engine.Search(ctx, *q.tenant, query)
		}
		exitOnError("Search", err)
		resp = *out
	}
	exitOnError("Output", cli.WriteSearchResults(os.Stdout, &resp, q.format()))
}

func runTypeahead() {
	q := newQueryFlags("typeahead", 0)
	q.parse(os.Args[2:])
	query := &models.TypeaheadQuery{
		Prefix:      buildSearchQuery(q.fs.Args()),
		CategoryKey: *q.category,
		Limit:       *q.limit,
	}

	var resp models.TypeaheadResponse
	if *q.serverURL != "" {
		exitOnError("Typeahead", postJSON(*q.serverURL, apiPath(*q.tenant, "typeahead"), query, &resp))
	} else {
		_, _, logger, components := setup(*q.configPath, false)
		defer logger.Sync()
		defer components.Close()
		ctx := context.Background()
		var out *models.TypeaheadResponse
		var err error
		if *q.tenant == "" {
			out, err = components.Engine.PublicTypeahead(ctx, query)
		} else {
			out, err = components.Engine.Typeahead(ctx, *q.tenant, query)
		}
		exitOnError("Typeahead", err)
		resp = *out
	}
	exitOnError("Output", cli.WriteTypeahead(os.Stdout, &resp, q.format()))
}

func runFacets() {
	q := newQueryFlags("facets", 0)
	status := q.fs.String("status", "", "status filter")
	subcategory := q.fs.String("subcategory", "", "subcategory key filter")
	q.parse(os.Args[2:])
	query := &models.FacetQuery{
		SearchTerm:     buildSearchQuery(q.fs.Args()),
		CategoryKey:    *q.category,
		SubcategoryKey: *subcategory,
		Status:         models.Status(*status),
	}

	var resp models.FacetResponse
	if *q.serverURL != "" {
		exitOnError("Facets", postJSON(*q.serverURL, apiPath(*q.tenant, "facets"), query, &resp))
	} else {
		_, _, logger, components := setup(*q.configPath, false)
		defer logger.Sync()
		defer components.Close()
		ctx := context.Background()
		var out *models.FacetResponse
		var err error
		if *q.tenant == "" {
			out, err = components.Engine.PublicFacets(ctx, query)
		} else {
			out, err = components.Engine.Facets(ctx, *q.tenant, query)
		}
		exitOnError("Facets", err)
		resp = *out
	}
	exitOnError("Output", cli.WriteFacets(os.Stdout, &resp, q.format()))
}

func runSuggest() {
	q := newQueryFlags("suggest", 0)
	q.parse(os.Args[2:])
	query := &models.SuggestionQuery{
		Prefix:      buildSearchQuery(q.fs.Args()),
		CategoryKey: *q.category,
		Limit:       *q.limit,
	}

	var suggestions []models.Suggestion
	if *q.serverURL != "" {
		var resp struct {
			Suggestions []models.Suggestion `json:"suggestions"`
		}
		exitOnError("Suggest", postJSON(*q.serverURL, apiPath(*q.tenant, "suggestions"), query, &resp))
		suggestions = resp.Suggestions
	} else {
		_, _, logger, components := setup(*q.configPath, false)
		defer logger.Sync()
		defer components.Close()
		ctx := context.Background()
		var err error
		if *q.tenant == "" {
			suggestions, err = components.Engine.PublicSuggestions(ctx, query)
		} else {
			suggestions, err = components.Engine.Suggestions(ctx, *q.tenant, query)
		}
		exitOnError("Suggest", err)
	}
	exitOnError("Output", cli.WriteSuggestions(os.Stdout, suggestions, q.format()))
}

// postJSON posts req as JSON to serverURL+path and decodes the response into out.
func postJSON(serverURL, path string, req, out interface{}) error {
	body, err := json.Marshal(req)
	if err != nil {
		return err
	}
	resp, err := http.Post(strings.TrimRight(serverURL, "/")+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	return decodeResponse(resp, http.StatusOK, out)
}

func decodeResponse(resp *http.Response, want int, out interface{}) error {
	if resp.StatusCode != want {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
