package config

import "github.com/hyperjump/katalog/internal/models"

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "/usr/local/var/katalog/data/db/catalog.db"
	}
	if cfg.Search.DefaultLimit == 0 {
		cfg.Search.DefaultLimit = models.DefaultSearchLimit
	}
	if cfg.Search.MaxLimit == 0 {
		cfg.Search.MaxLimit = models.DefaultMaxLimit
	}
	if cfg.Search.TypeaheadLimit == 0 {
		cfg.Search.TypeaheadLimit = models.DefaultTypeaheadLimit
	}
	if cfg.Search.SuggestionLimit == 0 {
		cfg.Search.SuggestionLimit = models.DefaultSuggestionLimit
	}
	if cfg.Search.FacetMinTermLength == 0 {
		cfg.Search.FacetMinTermLength = 2
	}
	if cfg.Search.TenantTypeaheadMinLength == 0 {
		cfg.Search.TenantTypeaheadMinLength = 2
	}
	if cfg.Search.PublicTypeaheadMinLength == 0 {
		cfg.Search.PublicTypeaheadMinLength = 1
	}
	cfg.Ranking.ApplyDefaults()
	if cfg.Watch.Extensions == nil {
		cfg.Watch.Extensions = []string{".json", ".yaml", ".yml", ".xlsx"}
	}
	// Recursive defaults to true when unset (nil).
	if len(cfg.Watch.Directories) > 0 && cfg.Watch.Recursive == nil {
		t := true
		cfg.Watch.Recursive = &t
	}
}
