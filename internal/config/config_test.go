package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name: "valid csv source config",
			config: Config{
				Port:         "8080",
				DataSource:   "csv",
				CSVPath:      "./testdata/ssbg.csv",
				CacheTTL:     10 * time.Minute,
				CacheEntries: 500,
			},
			wantErr: false,
		},
		{
			name: "valid sqlite source config",
			config: Config{
				Port:         "8080",
				DataSource:   "sqlite",
				SQLiteDBPath: "./ssbg.db",
				CacheTTL:     10 * time.Minute,
				CacheEntries: 500,
			},
			wantErr: false,
		},
		{
			name: "invalid port - non-numeric",
			config: Config{
				Port:         "abc",
				DataSource:   "csv",
				CSVPath:      "./ssbg.csv",
				CacheTTL:     10 * time.Minute,
				CacheEntries: 500,
			},
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name: "invalid port - out of range",
			config: Config{
				Port:         "70000",
				DataSource:   "csv",
				CSVPath:      "./ssbg.csv",
				CacheTTL:     10 * time.Minute,
				CacheEntries: 500,
			},
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name: "invalid data source",
			config: Config{
				Port:         "8080",
				DataSource:   "parquet",
				CacheTTL:     10 * time.Minute,
				CacheEntries: 500,
			},
			wantErr:     true,
			errorString: "invalid data source 'parquet': must be one of [csv sqlite sheets]",
		},
		{
			name: "csv source missing path",
			config: Config{
				Port:         "8080",
				DataSource:   "csv",
				CSVPath:      "",
				CacheTTL:     10 * time.Minute,
				CacheEntries: 500,
			},
			wantErr:     true,
			errorString: "CSV path cannot be empty",
		},
		{
			name: "sheets source missing spreadsheet id",
			config: Config{
				Port:            "8080",
				DataSource:      "sheets",
				GoogleSheetName: "SSBG",
				CacheTTL:        10 * time.Minute,
				CacheEntries:    500,
			},
			wantErr:     true,
			errorString: "Google Spreadsheet ID is required when using sheets source",
		},
		{
			name: "invalid cache entries",
			config: Config{
				Port:         "8080",
				DataSource:   "csv",
				CSVPath:      "./ssbg.csv",
				CacheTTL:     10 * time.Minute,
				CacheEntries: 0,
			},
			wantErr:     true,
			errorString: "invalid cache entries 0: must be at least 1",
		},
		{
			name: "cache TTL too short",
			config: Config{
				Port:         "8080",
				DataSource:   "csv",
				CSVPath:      "./ssbg.csv",
				CacheTTL:     500 * time.Millisecond,
				CacheEntries: 500,
			},
			wantErr:     true,
			errorString: "invalid cache TTL 500ms: must be at least 1 second",
		},
		{
			name: "cache TTL too long",
			config: Config{
				Port:         "8080",
				DataSource:   "csv",
				CSVPath:      "./ssbg.csv",
				CacheTTL:     25 * time.Hour,
				CacheEntries: 500,
			},
			wantErr:     true,
			errorString: "invalid cache TTL 25h0m0s: must be at most 24 hours",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Config.Validate() error = nil, wantErr %v", tt.wantErr)
					return
				}
				if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("Config.Validate() error = %q, want it to contain %q", err.Error(), tt.errorString)
				}
				return
			}
			if err != nil {
				t.Errorf("Config.Validate() error = %v, want nil", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		for _, key := range []string{"PORT", "DATA_SOURCE", "CSV_PATH", "SQLITE_DB_PATH", "CACHE_TTL", "CACHE_ENTRIES"} {
			os.Unsetenv(key)
		}

		cfg := Load()
		if cfg.Port != "8080" {
			t.Errorf("Port = %q, want 8080", cfg.Port)
		}
		if cfg.DataSource != "csv" {
			t.Errorf("DataSource = %q, want csv", cfg.DataSource)
		}
		if cfg.CSVPath != "./data/ssbg_data_cleaned.csv" {
			t.Errorf("CSVPath = %q", cfg.CSVPath)
		}
		if cfg.CacheTTL != 10*time.Minute || cfg.CacheEntries != 500 {
			t.Errorf("cache tuning = %v/%d", cfg.CacheTTL, cfg.CacheEntries)
		}
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("DATA_SOURCE", "sqlite")
		t.Setenv("SQLITE_DB_PATH", "/tmp/ssbg.db")
		t.Setenv("CACHE_TTL", "45s")
		t.Setenv("CACHE_ENTRIES", "25")

		cfg := Load()
		if cfg.Port != "9090" || cfg.DataSource != "sqlite" || cfg.SQLiteDBPath != "/tmp/ssbg.db" {
			t.Errorf("env overrides not applied: %+v", cfg)
		}
		if cfg.CacheTTL != 45*time.Second || cfg.CacheEntries != 25 {
			t.Errorf("cache tuning = %v/%d, want 45s/25", cfg.CacheTTL, cfg.CacheEntries)
		}
	})

	t.Run("invalid numeric env falls back to defaults", func(t *testing.T) {
		t.Setenv("CACHE_TTL", "not-a-duration")
		t.Setenv("CACHE_ENTRIES", "not-a-number")

		cfg := Load()
		if cfg.CacheTTL != 10*time.Minute || cfg.CacheEntries != 500 {
			t.Errorf("fallbacks not applied: %v/%d", cfg.CacheTTL, cfg.CacheEntries)
		}
	})
}
