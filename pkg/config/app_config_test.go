package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadAppConfig(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		validate    func(*testing.T, AppConfig)
	}{
		{
			name: "overrides merge over defaults",
			yamlContent: `
configURL: "https://example.com/effects.json"
checkIntervalSeconds: 120
window:
  width: 1280
  height: 720
`,
			validate: func(t *testing.T, cfg AppConfig) {
				if cfg.ConfigURL != "https://example.com/effects.json" {
					t.Errorf("ConfigURL: got %q", cfg.ConfigURL)
				}
				if cfg.CheckInterval() != 2*time.Minute {
					t.Errorf("CheckInterval: got %v, want 2m", cfg.CheckInterval())
				}
				// 未配置的字段保持默认值
				if cfg.FetchTimeout() != 10*time.Second {
					t.Errorf("FetchTimeout: got %v, want 10s", cfg.FetchTimeout())
				}
				if cfg.StorageAppName != "festfx" {
					t.Errorf("StorageAppName: got %q, want festfx", cfg.StorageAppName)
				}
				if cfg.Window.Width != 1280 || cfg.Window.Height != 720 {
					t.Errorf("Window: got %dx%d", cfg.Window.Width, cfg.Window.Height)
				}
				if cfg.Toggle.Width != 150 {
					t.Errorf("Toggle.Width: got %v, want 150", cfg.Toggle.Width)
				}
			},
		},
		{
			name:        "interval too small",
			yamlContent: "checkIntervalSeconds: 1\n",
			wantErr:     true,
			errContains: "checkIntervalSeconds",
		},
		{
			name:        "empty storage name",
			yamlContent: "storageAppName: \"\"\n",
			wantErr:     true,
			errContains: "storageAppName",
		},
		{
			name:        "invalid yaml",
			yamlContent: "window: [1, 2\n",
			wantErr:     true,
			errContains: "parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "festfx.yaml")
			if err := os.WriteFile(path, []byte(tt.yamlContent), 0644); err != nil {
				t.Fatalf("failed to write temp config: %v", err)
			}

			cfg, err := LoadAppConfig(path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("expected error containing %q, got %q", tt.errContains, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.validate(t, cfg)
		})
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	_, err := LoadAppConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDefaultAppConfigValid(t *testing.T) {
	cfg := DefaultAppConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
	if cfg.CheckInterval() != DefaultCheckInterval {
		t.Errorf("CheckInterval: got %v, want %v", cfg.CheckInterval(), DefaultCheckInterval)
	}
}
