package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tagmesh/tagmesh/pkg/errors"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantErr  errors.Code
		check    func(t *testing.T, cfg Config)
		noCreate bool
	}{
		{
			name:     "MissingFileYieldsDefaults",
			noCreate: true,
			check: func(t *testing.T, cfg Config) {
				if cfg.Cache.Backend != CacheBackendFile {
					t.Errorf("backend = %q, want file", cfg.Cache.Backend)
				}
				if cfg.Serve.Addr != ":8750" {
					t.Errorf("addr = %q, want :8750", cfg.Serve.Addr)
				}
			},
		},
		{
			name: "OverridesLayerOnDefaults",
			content: "[cache]\nbackend = \"redis\"\nredis_addr = \"cache:6379\"\n" +
				"[render]\nformat = \"png\"\n",
			check: func(t *testing.T, cfg Config) {
				if cfg.Cache.Backend != CacheBackendRedis {
					t.Errorf("backend = %q, want redis", cfg.Cache.Backend)
				}
				if cfg.Cache.RedisAddr != "cache:6379" {
					t.Errorf("redis_addr = %q", cfg.Cache.RedisAddr)
				}
				if cfg.Render.Format != "png" {
					t.Errorf("format = %q, want png", cfg.Render.Format)
				}
				// Untouched sections keep defaults.
				if cfg.Serve.Addr != ":8750" {
					t.Errorf("addr = %q, want default", cfg.Serve.Addr)
				}
			},
		},
		{
			name:    "UnknownBackend",
			content: "[cache]\nbackend = \"memcached\"\n",
			wantErr: errors.ErrCodeInvalidInput,
		},
		{
			name:    "UnknownFormat",
			content: "[render]\nformat = \"gif\"\n",
			wantErr: errors.ErrCodeInvalidFormat,
		},
		{
			name:    "MalformedTOML",
			content: "[cache\n",
			wantErr: errors.ErrCodeInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if !tt.noCreate {
				if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
					t.Fatal(err)
				}
			}

			cfg, err := Load(path)
			if tt.wantErr != "" {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want code %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	path, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if path != "/tmp/xdg/tagmesh/config.toml" {
		t.Errorf("path = %q", path)
	}
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdgcache")
	dir, err := CacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != "/tmp/xdgcache/tagmesh" {
		t.Errorf("dir = %q", dir)
	}
}
