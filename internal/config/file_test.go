package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestLoadConfigFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name:    "string fields",
			content: "pathSep: /\nreadLineSep: \"null\"\nwriteLineSep: CRLF\nmounts: table\n",
			check: func(t *testing.T, cfg *Config) {
				if cfg.PathSep != "/" {
					t.Errorf("PathSep = %q, want %q", cfg.PathSep, "/")
				}
				if cfg.ReadLineSep != "null" {
					t.Errorf("ReadLineSep = %q, want %q", cfg.ReadLineSep, "null")
				}
				if cfg.WriteLineSep != "CRLF" {
					t.Errorf("WriteLineSep = %q, want %q", cfg.WriteLineSep, "CRLF")
				}
				if cfg.Mounts != "table" {
					t.Errorf("Mounts = %q, want %q", cfg.Mounts, "table")
				}
			},
		},
		{
			name:    "bool pointer fields",
			content: "rootLoop: false\ncanonicalize: true\n",
			check: func(t *testing.T, cfg *Config) {
				if cfg.RootLoop == nil || *cfg.RootLoop {
					t.Error("RootLoop should be *false")
				}
				if cfg.Canonicalize == nil || !*cfg.Canonicalize {
					t.Error("Canonicalize should be *true")
				}
			},
		},
		{
			name:    "streaming fields",
			content: "blockSize: 128KiB\nmaxBlocks: 4\nminBlocks: 2\nqueryTimeout: 2s\n",
			check: func(t *testing.T, cfg *Config) {
				if cfg.BlockSize != "128KiB" || cfg.MaxBlocks != 4 || cfg.MinBlocks != 2 {
					t.Errorf("streaming = %q %d %d", cfg.BlockSize, cfg.MaxBlocks, cfg.MinBlocks)
				}
				if cfg.QueryTimeout != "2s" {
					t.Errorf("QueryTimeout = %q, want 2s", cfg.QueryTimeout)
				}
			},
		},
		{
			name:    "empty file",
			content: "",
			check: func(t *testing.T, cfg *Config) {
				if cfg.PathSep != "" {
					t.Errorf("PathSep should be empty, got %q", cfg.PathSep)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := loadConfigFile(writeConfig(t, tt.content))
			if err != nil {
				t.Fatalf("loadConfigFile: %v", err)
			}
			if cfg == nil {
				t.Fatal("loadConfigFile returned nil")
			}
			tt.check(t, cfg)
		})
	}

	t.Run("nonexistent file", func(t *testing.T) {
		cfg, err := loadConfigFile("/nonexistent/path/config.yaml")
		if cfg != nil || err != nil {
			t.Errorf("loadConfigFile = %v, %v; want nil, nil", cfg, err)
		}
	})

	t.Run("malformed file", func(t *testing.T) {
		if _, err := loadConfigFile(writeConfig(t, "pathSep: [\n")); err == nil {
			t.Error("expected parse error")
		}
	})
}

func TestMergeConfigs(t *testing.T) {
	t.Run("override string fields", func(t *testing.T) {
		base := &Config{PathSep: "/", Mounts: "table"}
		override := &Config{PathSep: `\`}

		result := mergeConfigs(base, override)
		if result.PathSep != `\` {
			t.Errorf("PathSep = %q, want %q", result.PathSep, `\`)
		}
		if result.Mounts != "table" {
			t.Errorf("Mounts = %q, want %q", result.Mounts, "table")
		}
	})

	t.Run("nil handling", func(t *testing.T) {
		result := mergeConfigs(nil, &Config{BlockSize: "1MiB"}, nil)
		if result.BlockSize != "1MiB" {
			t.Errorf("BlockSize = %q, want %q", result.BlockSize, "1MiB")
		}
	})

	t.Run("bool pointer override false", func(t *testing.T) {
		bTrue := true
		bFalse := false
		result := mergeConfigs(&Config{RootLoop: &bTrue}, &Config{RootLoop: &bFalse})
		if result.RootLoop == nil || *result.RootLoop {
			t.Error("RootLoop should be false after override")
		}
	})

	t.Run("bool pointer nil preserves base", func(t *testing.T) {
		bFalse := false
		result := mergeConfigs(&Config{Canonicalize: &bFalse}, &Config{})
		if result.Canonicalize == nil || *result.Canonicalize {
			t.Error("Canonicalize should remain false when override is nil")
		}
	})

	t.Run("zero ints preserve base", func(t *testing.T) {
		result := mergeConfigs(&Config{MaxBlocks: 4}, &Config{MinBlocks: 2})
		if result.MaxBlocks != 4 || result.MinBlocks != 2 {
			t.Errorf("blocks = %d/%d, want 4/2", result.MaxBlocks, result.MinBlocks)
		}
	})
}

func TestLoadConfig(t *testing.T) {
	// isolate from the developer's own global config
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvConfigPath, "")

	t.Run("no files", func(t *testing.T) {
		cfg, err := LoadConfig("")
		if err != nil {
			t.Fatalf("LoadConfig: %v", err)
		}
		if cfg != (Config{}) {
			t.Errorf("LoadConfig = %+v, want zero config", cfg)
		}
	})

	t.Run("global then explicit", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		if err := os.MkdirAll(filepath.Join(home, ".wslpath"), 0755); err != nil {
			t.Fatal(err)
		}
		global := "pathSep: /\nmounts: table\n"
		if err := os.WriteFile(filepath.Join(home, ".wslpath", "config.yaml"), []byte(global), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadConfig(writeConfig(t, "mounts: fixed\n"))
		if err != nil {
			t.Fatalf("LoadConfig: %v", err)
		}
		if cfg.PathSep != "/" || cfg.Mounts != "fixed" {
			t.Errorf("LoadConfig = %+v, want global pathSep and explicit mounts", cfg)
		}
	})

	t.Run("explicit from environment", func(t *testing.T) {
		t.Setenv(EnvConfigPath, writeConfig(t, "writeLineSep: nul\n"))
		cfg, err := LoadConfig("")
		if err != nil {
			t.Fatalf("LoadConfig: %v", err)
		}
		if cfg.WriteLineSep != "nul" {
			t.Errorf("WriteLineSep = %q, want nul", cfg.WriteLineSep)
		}
	})

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("LoadConfig error = %v, want fs.ErrNotExist", err)
		}
	})

	t.Run("invalid explicit file", func(t *testing.T) {
		if _, err := LoadConfig(writeConfig(t, "mounts: guess\n")); err == nil {
			t.Error("expected validation error")
		}
	})
}
