package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigWithInfo_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv(EnvWorkbook, "")
	t.Setenv(EnvDataDir, "")

	cfg, info, err := LoadConfigWithInfo(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if info.FileFound || info.PortSpecified {
		t.Fatalf("unexpected info: %+v", info)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigWithInfo_FileAndEnv(t *testing.T) {
	t.Setenv(EnvWorkbook, "/srv/schedule.xlsx")
	t.Setenv(EnvDataDir, "")

	path := writeConfig(t, `
[server]
port = 8080

[sheets]
schedule = "Production"

[matching]
show_threshold = 3.0

[log]
level = "debug"
`)

	cfg, info, err := LoadConfigWithInfo(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !info.FileFound || !info.PortSpecified {
		t.Fatalf("unexpected info: %+v", info)
	}

	want := DefaultConfig()
	want.Server.Port = 8080
	want.Sheets.Schedule = "Production"
	want.Matching.ShowThreshold = 3
	want.Log.Level = "debug"
	want.Data.Workbook = "/srv/schedule.xlsx"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigWithInfo_PortNotSpecified(t *testing.T) {
	path := writeConfig(t, "[server]\ndev_mode = true\n")

	cfg, info, err := LoadConfigWithInfo(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if info.PortSpecified {
		t.Fatalf("port should not be reported as specified")
	}
	if !cfg.Server.DevMode || cfg.Server.Port != DefaultConfig().Server.Port {
		t.Fatalf("unexpected server config: %+v", cfg.Server)
	}
}

func TestLoadConfigWithInfo_Invalid(t *testing.T) {
	path := writeConfig(t, "[server\nport = ")
	if _, _, err := LoadConfigWithInfo(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	t.Setenv(EnvWorkbook, "")
	t.Setenv(EnvDataDir, "")

	path := filepath.Join(t.TempDir(), ConfigFileName)
	cfg := DefaultConfig()
	cfg.Search.OpenTag = "<em>"
	cfg.Search.CloseTag = "</em>"
	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, _, err := LoadConfigWithInfo(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestDataPaths(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Data.DataDir = dir

	got, err := EnsureDataDir(cfg)
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if got != dir {
		t.Fatalf("data dir = %q, want %q", got, dir)
	}
	for _, sub := range []string{"uploads", "exports"} {
		if st, err := os.Stat(filepath.Join(dir, sub)); err != nil || !st.IsDir() {
			t.Fatalf("missing %s dir: %v", sub, err)
		}
	}
	if p := DatabasePath(cfg); p != filepath.Join(dir, "showboard.db") {
		t.Fatalf("database path = %q", p)
	}
}
