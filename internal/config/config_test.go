package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
storage:
  sqlite_path: "personas.db"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Env != "dev" || cfg.Storage.Driver != DriverSQLite {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.HTTPServer.Addr != "localhost:3000" || cfg.HTTPServer.ShutdownTimeout != 5*time.Second {
		t.Fatalf("unexpected http defaults: %+v", cfg.HTTPServer)
	}
	if cfg.Storage.MaxOpenConns != 10 || cfg.Storage.ConnMaxLifetime != 30*time.Minute {
		t.Fatalf("unexpected pool defaults: %+v", cfg.Storage)
	}
}

func TestLoadReadsFile(t *testing.T) {
	path := writeConfig(t, `
env: "prod"
storage:
  driver: "postgres"
  postgres_dsn: "postgres://personas@localhost:5432/personas"
  max_open_conns: 4
http_server:
  address: "0.0.0.0:8080"
  read_timeout: 3s
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Env != "prod" || cfg.Storage.Driver != DriverPostgres || cfg.Storage.MaxOpenConns != 4 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.HTTPServer.Addr != "0.0.0.0:8080" || cfg.HTTPServer.ReadTimeout != 3*time.Second {
		t.Fatalf("unexpected http config: %+v", cfg.HTTPServer)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Setenv("HTTP_SERVER_ADDR", "127.0.0.1:9999")
	path := writeConfig(t, `
storage:
  sqlite_path: "personas.db"
http_server:
  address: "localhost:3000"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPServer.Addr != "127.0.0.1:9999" {
		t.Fatalf("expected env override, got %q", cfg.HTTPServer.Addr)
	}
}

func TestLoadValidation(t *testing.T) {
	cases := map[string]string{
		"unknown env": `
env: "qa"
storage:
  sqlite_path: "personas.db"
`,
		"unknown driver": `
storage:
  driver: "oracle"
`,
		"sqlite without path": `
storage:
  driver: "sqlite"
`,
		"postgres without dsn": `
storage:
  driver: "postgres"
`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			if err == nil || !strings.Contains(err.Error(), "invalid config") {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
