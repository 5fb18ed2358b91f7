package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kyu49/euonymus/internal/errors"
	"github.com/kyu49/euonymus/pkg/binding"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Name != DefaultName {
		t.Errorf("Name = %q, want %q", cfg.Name, DefaultName)
	}
	if cfg.Server.Port != DefaultPort || cfg.Server.Host != DefaultHost {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Binding.MaxDepth != binding.DefaultMaxDepth {
		t.Errorf("Binding.MaxDepth = %d", cfg.Binding.MaxDepth)
	}
	if cfg.Binding.OverrideWithState {
		t.Error("new bindings should default to pushing the cell value")
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Namespace != DefaultNamespace {
		t.Errorf("Metrics = %+v", cfg.Metrics)
	}
	if cfg.Publish.Key != DefaultPublishKey {
		t.Errorf("Publish.Key = %q", cfg.Publish.Key)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFormats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "json",
			file: "euonymus.json",
			content: `{
  "name": "todo",
  "binding": {"overrideWithState": true, "maxDepth": 8},
  "server": {"host": "0.0.0.0", "port": 8080},
  "publish": {"bucket": "snaps", "region": "eu-west-1"},
  "metrics": {"enabled": false}
}`,
		},
		{
			name: "toml",
			file: "euonymus.toml",
			content: `name = "todo"

[binding]
override_with_state = true
max_depth = 8

[server]
host = "0.0.0.0"
port = 8080

[publish]
bucket = "snaps"
region = "eu-west-1"

[metrics]
enabled = false
`,
		},
		{
			name: "yaml",
			file: "euonymus.yml",
			content: `name: todo
binding:
  override_with_state: true
  max_depth: 8
server:
  host: 0.0.0.0
  port: 8080
publish:
  bucket: snaps
  region: eu-west-1
metrics:
  enabled: false
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if cfg.Name != "todo" {
				t.Errorf("Name = %q", cfg.Name)
			}
			if !cfg.Binding.OverrideWithState || cfg.Binding.MaxDepth != 8 {
				t.Errorf("Binding = %+v", cfg.Binding)
			}
			if cfg.Address() != "0.0.0.0:8080" {
				t.Errorf("Address = %q", cfg.Address())
			}
			if cfg.Publish.Bucket != "snaps" || cfg.Publish.Region != "eu-west-1" {
				t.Errorf("Publish = %+v", cfg.Publish)
			}
			if cfg.Publish.Key != DefaultPublishKey {
				t.Errorf("Publish.Key default lost: %q", cfg.Publish.Key)
			}
			if cfg.Metrics.Enabled {
				t.Error("Metrics.Enabled should be false")
			}
			if cfg.Server.ReadBufferSize != DefaultBufferSize {
				t.Errorf("ReadBufferSize = %d", cfg.Server.ReadBufferSize)
			}
			if cfg.Path() != path {
				t.Errorf("Path = %q", cfg.Path())
			}
		})
	}
}

func TestLoadEmptyYAML(t *testing.T) {
	cfg, err := Load(writeFile(t, "empty.yaml", ""))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != DefaultPort {
		t.Errorf("Port = %d", cfg.Server.Port)
	}
}

func code(err error) string {
	var e *errors.Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return ""
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		wantCode string
		wantLine int
	}{
		{"unsupported extension", "cfg.ini", "port=1", "E023", 0},
		{"bad toml", "cfg.toml", "name = \"x\"\n[server\nport = 1\n", "E021", 0},
		{"unknown toml key", "cfg.toml", "colour = \"red\"\n", "E021", 0},
		{"bad json", "cfg.json", "{\n  \"name\": \"x\",\n  oops\n}", "E021", 3},
		{"unknown json key", "cfg.json", `{"colour": "red"}`, "E021", 0},
		{"bad yaml", "cfg.yaml", "server:\n  port: [1\n", "E021", 0},
		{"out of range port", "cfg.yaml", "server:\n  port: 70000\n", "E022", 0},
		{"negative depth", "cfg.toml", "[binding]\nmax_depth = -1\n", "E022", 0},
		{"bad namespace", "cfg.json", `{"metrics": {"namespace": "a-b"}}`, "E022", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			if code(err) != tt.wantCode {
				t.Fatalf("err = %v, want code %s", err, tt.wantCode)
			}
			if tt.wantLine == 0 {
				return
			}
			var e *errors.Error
			stderrors.As(err, &e)
			if e.Location == nil || e.Location.Line != tt.wantLine {
				t.Errorf("Location = %v, want line %d", e.Location, tt.wantLine)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if code(err) != "E020" {
		t.Errorf("err = %v, want E020", err)
	}
}

func TestBindingConfig(t *testing.T) {
	cfg := New()
	cfg.Binding.OverrideWithState = true
	cfg.Binding.MaxDepth = 3

	bc := cfg.BindingConfig()
	if !bc.OverrideWithState || bc.MaxDepth != 3 {
		t.Errorf("BindingConfig = %+v", bc)
	}

	cell := binding.NewCell("x", binding.WithConfig(bc))
	if !cell.Override() {
		t.Error("cell should carry the override policy")
	}
}
