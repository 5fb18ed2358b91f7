package main

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kyu49/euonymus/internal/errors"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != version {
		t.Errorf("out = %q", out)
	}
}

func TestRenderStdout(t *testing.T) {
	out, _, err := run(t, "render")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"<!DOCTYPE html>", "<title>euonymus</title>", "Read the binding docs"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(out, "data-eid") {
		t.Error("static render should not carry element ids")
	}
}

func TestRenderToFileWithConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "euonymus.yaml")
	if err := os.WriteFile(cfgPath, []byte("name: My Todos\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	outPath := filepath.Join(dir, "index.html")

	_, stderr, err := run(t, "render", "--config", cfgPath, "--out", outPath)
	if err != nil {
		t.Fatal(err)
	}
	page, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(page), "<title>My Todos</title>") {
		t.Error("config name not used")
	}
	if !strings.Contains(stderr, "Wrote "+outPath) {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestConfigErrorIsCoded(t *testing.T) {
	_, _, err := run(t, "render", "--config", filepath.Join(t.TempDir(), "missing.toml"))
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Code != "E020" {
		t.Errorf("err = %v, want E020", err)
	}
}

func TestPublishRequiresBucket(t *testing.T) {
	_, _, err := run(t, "publish")
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Code != "E031" {
		t.Errorf("err = %v, want E031", err)
	}
}

func TestServeRejectsBadPort(t *testing.T) {
	_, _, err := run(t, "serve", "--port", "70000")
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Code != "E022" {
		t.Errorf("err = %v, want E022", err)
	}
}
