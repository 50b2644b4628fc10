package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/sprint/internal/config"
	"github.com/verte-zerg/sprint/internal/model"
	"github.com/verte-zerg/sprint/internal/sentences"
)

func resetFlags(t *testing.T) {
	t.Helper()
	runSentences, runSeed, runLogFile, runDebug, runNoSummary = "", 0, "", false, false
	t.Cleanup(func() {
		runSentences, runSeed, runLogFile, runDebug, runNoSummary = "", 0, "", false, false
	})
}

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path := config.DefaultConfigPath()
	if err := ensureConfigFile(path); err != nil {
		t.Fatalf("ensure config: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("template should decode: %v", err)
	}
	if cfg.Challenge.Seed != nil || cfg.Challenge.Sentences != nil {
		t.Fatalf("expected all template values commented out, got %+v", cfg)
	}
}

func TestEnsureConfigFileKeepsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sprint", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("[challenge]\nseed = 3\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := ensureConfigFile(path); err != nil {
		t.Fatalf("ensure config: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "[challenge]\nseed = 3\n" {
		t.Fatalf("existing config overwritten: %s", data)
	}
}

func TestSentencesCommandListsPool(t *testing.T) {
	resetFlags(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	pool := filepath.Join(t.TempDir(), "pool.txt")
	if err := os.WriteFile(pool, []byte("first one\nsecond one\n"), 0o644); err != nil {
		t.Fatalf("write pool: %v", err)
	}

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"sentences", "--sentences", pool})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	want := " 1. first one\n 2. second one\n"
	if out.String() != want {
		t.Fatalf("unexpected output:\n%q\nwant\n%q", out.String(), want)
	}
}

func TestSentencesCommandDefaults(t *testing.T) {
	resetFlags(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"sentences"})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != len(sentences.Defaults()) {
		t.Fatalf("expected %d sentences, got %d", len(sentences.Defaults()), len(lines))
	}
}

func TestConfigFileSuppliesSentencesUnlessFlagSet(t *testing.T) {
	resetFlags(t)
	cfgHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", cfgHome)
	dir := t.TempDir()
	fromFile := filepath.Join(dir, "file.txt")
	fromFlag := filepath.Join(dir, "flag.txt")
	for path, body := range map[string]string{fromFile: "from file\n", fromFlag: "from flag\n"} {
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	cfgPath := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	body := "[challenge]\nsentences = \"" + filepath.ToSlash(fromFile) + "\"\nseed = 9\n"
	if err := os.WriteFile(cfgPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"sentences"})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out.String(), "from file") {
		t.Fatalf("expected config sentences, got %q", out.String())
	}

	resetFlags(t)
	root = newRootCmd()
	out.Reset()
	root.SetOut(&out)
	root.SetArgs([]string{"sentences", "--sentences", fromFlag})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out.String(), "from flag") {
		t.Fatalf("expected flag to override config, got %q", out.String())
	}
}

func TestBuildPoolSeeded(t *testing.T) {
	cfg := buildTestConfig(42)
	a, err := buildPool(cfg)
	if err != nil {
		t.Fatalf("build pool: %v", err)
	}
	b, err := buildPool(cfg)
	if err != nil {
		t.Fatalf("build pool: %v", err)
	}
	for i := 0; i < 10; i++ {
		if a.Pick() != b.Pick() {
			t.Fatalf("seeded pools diverged at pick %d", i)
		}
	}
}

func buildTestConfig(seed int64) model.Config {
	return model.Config{Seed: seed}
}
