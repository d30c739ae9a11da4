package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "metallirc.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestLoadValidConfig(t *testing.T) {
	path := writeTemp(t, `
[metallircd]
server_name = "irc.example.org"
address = "0.0.0.0"
port = 6667
loglevel = "Info"
logfile = "metallircd.log"
workers = 4

[module.away]
path = "./mods/away.so"
extra_option = "yes"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Metallircd.ServerName != "irc.example.org" {
		t.Errorf("ServerName = %q", cfg.Metallircd.ServerName)
	}
	if cfg.EffectiveWorkers() != 4 {
		t.Errorf("EffectiveWorkers = %d, want 4", cfg.EffectiveWorkers())
	}
	mod, ok := cfg.Module["away"]
	if !ok {
		t.Fatal("expected module.away to be present")
	}
	if mod.Path != "./mods/away.so" {
		t.Errorf("module.away.path = %q", mod.Path)
	}
	if mod.Extra["extra_option"] != "yes" {
		t.Errorf("module.away.extra_option = %v", mod.Extra["extra_option"])
	}
}

func TestLoadMissingRequiredKey(t *testing.T) {
	path := writeTemp(t, `
[metallircd]
address = "0.0.0.0"
port = 6667
`)
	if _, err := Load(path); err == nil {
		t.Error("expected an error for missing server_name")
	}
}

func TestLoadModuleMissingPath(t *testing.T) {
	path := writeTemp(t, `
[metallircd]
server_name = "irc.example.org"
address = "0.0.0.0"
port = 6667

[module.broken]
foo = "bar"
`)
	if _, err := Load(path); err == nil {
		t.Error("expected an error for module table missing path")
	}
}

func TestDefaultWorkersAndLogLevel(t *testing.T) {
	path := writeTemp(t, `
[metallircd]
server_name = "irc.example.org"
address = "0.0.0.0"
port = 6667
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.EffectiveWorkers() != 2 {
		t.Errorf("EffectiveWorkers = %d, want default 2", cfg.EffectiveWorkers())
	}
	if cfg.EffectiveLogLevel() != LevelInfo {
		t.Errorf("EffectiveLogLevel = %q, want Info", cfg.EffectiveLogLevel())
	}
}
