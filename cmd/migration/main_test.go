package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseSteps(t *testing.T) {
	t.Parallel()

	if got, err := parseSteps(nil); err != nil || got != 1 {
		t.Fatalf("default steps: got=%d err=%v want=1", got, err)
	}
	if got, err := parseSteps([]string{" 3 "}); err != nil || got != 3 {
		t.Fatalf("explicit steps: got=%d err=%v want=3", got, err)
	}
	for _, raw := range []string{"0", "-2", "x"} {
		if _, err := parseSteps([]string{raw}); err == nil {
			t.Fatalf("expected error for steps %q", raw)
		}
	}
}

func TestParseVersionAndTarget(t *testing.T) {
	t.Parallel()

	if got, err := parseVersion("7"); err != nil || got != 7 {
		t.Fatalf("parseVersion: got=%d err=%v want=7", got, err)
	}
	if _, err := parseVersion("-1"); err == nil {
		t.Fatalf("expected error for negative version")
	}
	if got, err := parseTarget("12"); err != nil || got != 12 {
		t.Fatalf("parseTarget: got=%d err=%v want=12", got, err)
	}
	if _, err := parseTarget("-12"); err == nil {
		t.Fatalf("expected error for negative target")
	}
}

func TestResolveMigrationsDir_PrefersOverride(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	got, err := resolveMigrationsDir("", filepath.Join(dir, "missing"), dir)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != dir {
		t.Fatalf("unexpected dir: got=%s want=%s", got, dir)
	}
}

func TestResolveMigrationsDir_SkipsFiles(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "001.up.sql")
	if err := os.WriteFile(file, []byte("select 1;"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if got, err := resolveMigrationsDir(file); err == nil && got == file {
		t.Fatalf("file must not resolve as a migrations dir")
	}
}

func TestCommandsHaveUsage(t *testing.T) {
	t.Parallel()

	for name, cmd := range commands {
		if cmd.usage == "" || cmd.run == nil {
			t.Fatalf("command %s is incomplete", name)
		}
	}
}
