package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTestConfig writes a config pointing every path into dir and
// returns the config file path.
func writeTestConfig(t *testing.T, dir string) string {
	t.Helper()
	content := fmt.Sprintf(`[paths]
data_dir = %q
log_dir = %q
catalog_path = %q
ratings_path = %q

[matching]
politeness_delay_seconds = 0

[review_cache]
enabled = false
`,
		filepath.Join(dir, "data"),
		filepath.Join(dir, "logs"),
		filepath.Join(dir, "basics.tsv"),
		filepath.Join(dir, "ratings.tsv"))
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func runCommand(t *testing.T, configPath, input string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetArgs(append([]string{"--config", configPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestWatchLaterAddAndShow(t *testing.T) {
	configPath := writeTestConfig(t, t.TempDir())

	output, err := runCommand(t, configPath, "", "watchlater", "add", "The Matrix")
	if err != nil {
		t.Fatalf("watchlater add failed: %v", err)
	}
	if !strings.Contains(output, "The Matrix") {
		t.Errorf("add output should name the title: %q", output)
	}

	output, err = runCommand(t, configPath, "", "watchlater", "show")
	if err != nil {
		t.Fatalf("watchlater show failed: %v", err)
	}
	if !strings.Contains(output, "The Matrix") {
		t.Errorf("show output should list the title: %q", output)
	}
}

func TestWatchLaterRemove(t *testing.T) {
	configPath := writeTestConfig(t, t.TempDir())

	if _, err := runCommand(t, configPath, "", "watchlater", "add", "Heat"); err != nil {
		t.Fatalf("watchlater add failed: %v", err)
	}
	output, err := runCommand(t, configPath, "1\n", "watchlater", "remove")
	if err != nil {
		t.Fatalf("watchlater remove failed: %v", err)
	}
	if !strings.Contains(output, "Removed") {
		t.Errorf("remove output mismatch: %q", output)
	}

	output, err = runCommand(t, configPath, "", "watchlater", "show")
	if err != nil {
		t.Fatalf("watchlater show failed: %v", err)
	}
	if !strings.Contains(output, "empty") {
		t.Errorf("list should be empty after removal: %q", output)
	}
}

func TestPreferencesShowUnset(t *testing.T) {
	configPath := writeTestConfig(t, t.TempDir())

	output, err := runCommand(t, configPath, "", "preferences", "show")
	if err != nil {
		t.Fatalf("preferences show failed: %v", err)
	}
	if !strings.Contains(output, "Preferences not set") {
		t.Errorf("unset profile message missing: %q", output)
	}
}

func TestRecommendWithoutPreferences(t *testing.T) {
	configPath := writeTestConfig(t, t.TempDir())

	output, err := runCommand(t, configPath, "", "recommend")
	if err != nil {
		t.Fatalf("recommend failed: %v", err)
	}
	if !strings.Contains(output, "Preferences not set") {
		t.Errorf("recommend must refuse to run without preferences: %q", output)
	}
}

func TestSearchMissingCatalog(t *testing.T) {
	configPath := writeTestConfig(t, t.TempDir())

	output, err := runCommand(t, configPath, "", "search", "Alien")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if !strings.Contains(output, "No catalog entry") {
		t.Errorf("missing catalog should read as no matches: %q", output)
	}
}

func TestConfigInit(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "config.toml")

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"config", "init", "--path", target})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample config not written: %v", err)
	}

	cmd = newRootCommand()
	out.Reset()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"config", "init", "--path", target})
	if err := cmd.Execute(); err == nil {
		t.Fatal("second init without --overwrite should fail")
	}
}

func TestMenuExitsCleanly(t *testing.T) {
	configPath := writeTestConfig(t, t.TempDir())

	output, err := runCommand(t, configPath, "5\n")
	if err != nil {
		t.Fatalf("menu run failed: %v", err)
	}
	if !strings.Contains(output, "Bye.") {
		t.Errorf("menu should exit on option 5: %q", output)
	}
}

func TestMenuRepromptsOnInvalidSelection(t *testing.T) {
	configPath := writeTestConfig(t, t.TempDir())

	output, err := runCommand(t, configPath, "9\nnope\n5\n")
	if err != nil {
		t.Fatalf("menu run failed: %v", err)
	}
	if !strings.Contains(output, "between 1 and 5") {
		t.Errorf("invalid selections should re-prompt: %q", output)
	}
}

func TestMenuEOFExitsCleanly(t *testing.T) {
	configPath := writeTestConfig(t, t.TempDir())

	if _, err := runCommand(t, configPath, ""); err != nil {
		t.Fatalf("menu should exit cleanly on EOF: %v", err)
	}
}
