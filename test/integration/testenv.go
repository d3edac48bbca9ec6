//go:build integration

// Package integration provides integration tests for the ccnotify binary.
package integration

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// TestEnv is an isolated home for one ccnotify run.
type TestEnv struct {
	Home        string
	ConfigDir   string
	ClaudeDir   string
	HistoryFile string
}

// NewTestEnv creates an empty environment under a temp dir.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	home := t.TempDir()
	env := &TestEnv{
		Home:      home,
		ConfigDir: filepath.Join(home, ".config", "ccnotify"),
		ClaudeDir: filepath.Join(home, ".claude"),
	}
	env.HistoryFile = filepath.Join(env.ClaudeDir, "history.jsonl")

	for _, dir := range []string{env.ConfigDir, env.ClaudeDir} {
		if err := os.MkdirAll(dir, 0700); err != nil {
			t.Fatalf("failed to create %s: %v", dir, err)
		}
	}
	return env
}

// WriteHistory writes lines to the Claude Code history log.
func (e *TestEnv) WriteHistory(t *testing.T, lines ...string) {
	t.Helper()
	if err := os.WriteFile(e.HistoryFile, []byte(strings.Join(lines, "\n")+"\n"), 0600); err != nil {
		t.Fatalf("failed to write history: %v", err)
	}
}

// WriteConfig writes the ccnotify configuration file.
func (e *TestEnv) WriteConfig(t *testing.T, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(e.ConfigDir, "config.yaml"), []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
}

// BinaryPath returns the path to the ccnotify binary.
func BinaryPath(t *testing.T) string {
	t.Helper()

	if path := os.Getenv("CCNOTIFY_BINARY"); path != "" {
		return path
	}

	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("failed to get caller information")
	}

	// Go up from test/integration to project root
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(filename)))
	binaryPath := filepath.Join(projectRoot, "bin", "ccnotify")
	if runtime.GOOS == "windows" {
		binaryPath += ".exe"
	}

	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Fatalf("ccnotify binary not found at %s - run 'go build -o bin/ccnotify ./cmd/ccnotify' first", binaryPath)
	}

	return binaryPath
}

// Run runs ccnotify with stdin and args inside the environment.
func (e *TestEnv) Run(ctx context.Context, t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.CommandContext(ctx, BinaryPath(t), args...)
	cmd.Env = append(os.Environ(),
		"HOME="+e.Home,
		"USERPROFILE="+e.Home,
		"XDG_CONFIG_HOME="+filepath.Join(e.Home, ".config"),
		"CCNOTIFY_CONFIG_DIR="+e.ConfigDir,
		"CLAUDE_CONFIG_DIR="+e.ClaudeDir,
	)
	cmd.Stdin = strings.NewReader(stdin)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}
