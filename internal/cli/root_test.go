package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xabinapal/ccnotify/internal/event"
)

// recordingBackend records dispatched notifications.
type recordingBackend struct {
	calls []recordedCall
	err   error
}

type recordedCall struct {
	sound   bool
	title   string
	message string
}

func (b *recordingBackend) Notify(title, message, iconPath string) error {
	b.calls = append(b.calls, recordedCall{sound: false, title: title, message: message})
	return b.err
}

func (b *recordingBackend) Alert(title, message, iconPath string) error {
	b.calls = append(b.calls, recordedCall{sound: true, title: title, message: message})
	return b.err
}

// testEnv isolates configuration and history under a temp dir.
type testEnv struct {
	configDir   string
	dataDir     string
	historyFile string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	tmp := t.TempDir()
	env := testEnv{
		configDir:   filepath.Join(tmp, "config"),
		dataDir:     filepath.Join(tmp, "data", "ccnotify"),
		historyFile: filepath.Join(tmp, "claude", "history.jsonl"),
	}
	t.Setenv("CCNOTIFY_CONFIG_DIR", env.configDir)
	t.Setenv("XDG_DATA_HOME", filepath.Dir(env.dataDir))
	t.Setenv("CLAUDE_CONFIG_DIR", filepath.Dir(env.historyFile))
	return env
}

func (e testEnv) writeHistory(t *testing.T, lines ...string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(e.historyFile), 0700); err != nil {
		t.Fatalf("failed to create history dir: %v", err)
	}
	if err := os.WriteFile(e.historyFile, []byte(strings.Join(lines, "\n")+"\n"), 0600); err != nil {
		t.Fatalf("failed to write history: %v", err)
	}
}

func (e testEnv) writeConfig(t *testing.T, content string) {
	t.Helper()
	if err := os.MkdirAll(e.configDir, 0700); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(e.configDir, "config.yaml"), []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
}

func runCLI(t *testing.T, stdin string, backend *recordingBackend, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := New(WithIO(strings.NewReader(stdin), &stdout, &stderr), WithBackend(backend))
	if args == nil {
		// cobra falls back to os.Args when args is nil
		args = []string{}
	}
	app.SetArgs(args)
	err := app.Execute(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestHookWithSessionDisplay(t *testing.T) {
	env := newTestEnv(t)
	env.writeHistory(t, `{"sessionId":"s1","display":"Fix login bug across services"}`)

	backend := &recordingBackend{}
	input := `{"session_id":"s1","message":"Task done","notification_type":"auth_success","cwd":"/x/myproj"}`

	stdout, stderr, err := runCLI(t, input, backend)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(backend.calls) != 1 {
		t.Fatalf("expected exactly 1 notification, got %d", len(backend.calls))
	}
	call := backend.calls[0]
	if call.title != "✅ Auth Success [myproj]" {
		t.Errorf("unexpected title %q", call.title)
	}
	if call.message != "Fix login bug across services...\nTask done" {
		t.Errorf("unexpected message %q", call.message)
	}
	if !call.sound {
		t.Error("expected notification with default sound")
	}

	if stdout != "" || stderr != "" {
		t.Errorf("expected no output on success, got stdout=%q stderr=%q", stdout, stderr)
	}
}

func TestHookDefaults(t *testing.T) {
	newTestEnv(t)
	backend := &recordingBackend{}

	if _, _, err := runCLI(t, `{}`, backend); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(backend.calls) != 1 {
		t.Fatalf("expected exactly 1 notification, got %d", len(backend.calls))
	}
	if backend.calls[0].title != "Claude Code [Unknown]" {
		t.Errorf("unexpected title %q", backend.calls[0].title)
	}
	if backend.calls[0].message != event.DefaultMessage {
		t.Errorf("unexpected message %q", backend.calls[0].message)
	}
}

func TestHookMalformedInput(t *testing.T) {
	inputs := []string{
		"not json",
		"null",
		`{"message":"x"} not json`,
		`{"message":"x"}}`,
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			newTestEnv(t)
			backend := &recordingBackend{}

			_, _, err := runCLI(t, in, backend)
			if err == nil {
				t.Fatal("expected error for malformed input")
			}
			if !errors.Is(err, event.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
			if len(backend.calls) != 0 {
				t.Errorf("expected no notification, got %d", len(backend.calls))
			}
		})
	}
}

func TestHookIgnoresOutputFormatWithoutDryRun(t *testing.T) {
	newTestEnv(t)
	backend := &recordingBackend{}

	_, _, err := runCLI(t, `{"message":"m"}`, backend, "-o", "yaml")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(backend.calls) != 1 {
		t.Errorf("expected one notification, got %d", len(backend.calls))
	}
}

func TestHookDryRunInvalidOutputFormat(t *testing.T) {
	newTestEnv(t)
	backend := &recordingBackend{}

	stdout, _, err := runCLI(t, `{"message":"m"}`, backend, "--dry-run", "-o", "yaml")
	if err == nil {
		t.Fatal("expected error for invalid output format")
	}
	if stdout != "" {
		t.Errorf("expected no output, got %q", stdout)
	}
	if len(backend.calls) != 0 {
		t.Errorf("expected no notification, got %d", len(backend.calls))
	}
}

func TestHookIgnoresDispatchError(t *testing.T) {
	newTestEnv(t)
	backend := &recordingBackend{err: errors.New("no notification daemon")}

	stdout, stderr, err := runCLI(t, `{"message":"hi"}`, backend)
	if err != nil {
		t.Fatalf("dispatch errors must not fail the hook, got %v", err)
	}
	if len(backend.calls) != 1 {
		t.Errorf("expected exactly 1 dispatch attempt, got %d", len(backend.calls))
	}
	if stdout != "" || stderr != "" {
		t.Errorf("expected no output, got stdout=%q stderr=%q", stdout, stderr)
	}
}

func TestHookHistoryFileFlag(t *testing.T) {
	newTestEnv(t)
	history := filepath.Join(t.TempDir(), "custom.jsonl")
	if err := os.WriteFile(history, []byte(`{"sessionId":"abc","display":"Custom history"}`+"\n"), 0600); err != nil {
		t.Fatalf("failed to write history: %v", err)
	}

	backend := &recordingBackend{}
	_, _, err := runCLI(t, `{"session_id":"abc","message":"m","cwd":"/w/proj"}`, backend, "--history-file", history)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if got := backend.calls[0].message; got != "Custom history...\nm" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestHookSoundDisabledByConfig(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig(t, "sound: false\n")

	backend := &recordingBackend{}
	if _, _, err := runCLI(t, `{"message":"quiet"}`, backend); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(backend.calls) != 1 || backend.calls[0].sound {
		t.Errorf("expected 1 silent notification, got %+v", backend.calls)
	}
}

func TestHookInvalidConfigFallsBackToDefaults(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig(t, "log:\n  level: shouting\n")

	backend := &recordingBackend{}
	_, stderr, err := runCLI(t, `{"message":"still sent"}`, backend)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(backend.calls) != 1 {
		t.Fatalf("expected exactly 1 notification, got %d", len(backend.calls))
	}
	if !strings.Contains(stderr, "using defaults") {
		t.Errorf("expected a warning on stderr, got %q", stderr)
	}
}

func TestHookDryRunJSON(t *testing.T) {
	env := newTestEnv(t)
	env.writeHistory(t, `{"sessionId":"s1","display":"Write release notes"}`)

	backend := &recordingBackend{}
	stdout, _, err := runCLI(t,
		`{"session_id":"s1","message":"Waiting","notification_type":"idle_prompt","cwd":"/r/docs"}`,
		backend, "--dry-run", "-o", "json")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(backend.calls) != 0 {
		t.Errorf("dry run must not dispatch, got %d calls", len(backend.calls))
	}

	var got struct {
		Title   string `json:"title"`
		Message string `json:"message"`
		Sound   bool   `json:"sound"`
	}
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("failed to parse dry run output %q: %v", stdout, err)
	}
	if got.Title != "💬 Awaiting Input [docs]" {
		t.Errorf("unexpected title %q", got.Title)
	}
	if got.Message != "Write release notes...\nWaiting" {
		t.Errorf("unexpected message %q", got.Message)
	}
	if !got.Sound {
		t.Error("expected sound to be reported")
	}
}

func TestHookDryRunText(t *testing.T) {
	newTestEnv(t)

	stdout, _, err := runCLI(t, `{"message":"hello","notification_type":"permission_prompt","cwd":"/p/app"}`,
		&recordingBackend{}, "--dry-run")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	for _, want := range []string{"Title:   🔐 Permission Needed [app]", "Message: hello", "Sound:   true"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected output to contain %q, got %q", want, stdout)
		}
	}
}

func TestHookRejectsArguments(t *testing.T) {
	newTestEnv(t)
	backend := &recordingBackend{}

	if _, _, err := runCLI(t, `{}`, backend, "unexpected"); err == nil {
		t.Error("expected error for positional arguments")
	}
	if len(backend.calls) != 0 {
		t.Errorf("expected no notification, got %d", len(backend.calls))
	}
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := runCLI(t, "", &recordingBackend{}, "version")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.HasPrefix(stdout, "ccnotify ") {
		t.Errorf("unexpected version output %q", stdout)
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range completionShells {
		t.Run(shell, func(t *testing.T) {
			stdout, _, err := runCLI(t, "", &recordingBackend{}, "completion", shell)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if stdout == "" {
				t.Error("expected completion script output")
			}
		})
	}

	if _, _, err := runCLI(t, "", &recordingBackend{}, "completion", "tcsh"); err == nil {
		t.Error("expected error for unsupported shell")
	}
}
