package testutil

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// E2EHarness provides a test harness for end-to-end testing of the feedback CLI.
// It builds the binary once and runs commands in an isolated home and
// working directory.
type E2EHarness struct {
	t          *testing.T
	binaryPath string
	workDir    string
	env        []string
}

// CommandResult holds the result of running a feedback command.
type CommandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Err      error
}

// NewE2EHarness creates a new E2E test harness.
func NewE2EHarness(t *testing.T) *E2EHarness {
	t.Helper()

	binaryPath := buildFeedbackBinary(t)
	root := t.TempDir()
	workDir := filepath.Join(root, "work")
	if err := os.MkdirAll(workDir, 0755); err != nil {
		t.Fatalf("failed to create work dir: %v", err)
	}

	h := &E2EHarness{
		t:          t,
		binaryPath: binaryPath,
		workDir:    workDir,
		env:        os.Environ(),
	}
	h.SetEnv("HOME", filepath.Join(root, "home"))
	h.SetEnv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	h.SetEnv("FEEDBACK_LOG_DIR", filepath.Join(root, "logs"))
	for _, k := range []string{"FEEDBACK_API_URL", "FEEDBACK_TIMEOUT", "PORT", "FEEDBACK_ALLOWED_ORIGINS", "FEEDBACK_LOG_LEVEL"} {
		h.UnsetEnv(k)
	}
	return h
}

// WorkDir returns the directory commands run in.
func (h *E2EHarness) WorkDir() string {
	return h.workDir
}

// ConfigPath returns where the CLI keeps its config file on linux.
func (h *E2EHarness) ConfigPath() string {
	return filepath.Join(h.getEnv("XDG_CONFIG_HOME"), "feedback", "config.toml")
}

// SetEnv adds or updates an environment variable for subsequent commands.
func (h *E2EHarness) SetEnv(key, value string) {
	for i, e := range h.env {
		if strings.HasPrefix(e, key+"=") {
			h.env[i] = key + "=" + value
			return
		}
	}
	h.env = append(h.env, key+"="+value)
}

// UnsetEnv removes an environment variable for subsequent commands.
func (h *E2EHarness) UnsetEnv(key string) {
	env := h.env[:0]
	for _, e := range h.env {
		if !strings.HasPrefix(e, key+"=") {
			env = append(env, e)
		}
	}
	h.env = env
}

func (h *E2EHarness) getEnv(key string) string {
	for _, e := range h.env {
		if strings.HasPrefix(e, key+"=") {
			return strings.TrimPrefix(e, key+"=")
		}
	}
	return ""
}

// Run executes a feedback command and returns the result.
func (h *E2EHarness) Run(args ...string) *CommandResult {
	h.t.Helper()

	cmd := exec.Command(h.binaryPath, args...)
	cmd.Dir = h.workDir
	cmd.Env = h.env

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
	}

	return &CommandResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
		Err:      err,
	}
}

// Submit runs "feedback submit" against apiURL with extra flags.
func (h *E2EHarness) Submit(apiURL string, flags ...string) *CommandResult {
	return h.Run(append([]string{"submit", "-api", apiURL}, flags...)...)
}

// Health runs "feedback health" against apiURL.
func (h *E2EHarness) Health(apiURL string) *CommandResult {
	return h.Run("health", "-api", apiURL)
}

// WriteFile writes a file relative to the work directory.
func (h *E2EHarness) WriteFile(relativePath, content string) error {
	path := filepath.Join(h.workDir, relativePath)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}

// FileExists checks if a file exists.
func (h *E2EHarness) FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Assertions

// AssertSuccess asserts that the command succeeded.
func (r *CommandResult) AssertSuccess(t *testing.T) {
	t.Helper()
	if r.Err != nil {
		t.Fatalf("expected success, got error: %v\nstdout: %s\nstderr: %s", r.Err, r.Stdout, r.Stderr)
	}
	if r.ExitCode != 0 {
		t.Fatalf("expected exit code 0, got %d\nstdout: %s\nstderr: %s", r.ExitCode, r.Stdout, r.Stderr)
	}
}

// AssertFailed asserts that the command failed.
func (r *CommandResult) AssertFailed(t *testing.T) {
	t.Helper()
	if r.Err == nil && r.ExitCode == 0 {
		t.Fatalf("expected failure, but command succeeded\nstdout: %s", r.Stdout)
	}
}

// AssertStdoutContains asserts that stdout contains a substring.
func (r *CommandResult) AssertStdoutContains(t *testing.T, substr string) {
	t.Helper()
	if !strings.Contains(r.Stdout, substr) {
		t.Fatalf("expected stdout to contain %q, got:\n%s", substr, r.Stdout)
	}
}

// AssertStdoutNotContains asserts that stdout does not contain a substring.
func (r *CommandResult) AssertStdoutNotContains(t *testing.T, substr string) {
	t.Helper()
	if strings.Contains(r.Stdout, substr) {
		t.Fatalf("expected stdout to NOT contain %q, got:\n%s", substr, r.Stdout)
	}
}

// AssertStderrContains asserts that stderr contains a substring.
func (r *CommandResult) AssertStderrContains(t *testing.T, substr string) {
	t.Helper()
	if !strings.Contains(r.Stderr, substr) {
		t.Fatalf("expected stderr to contain %q, got:\n%s", substr, r.Stderr)
	}
}

// buildFeedbackBinary builds the feedback binary for testing.
// The binary is cached per test run.
var cachedBinaryPath string

func buildFeedbackBinary(t *testing.T) string {
	t.Helper()

	if cachedBinaryPath != "" {
		if _, err := os.Stat(cachedBinaryPath); err == nil {
			return cachedBinaryPath
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}

	projectRoot := findProjectRoot(wd)
	if projectRoot == "" {
		t.Fatalf("could not find project root (go.mod)")
	}

	tmpDir, err := os.MkdirTemp("", "feedback-e2e-bin-*")
	if err != nil {
		t.Fatalf("failed to create temp dir for binary: %v", err)
	}

	binaryPath := filepath.Join(tmpDir, "feedback")

	cmd := exec.Command("go", "build", "-o", binaryPath, ".")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("failed to build feedback binary: %v\noutput: %s", err, output)
	}

	cachedBinaryPath = binaryPath
	return binaryPath
}

func findProjectRoot(start string) string {
	dir := start
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
