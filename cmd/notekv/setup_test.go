// Package main provides the entry point for the notekv CLI.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// runInDir changes to the given directory, runs testFunc, then restores the original directory.
func runInDir(t *testing.T, dir string, testFunc func()) {
	t.Helper()
	oldDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working dir: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to chdir to %s: %v", dir, err)
	}
	defer func() {
		if err := os.Chdir(oldDir); err != nil {
			t.Errorf("failed to restore dir: %v", err)
		}
	}()
	testFunc()
}

// runGit runs a git command in the given directory.
func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v failed: %v\nOutput: %s", args, err, out)
	}
}

// runGitOutput runs a git command and returns stdout.
func runGitOutput(t *testing.T, dir string, args ...string) string {
	t.Helper()
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("git %v failed: %v", args, err)
	}
	return string(out)
}

// setupRepoWithRemote creates a work repo with one commit and a bare repo
// wired up as its origin. Returns the work repo path.
func setupRepoWithRemote(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()

	bareDir := filepath.Join(tempDir, "remote.git")
	runGit(t, tempDir, "init", "--bare", bareDir)

	workDir := filepath.Join(tempDir, "work")
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		t.Fatalf("failed to create work dir: %v", err)
	}
	runGit(t, workDir, "init")
	runGit(t, workDir, "config", "user.email", "test@example.com")
	runGit(t, workDir, "config", "user.name", "Test User")
	runGit(t, workDir, "remote", "add", "origin", bareDir)

	testFile := filepath.Join(workDir, "test.txt")
	if err := os.WriteFile(testFile, []byte("test content"), 0o600); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	runGit(t, workDir, "add", "test.txt")
	runGit(t, workDir, "commit", "-m", "Initial commit")

	return workDir
}

// execCommand runs the root command with args, returning combined output and error.
func execCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// parseJSONOutput parses command output as a JSON object.
func parseJSONOutput(t *testing.T, out string) map[string]any {
	t.Helper()
	var result map[string]any
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("failed to parse JSON output: %v\nOutput: %s", err, out)
	}
	return result
}

// clearActionEnv makes sure action inputs and CI markers from the host
// environment don't leak into command behavior under test.
func clearActionEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"INPUT_VALUES", "INPUT_VALUES_FILE", "INPUT_CUSTOM_REF",
		"GITHUB_ACTIONS", "CI",
	} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
}
