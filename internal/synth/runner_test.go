package synth

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeStdinFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "control.input")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunExecutableSuccess(t *testing.T) {
	dir := t.TempDir()
	bin := writeScript(t, dir, "echo_lu", "#!/bin/sh\ncat\n")
	stdin := writeStdinFile(t, dir, "LAMBDA_MIN: 15600\n")

	outcome, err := RunExecutable(context.Background(), bin, stdin, dir, time.Minute)
	if err != nil {
		t.Fatalf("RunExecutable: %v", err)
	}
	if outcome.ExitCode != 0 {
		t.Errorf("exit code = %d, want 0", outcome.ExitCode)
	}
	if !strings.Contains(outcome.Stdout, "LAMBDA_MIN") {
		t.Errorf("stdin was not forwarded, stdout = %q", outcome.Stdout)
	}
	if outcome.TimedOut {
		t.Error("fast process marked as timed out")
	}
}

func TestRunExecutableNonZeroExit(t *testing.T) {
	dir := t.TempDir()
	bin := writeScript(t, dir, "fail_lu", "#!/bin/sh\necho 'bad model' >&2\nexit 2\n")
	stdin := writeStdinFile(t, dir, "input\n")

	outcome, err := RunExecutable(context.Background(), bin, stdin, dir, time.Minute)
	if err != nil {
		t.Fatalf("non-zero exit must not be an error, got: %v", err)
	}
	if outcome.ExitCode != 2 {
		t.Errorf("exit code = %d, want 2", outcome.ExitCode)
	}
	if !strings.Contains(outcome.Stderr, "bad model") {
		t.Errorf("stderr not captured, got %q", outcome.Stderr)
	}
}

func TestRunExecutableTimeout(t *testing.T) {
	dir := t.TempDir()
	bin := writeScript(t, dir, "slow_lu", "#!/bin/sh\nsleep 5\n")
	stdin := writeStdinFile(t, dir, "input\n")

	start := time.Now()
	outcome, err := RunExecutable(context.Background(), bin, stdin, dir, 100*time.Millisecond)
	if err != nil {
		t.Fatalf("RunExecutable: %v", err)
	}
	if !outcome.TimedOut {
		t.Fatal("process past its deadline was not marked as timed out")
	}
	if time.Since(start) > 3*time.Second {
		t.Error("timed-out process was not killed promptly")
	}
}

func TestRunExecutableMissingBinary(t *testing.T) {
	dir := t.TempDir()
	stdin := writeStdinFile(t, dir, "input\n")

	_, err := RunExecutable(context.Background(), filepath.Join(dir, "nope_lu"), stdin, dir, time.Minute)
	if err == nil {
		t.Fatal("missing binary should be an error")
	}
}

func TestRunExecutableMissingStdinFile(t *testing.T) {
	dir := t.TempDir()
	bin := writeScript(t, dir, "echo_lu", "#!/bin/sh\ncat\n")

	_, err := RunExecutable(context.Background(), bin, filepath.Join(dir, "nope.input"), dir, time.Minute)
	if err == nil {
		t.Fatal("missing control input should be an error")
	}
}
