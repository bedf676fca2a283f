package runner

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestExecRunner_Capture(t *testing.T) {
	out, err := ExecRunner{}.Run(context.Background(), 5*time.Second, Capture, "sh", "-c", "echo hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(string(out)) != "hello" {
		t.Errorf("got %q, want hello", out)
	}
}

func TestExecRunner_CaptureFailure(t *testing.T) {
	_, err := ExecRunner{}.Run(context.Background(), 5*time.Second, Capture, "sh", "-c", "exit 3")
	if err == nil {
		t.Fatal("expected exit error")
	}
}

func TestExecRunner_Timeout(t *testing.T) {
	start := time.Now()
	_, err := ExecRunner{}.Run(context.Background(), 100*time.Millisecond, Capture, "sleep", "5")
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if time.Since(start) > 3*time.Second {
		t.Errorf("timeout not enforced")
	}
}

func TestExecRunner_Detach(t *testing.T) {
	marker := filepath.Join(t.TempDir(), "fired")

	start := time.Now()
	_, err := ExecRunner{}.Run(context.Background(), time.Second, Detach, "sh", "-c", "sleep 1; touch "+marker)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if time.Since(start) > 800*time.Millisecond {
		t.Errorf("detach should not wait for the child")
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(marker); err == nil {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatal("detached command never ran")
}

func TestExecRunner_DetachMissingBinary(t *testing.T) {
	_, err := ExecRunner{}.Run(context.Background(), time.Second, Detach, "definitely-not-a-binary-xyz")
	if err == nil {
		t.Fatal("expected start error")
	}
}

func TestMockRunner(t *testing.T) {
	m := NewMockRunner()
	boom := errors.New("boom")
	m.AddResponse(ShellKey("false"), nil, boom)

	if _, err := m.Run(context.Background(), time.Second, Detach, "sh", "-c", "false"); !errors.Is(err, boom) {
		t.Errorf("expected configured error, got %v", err)
	}
	if _, err := m.Run(context.Background(), time.Second, Stream, "sh", "-c", "true"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if !m.VerifyCommand("sh", "-c", "false") {
		t.Error("command not recorded")
	}
	if !m.VerifyRunCount("sh", 2) {
		t.Errorf("expected 2 runs, got %d", len(m.Commands))
	}
	if m.Commands[0].Mode != Detach {
		t.Errorf("mode not recorded: %v", m.Commands[0].Mode)
	}
}

func TestExecRunner_StreamWriters(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := ExecRunner{Stdout: &stdout, Stderr: &stderr}

	if _, err := r.Run(context.Background(), 5*time.Second, Stream, "sh", "-c", "echo out; echo err >&2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(stdout.String()) != "out" {
		t.Errorf("stdout = %q", stdout.String())
	}
	if strings.TrimSpace(stderr.String()) != "err" {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestExecRunner_DetachDiscard(t *testing.T) {
	marker := filepath.Join(t.TempDir(), "fired")
	r := ExecRunner{Stdout: io.Discard, Stderr: io.Discard}

	if _, err := r.Run(context.Background(), time.Second, Detach, "sh", "-c", "echo noise; touch "+marker); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(marker); err == nil {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatal("detached command never ran")
}

func TestFileOrNull(t *testing.T) {
	if fileOrNull(os.Stdout) != os.Stdout {
		t.Error("files are passed through")
	}
	if fileOrNull(io.Discard) != nil {
		t.Error("non-file writers map to nil")
	}
	if fileOrNull(&bytes.Buffer{}) != nil {
		t.Error("buffers map to nil")
	}
}
