package launch

import (
	"context"
	"runtime"
	"testing"
)

func TestResolveKnownBinary(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("posix-only test")
	}
	path, err := Resolve("sh")
	if err != nil {
		t.Fatalf("Resolve(sh) failed: %v", err)
	}
	if path == "" {
		t.Error("Resolve returned an empty path")
	}
}

func TestResolveMissingBinary(t *testing.T) {
	if _, err := Resolve("tracelight-does-not-exist-anywhere"); err == nil {
		t.Error("Resolve should fail for a nonexistent binary")
	}
}

func TestRunExitCode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("posix-only test")
	}
	path, err := Resolve("sh")
	if err != nil {
		t.Fatal(err)
	}

	code, err := Run(context.Background(), path, []string{"-c", "exit 0"}, nil)
	if err != nil || code != 0 {
		t.Errorf("exit 0: got code=%d err=%v", code, err)
	}

	code, err = Run(context.Background(), path, []string{"-c", "exit 42"}, nil)
	if err != nil {
		t.Errorf("non-zero child exit should not be an error: %v", err)
	}
	if code != 42 {
		t.Errorf("got exit code %d, want 42", code)
	}
}

func TestRunInjectsEnvironment(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("posix-only test")
	}
	path, err := Resolve("sh")
	if err != nil {
		t.Fatal(err)
	}
	code, err := Run(context.Background(), path,
		[]string{"-c", `[ "$TRACELIGHT_TEST_VAR" = "hello" ]`},
		[]string{"TRACELIGHT_TEST_VAR=hello"})
	if err != nil {
		t.Fatal(err)
	}
	if code != 0 {
		t.Error("child did not see the injected environment variable")
	}
}
