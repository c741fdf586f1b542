package cli

import (
	"errors"
	"testing"
	"time"
)

func TestSetupSignalHandler(t *testing.T) {
	ctx := SetupSignalHandler()

	select {
	case <-ctx.Done():
		t.Error("context should not be cancelled initially")
	case <-time.After(10 * time.Millisecond):
	}
}

func TestWaitForShutdownChannel(t *testing.T) {
	sigChan := WaitForShutdown()
	if sigChan == nil {
		t.Fatal("WaitForShutdown() returned nil channel")
	}
	select {
	case <-sigChan:
		t.Error("signal channel should be empty initially")
	case <-time.After(10 * time.Millisecond):
	}
}

func TestCommandError(t *testing.T) {
	cause := errors.New("boom")
	err := NewCommandError("run", cause)

	if err.Error() != "command run failed: boom" {
		t.Errorf("unexpected message: %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("CommandError should unwrap to its cause")
	}
}
