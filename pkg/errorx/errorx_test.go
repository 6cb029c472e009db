package errorx

import (
	"errors"
	"fmt"
	"testing"
)

func TestGetCodeUnwrapsThroughChain(t *testing.T) {
	inner := New(CodeNotFound, "group not found")
	outer := fmt.Errorf("listing members: %w", inner)

	if got := GetCode(outer); got != CodeNotFound {
		t.Fatalf("GetCode = %d, want %d", got, CodeNotFound)
	}
}

func TestGetCodeDefaultsToServerBusy(t *testing.T) {
	if got := GetCode(errors.New("plain failure")); got != CodeServerBusy {
		t.Fatalf("GetCode = %d, want %d", got, CodeServerBusy)
	}
}

func TestWrapKeepsCauseVisible(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := Wrap(cause, CodeDBError, "load group")

	if !errors.Is(err, cause) {
		t.Error("wrapped cause must stay reachable via errors.Is")
	}
	if err.Error() != "load group: dial tcp: connection refused" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(New(CodeNotFound, "missing")) {
		t.Error("CodeNotFound must report not-found")
	}
	if !IsNotFound(errors.New("record not found")) {
		t.Error("bare gorm not-found text must report not-found")
	}
	if IsNotFound(ErrServerBusy) {
		t.Error("server-busy is not a not-found")
	}
	if IsNotFound(nil) {
		t.Error("nil is not a not-found")
	}
}
