package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorWrapUnwrap(t *testing.T) {
	root := errors.New("root")
	err := &Error{Op: "test", Kind: KindConflict, Msg: "dup", Err: root}

	if !errors.Is(err, root) {
		t.Fatal("expected errors.Is to match cause")
	}
	if err.Error() != "dup: root" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestIsKindThroughWrapping(t *testing.T) {
	err := fmt.Errorf("save: %w", NotFound("repo.save", MsgBookmarkNotFound))

	if !IsKind(err, KindNotFound) {
		t.Error("IsKind() should see through fmt.Errorf wrapping")
	}
	if IsKind(err, KindValidation) {
		t.Error("IsKind() matched the wrong kind")
	}
	if KindOf(errors.New("plain")) != "" {
		t.Error("KindOf() of an untyped error should be empty")
	}
}
