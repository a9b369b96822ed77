package domain

import (
	"errors"
	"io"
	"testing"
)

func TestPersistenceWrapsBoth(t *testing.T) {
	err := Persistence("insert transaction", io.ErrUnexpectedEOF)
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("expected ErrPersistence in chain, got %v", err)
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected driver error in chain, got %v", err)
	}
	if got := err.Error(); got != "persistence error: insert transaction: unexpected EOF" {
		t.Fatalf("unexpected message %q", got)
	}
	if Persistence("noop", nil) != nil {
		t.Fatalf("expected nil for nil error")
	}
}
