package requestid

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	if got := Resolve("  abc-123 "); got != "abc-123" {
		t.Fatalf("expected incoming id to be kept, got %q", got)
	}

	generated := Resolve("")
	if _, err := uuid.Parse(generated); err != nil {
		t.Fatalf("expected generated uuid, got %q: %v", generated, err)
	}

	tooLong := strings.Repeat("a", maxLength+1)
	if got := Resolve(tooLong); got == tooLong {
		t.Fatal("expected overly long id to be replaced")
	}
}

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := NewContext(context.Background(), "req-1")
	if got := FromContext(ctx); got != "req-1" {
		t.Fatalf("FromContext() = %q, want req-1", got)
	}
	if got := FromContext(context.Background()); got != "" {
		t.Fatalf("expected empty id, got %q", got)
	}
}
