package id

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDIssuesDistinctCanonicalIDs(t *testing.T) {
	t.Parallel()
	gen := UUID{}
	a, b := gen.New(), gen.New()
	if a == b {
		t.Fatalf("expected distinct ids, got %q twice", a)
	}
	parsed, err := uuid.Parse(a)
	if err != nil {
		t.Fatalf("parse %q: %v", a, err)
	}
	if parsed.String() != a || parsed.Version() != 4 {
		t.Fatalf("expected canonical v4 id, got %q", a)
	}
}
