package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestOffline_Deterministic(t *testing.T) {
	a := Offline("Steve")
	b := Offline("Steve")
	if a.ID != b.ID {
		t.Errorf("Offline(Steve) IDs differ: %s vs %s", a.ID, b.ID)
	}
	if a.Name != "Steve" {
		t.Errorf("Name = %q, want Steve", a.Name)
	}
}

func TestOffline_DistinctNames(t *testing.T) {
	names := []string{"Steve", "Alex", "steve", "Steve ", "S"}
	seen := make(map[uuid.UUID]string, len(names))
	for _, n := range names {
		id := Offline(n).ID
		if prev, ok := seen[id]; ok {
			t.Errorf("Offline(%q) and Offline(%q) share ID %s", n, prev, id)
		}
		seen[id] = n
	}
}

func TestOffline_Version3UUID(t *testing.T) {
	id := Offline("Steve").ID
	if id.Version() != 3 {
		t.Errorf("Version() = %d, want 3", id.Version())
	}
	if id.Variant() != uuid.RFC4122 {
		t.Errorf("Variant() = %v, want RFC4122", id.Variant())
	}
}

func TestOffline_AnonymousToken(t *testing.T) {
	if got := Offline("Steve").Token; got != "null" {
		t.Errorf("Token = %q, want null", got)
	}
}
