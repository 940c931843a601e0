package lockcoord

import "testing"

func TestAdvisoryKeyOrderInsensitive(t *testing.T) {
	a := AdvisoryKey("user-1", "system", "1")
	b := AdvisoryKey("system", "user-1", "1")
	if a != b {
		t.Fatalf("expected order-insensitive key, got %d != %d", a, b)
	}
}

func TestAdvisoryKeyDistinguishesAsset(t *testing.T) {
	a := AdvisoryKey("user-1", "system", "1")
	b := AdvisoryKey("user-1", "system", "2")
	if a == b {
		t.Fatalf("expected different keys for different assets")
	}
}

func TestAdvisoryKeyDeterministic(t *testing.T) {
	first := AdvisoryKey("user-1", "system", "1")
	second := AdvisoryKey("user-1", "system", "1")
	if first != second {
		t.Fatalf("expected deterministic key, got %d != %d", first, second)
	}
}

func TestOrderUserIDsAscending(t *testing.T) {
	ordered := OrderUserIDs("b", "a", "c")
	if ordered[0] != "a" || ordered[1] != "b" || ordered[2] != "c" {
		t.Fatalf("unexpected order: %v", ordered)
	}
}
