package metrics

import "testing"

func TestMetricFieldKeysAreStable(t *testing.T) {
	if AttrMethod == "" || AttrPath == "" || AttrStatus == "" || AttrCollection == "" || AttrOperation == "" {
		t.Fatalf("expected metric attribute keys to be non-empty")
	}
	if OpLoad == OpSave {
		t.Fatalf("expected distinct operation names")
	}
}
