package testutil

import (
	"encoding/json"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
)

// MustMarshal marshals v or fails the test.
func MustMarshal(t *testing.T, v interface{}) []byte {
	t.Helper()
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		t.Fatalf("MustMarshal() failed: %v", err)
	}
	return data
}

// AssertJSONEqual compares two JSON documents structurally and prints a
// unified diff of their normalized forms on mismatch.
func AssertJSONEqual(t *testing.T, want, got []byte) {
	t.Helper()

	var wantVal, gotVal interface{}
	if err := json.Unmarshal(want, &wantVal); err != nil {
		t.Fatalf("AssertJSONEqual() bad want: %v", err)
	}
	if err := json.Unmarshal(got, &gotVal); err != nil {
		t.Fatalf("AssertJSONEqual() bad got: %v", err)
	}

	wantNorm := MustMarshal(t, wantVal)
	gotNorm := MustMarshal(t, gotVal)
	if string(wantNorm) == string(gotNorm) {
		return
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(wantNorm)),
		B:        difflib.SplitLines(string(gotNorm)),
		FromFile: "want",
		ToFile:   "got",
		Context:  3,
	})
	if err != nil {
		t.Fatalf("AssertJSONEqual() diff failed: %v", err)
	}
	t.Errorf("JSON mismatch:\n%s", diff)
}
