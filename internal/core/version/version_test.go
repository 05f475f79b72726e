package version

import (
	"testing"

	"khmerfold/internal/platform/testkit"
)

func TestInfo_Defaults(t *testing.T) {
	bi := Info()
	if bi.Service != "khmerfold-api" || bi.Version != "dev" {
		t.Fatalf("unexpected defaults %+v", bi)
	}
	if bi.Analyzer != "v1" {
		t.Fatalf("Analyzer = %q, want v1", bi.Analyzer)
	}
}

func TestInfo_Ldflags(t *testing.T) {
	testkit.Swap(t, &version, "v1.2.3")
	testkit.Swap(t, &commit, "abcd")
	if bi := Info(); bi.Version != "v1.2.3" || bi.Commit != "abcd" {
		t.Fatalf("Info() = %+v", bi)
	}
}
