package version

import (
	"testing"

	kit "vesselq/internal/platform/testkit"
)

func TestInfo_Stamped(t *testing.T) {
	kit.Swap(t, &version, "v1.2.3")
	kit.Swap(t, &commit, "abc123")
	kit.Swap(t, &Service, "vesselq-api")

	got := Info()
	kit.MustEqual(t, got, BuildInfo{Service: "vesselq-api", Version: "v1.2.3", Commit: "abc123", Date: "unknown"})
}

func TestInfo_Defaults(t *testing.T) {
	got := Info()
	if got.Version == "" || got.Commit != "none" || got.Service != "vesselq" {
		t.Fatalf("Info() = %+v", got)
	}
}
