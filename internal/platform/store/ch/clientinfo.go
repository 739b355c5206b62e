package ch

import (
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// BuildClientInfo tags connections so system.query_log shows which vesselq process ran a query.
// role is "api", "cli" or "import"
func BuildClientInfo(role, version string) clickhouse.ClientInfo {
	host, _ := os.Hostname()
	type kv = struct{ Name, Version string }
	products := []kv{{Name: "vesselq", Version: orUnknown(version)}}
	if role != "" {
		products = append(products, kv{Name: "role", Version: strings.TrimSpace(role)})
	}
	products = append(products,
		kv{Name: "go", Version: runtime.Version()},
		kv{Name: "commit", Version: vcsShortSHA()},
		kv{Name: "host", Version: orUnknown(host)},
	)
	return clickhouse.ClientInfo{Products: products}
}

func vcsShortSHA() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 7 {
				return s.Value[:7]
			}
		}
	}
	return "unknown"
}

func orUnknown(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "unknown"
	}
	return s
}
