package ch

import (
	"cmp"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// BuildClientInfo names this process in system.query_log
// name defaults to khmerfold, tag is the binary role such as "api"
func BuildClientInfo(name, tag string) clickhouse.ClientInfo {
	type product = struct{ Name, Version string }

	return clickhouse.ClientInfo{Products: []product{
		{Name: cmp.Or(strings.TrimSpace(name), "khmerfold"), Version: revision()},
		{Name: "role", Version: cmp.Or(strings.TrimSpace(tag), "unknown")},
		{Name: "go", Version: runtime.Version()},
	}}
}

func revision() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "dev"
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return "dev"
}
