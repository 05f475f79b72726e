package store

import (
	"time"

	"khmerfold/internal/platform/config"
)

// Config aggregates per backend configuration
type Config struct {
	PG PGConfig
	CH CHConfig
}

// PGConfig configures the term index database
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	ConnectRetries int           // default 20
	PingTimeout    time.Duration // default 3s
}

// CHConfig configures the term event warehouse
type CHConfig struct {
	Enabled      bool
	URL          string
	MaxOpenConns int
	ClientName   string
	ClientTag    string

	ConnectRetries int
	PingTimeout    time.Duration
}

// ConfigFrom reads SERVICE_PGSQL_* and SERVICE_CLICKHOUSE_* below root
// A URL is only required for backends that are ENABLED
func ConfigFrom(root config.Conf, role string) Config {
	pg := root.Prefix("SERVICE_PGSQL_")
	ch := root.Prefix("SERVICE_CLICKHOUSE_")

	var c Config
	if c.PG.Enabled = pg.MayBool("ENABLED", false); c.PG.Enabled {
		c.PG.URL = pg.MustString("DBURL")
		c.PG.MaxConns = int32(pg.MayInt("MAX_CONNS", 4))
		c.PG.SlowQueryMs = pg.MayInt("SLOW_MS", 500)
		c.PG.LogSQL = pg.MayBool("LOG_SQL", false)
		c.PG.ConnectRetries = pg.MayInt("CONNECT_RETRIES", 20)
	}
	if c.CH.Enabled = ch.MayBool("ENABLED", false); c.CH.Enabled {
		c.CH.URL = ch.MustString("DBURL")
		c.CH.MaxOpenConns = ch.MayInt("MAX_CONNS", 0)
		c.CH.ConnectRetries = ch.MayInt("CONNECT_RETRIES", 20)
		c.CH.ClientName = "khmerfold"
		c.CH.ClientTag = role
	}
	return c
}
