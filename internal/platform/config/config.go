// Package config reads application configuration from environment variables
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"khmerfold/internal/platform/logger"
)

// Conf is a namespaced view over environment variables, eg "CORE_API_".
// New() is the root; Prefix narrows it for a module
type Conf struct{ prefix string }

// New creates a root Conf with no prefix
func New() Conf { return Conf{} }

// Prefix returns a child view, eg cfg.Prefix("SERVICE_PGSQL_")
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// Key returns the fully qualified variable name for k
func (c Conf) Key(k string) string { return c.prefix + k }

func (c Conf) lookup(key string) string {
	return strings.TrimSpace(os.Getenv(c.Key(key)))
}

// may parses key with parse, logging and falling back to def when the value
// does not parse. Empty values silently yield def
func may[T any](c Conf, key string, def T, kind string, parse func(string) (T, error)) T {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.Key(key)).Str("value", s).Interface("default", def).
			Msgf("invalid %s; using default", kind)
		return def
	}
	return v
}

// must parses key with parse and panics when it is empty or does not parse
func must[T any](c Conf, key, kind string, parse func(string) (T, error)) T {
	s := c.lookup(key)
	if s == "" {
		logger.Get().Panic().Str("key", c.Key(key)).Msg("missing required env")
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Panic().Str("key", c.Key(key)).Str("value", s).Msgf("invalid %s", kind)
	}
	return v
}

func parseString(s string) (string, error) { return s, nil }

func parsePort(s string) (string, error) {
	p, err := strconv.Atoi(strings.TrimPrefix(s, ":"))
	if err != nil || p < 1 || p > 65535 {
		return "", strconv.ErrRange
	}
	return ":" + strconv.Itoa(p), nil
}

// MustString panics if key is missing or empty
func (c Conf) MustString(key string) string { return must(c, key, "string", parseString) }

// MustInt panics if key is missing or not an int
func (c Conf) MustInt(key string) int { return must(c, key, "int", strconv.Atoi) }

// MustPort returns a listen address like ":4000" after checking 1..65535
func (c Conf) MustPort(key string) string { return must(c, key, "TCP port", parsePort) }

// MayString returns the value or def
func (c Conf) MayString(key, def string) string { return may(c, key, def, "string", parseString) }

// MayInt returns the value or def
func (c Conf) MayInt(key string, def int) int { return may(c, key, def, "int", strconv.Atoi) }

// MayBool returns the value or def
func (c Conf) MayBool(key string, def bool) bool { return may(c, key, def, "bool", strconv.ParseBool) }

// MayDuration returns the value or def, eg 250ms or 2s
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, def, "duration", time.ParseDuration)
}

// MayPort is MustPort with a default address
func (c Conf) MayPort(key, def string) string { return may(c, key, def, "TCP port", parsePort) }

// MayCSV splits a comma separated value, dropping blanks
func (c Conf) MayCSV(key string, def []string) []string {
	var out []string
	for _, p := range strings.Split(c.lookup(key), ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns the value if it is one of allowed (case insensitive), def
// when empty, and panics on anything else
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.MayString(key, def)
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return a
		}
	}
	if v == "" {
		return v
	}
	logger.Get().Panic().Str("key", c.Key(key)).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	return ""
}
