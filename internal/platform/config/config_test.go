package config

import (
	"slices"
	"testing"
	"time"

	"khmerfold/internal/platform/testkit"
)

func TestPrefixAndKey(t *testing.T) {
	api := New().Prefix("CORE_").Prefix("API_")
	if got := api.Key("PORT"); got != "CORE_API_PORT" {
		t.Fatalf("Key() = %q", got)
	}
}

func TestMust(t *testing.T) {
	c := New().Prefix("KF_")
	t.Setenv("KF_NAME", "  khmerfold ")
	t.Setenv("KF_WORKERS", " 8 ")
	t.Setenv("KF_BAD", "x")
	t.Setenv("KF_PORT", "4000")
	t.Setenv("KF_HUGE_PORT", "70000")

	if got := c.MustString("NAME"); got != "khmerfold" {
		t.Fatalf("MustString = %q", got)
	}
	if got := c.MustInt("WORKERS"); got != 8 {
		t.Fatalf("MustInt = %d", got)
	}
	if got := c.MustPort("PORT"); got != ":4000" {
		t.Fatalf("MustPort = %q", got)
	}
	testkit.MustPanic(t, func() { _ = c.MustString("MISSING") })
	testkit.MustPanic(t, func() { _ = c.MustInt("BAD") })
	testkit.MustPanic(t, func() { _ = c.MustPort("HUGE_PORT") })
}

func TestMay(t *testing.T) {
	c := New().Prefix("KF_")
	t.Setenv("KF_LEVEL", "2")
	t.Setenv("KF_ON", "true")
	t.Setenv("KF_SLOW", "250ms")
	t.Setenv("KF_BADINT", "two")
	t.Setenv("KF_BADDUR", "soon")
	t.Setenv("KF_PORT", ":8080")
	t.Setenv("KF_ORIGINS", " a.test , ,b.test ")

	if got := c.MayInt("LEVEL", 1); got != 2 {
		t.Fatalf("MayInt = %d", got)
	}
	if got := c.MayInt("BADINT", 1); got != 1 {
		t.Fatalf("MayInt invalid = %d, want default", got)
	}
	if got := c.MayInt("MISSING", 7); got != 7 {
		t.Fatalf("MayInt missing = %d", got)
	}
	if !c.MayBool("ON", false) {
		t.Fatalf("MayBool = false")
	}
	if got := c.MayDuration("SLOW", time.Second); got != 250*time.Millisecond {
		t.Fatalf("MayDuration = %v", got)
	}
	if got := c.MayDuration("BADDUR", time.Second); got != time.Second {
		t.Fatalf("MayDuration invalid = %v", got)
	}
	if got := c.MayPort("PORT", ":4000"); got != ":8080" {
		t.Fatalf("MayPort = %q", got)
	}
	if got := c.MayPort("MISSING", ":4000"); got != ":4000" {
		t.Fatalf("MayPort default = %q", got)
	}
	if got := c.MayString("MISSING", "def"); got != "def" {
		t.Fatalf("MayString = %q", got)
	}
	if got := c.MayCSV("ORIGINS", nil); !slices.Equal(got, []string{"a.test", "b.test"}) {
		t.Fatalf("MayCSV = %q", got)
	}
	if got := c.MayCSV("MISSING", []string{"*"}); !slices.Equal(got, []string{"*"}) {
		t.Fatalf("MayCSV default = %q", got)
	}
}

func TestMayEnum(t *testing.T) {
	c := New().Prefix("KF_")
	t.Setenv("KF_MODE", "ALL")
	t.Setenv("KF_WRONG", "some")

	if got := c.MayEnum("MODE", "any", "all", "any"); got != "all" {
		t.Fatalf("MayEnum = %q", got)
	}
	if got := c.MayEnum("MISSING", "any", "all", "any"); got != "any" {
		t.Fatalf("MayEnum default = %q", got)
	}
	testkit.MustPanic(t, func() { _ = c.MayEnum("WRONG", "any", "all", "any") })
}
