// Package testkit provides testing helpers
package testkit

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"
)

var serialMu sync.Mutex

// Swap replaces *target for the duration of the test
func Swap[T any](t *testing.T, target *T, replacement T) {
	t.Helper()
	orig := *target
	*target = replacement
	t.Cleanup(func() { *target = orig })
}

// Serial holds a process wide lock until the test ends. Use it in parallel
// tests that touch package level state
func Serial(t *testing.T) {
	t.Helper()
	serialMu.Lock()
	t.Cleanup(serialMu.Unlock)
}

// MustPanic asserts that fn panics and returns the recovered value
func MustPanic(t *testing.T, fn func()) (v any) {
	t.Helper()
	defer func() {
		if v = recover(); v == nil {
			t.Fatalf("expected panic, got none")
		}
	}()
	fn()
	return nil
}

// MustNotPanic asserts that fn returns normally
func MustNotPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("unexpected panic: %v", r)
		}
	}()
	fn()
}

// MustContain asserts that haystack contains needle
func MustContain(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q\n\nfull output:\n%s", needle, haystack)
	}
}

// MustEqualText compares strings and prints both as code points on mismatch,
// since combining marks render ambiguously in terminals
func MustEqualText(t *testing.T, got, want string) {
	t.Helper()
	if got != want {
		t.Fatalf("got  %q [%s]\nwant %q [%s]", got, Codepoints(got), want, Codepoints(want))
	}
}

// Codepoints renders s as space separated U+XXXX values; invalid bytes show as !XX
func Codepoints(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); {
		r, n := utf8.DecodeRuneInString(s[i:])
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		if r == utf8.RuneError && n == 1 {
			fmt.Fprintf(&b, "!%02X", s[i])
		} else {
			fmt.Fprintf(&b, "%U", r)
		}
		i += n
	}
	return b.String()
}
