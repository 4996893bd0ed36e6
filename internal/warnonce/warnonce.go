// Package warnonce logs a WARN-level message the first time a given
// key is seen and silently ignores every later occurrence. The core
// uses it for conditions that should be logged once on first
// occurrence and then treated as best-effort — an unsupported mapper
// behavior or mirroring mode shouldn't spam the log once per frame.
package warnonce

import (
	"log"
	"sync"
)

var (
	mu   sync.Mutex
	seen = map[string]bool{}
)

// Warnf logs format/args at WARN severity the first time it is called
// with a given key. Subsequent calls with the same key are no-ops.
func Warnf(key, format string, args ...any) {
	mu.Lock()
	already := seen[key]
	seen[key] = true
	mu.Unlock()

	if already {
		return
	}
	log.Printf("WARN: "+format, args...)
}

// Reset clears the seen set. Tests use this to assert a warning fires
// exactly once per key without interference from prior test cases.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	seen = map[string]bool{}
}
