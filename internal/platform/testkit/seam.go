package testkit

import (
	"sync"
	"testing"
)

// serial is held by tests that replace package level seams such as the
// trajectory module's pipeline loader or the api's module registry
var serial sync.Mutex

// Swap sets *target to v and puts the old value back when t finishes
func Swap[T any](t *testing.T, target *T, v T) {
	t.Helper()
	old := *target
	*target = v
	t.Cleanup(func() { *target = old })
}

// Serial blocks until no other Serial test in the binary is running
func Serial(t *testing.T) {
	t.Helper()
	serial.Lock()
	t.Cleanup(serial.Unlock)
}
