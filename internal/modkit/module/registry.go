package module

import "sync"

// registry holds the port sets api.Mount publishes by module name, so code
// outside the composition root can reach a mounted module's ports
var registry = struct {
	sync.RWMutex
	m map[string]any
}{m: map[string]any{}}

// Register publishes ports under name, replacing any earlier set
func Register(name string, ports any) {
	registry.Lock()
	defer registry.Unlock()
	registry.m[name] = ports
}

// PortsAs returns the set published under name when it is a T
func PortsAs[T any](name string) (T, bool) {
	registry.RLock()
	v, ok := registry.m[name]
	registry.RUnlock()
	out, ok2 := v.(T)
	return out, ok && ok2
}

// Reset forgets every published set; tests that mount the api call it in cleanup
func Reset() {
	registry.Lock()
	defer registry.Unlock()
	registry.m = map[string]any{}
}
