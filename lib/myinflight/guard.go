package myinflight

import "sync"

// Guard tracks operations that are currently in flight, keyed by caller-chosen
// keys (typically shopper + operation). It is the server-side equivalent of
// disabling a submit button: a second identical request is rejected while the
// first one has not completed yet.
type Guard struct {
	mutex sync.Mutex
	busy  map[string]bool
}

func NewGuard() *Guard {
	return &Guard{
		busy: map[string]bool{},
	}
}

// TryAcquire reports whether the operation may start. The caller must call
// Release with the same key when the operation completes.
func (g *Guard) TryAcquire(key string) bool {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if g.busy[key] {
		return false
	}
	g.busy[key] = true

	return true
}

func (g *Guard) Release(key string) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	delete(g.busy, key)
}
