// Package boards holds compiled-in board definitions and a catalog keyed by
// board name.
package boards

import (
	"sort"
	"sync"

	"boardcode-go/board/chip"
	"boardcode-go/types"
)

// Entry is a catalogued board: its definition plus the chip it targets.
type Entry struct {
	Def  types.Definition
	Chip chip.Chip
}

var (
	mu      sync.RWMutex
	catalog = map[string]Entry{}
)

// Register adds a board. Registering a name twice is a programming error.
func Register(name string, e Entry) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := catalog[name]; exists {
		panic("boards: duplicate board " + name)
	}
	catalog[name] = e
}

// Lookup returns a catalogued board.
func Lookup(name string) (Entry, bool) {
	mu.RLock()
	defer mu.RUnlock()
	e, ok := catalog[name]
	return e, ok
}

// Names lists catalogued boards, sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(catalog))
	for k := range catalog {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Selected is the board chosen by build tag, or "" when none was given.
func Selected() string { return selected }
