package strtable

import (
	"github.com/indigo-web/utils/uf"
)

// finder is a comparison strategy. It returns the insertion index of the key or NotFound.
type finder[V any] func(t *Table[V], key string) int

// strategy returns the installed finder, installing it first if it wasn't yet. The choice
// depends only on the table configuration, so concurrent installers store identical
// strategies and any of them may win.
func (t *Table[V]) strategy() finder[V] {
	if find := t.find.Load(); find != nil {
		return *find
	}

	find := t.pick()
	t.find.Store(&find)

	return find
}

func (t *Table[V]) pick() finder[V] {
	if t.caseInsensitive {
		return findFolded[V]
	}

	return findExact[V]
}

func (t *Table[V]) installed() bool {
	return t.find.Load() != nil
}

func findExact[V any](t *Table[V], key string) int {
	if len(key) >= len(t.starts) {
		return NotFound
	}

	for i := t.starts[len(key)]; i != end; i = t.slots[i].next {
		// all the keys in the chain are of the same length as the query
		if uf.B2S(t.keys[t.slots[i].offset:t.slots[i].offset+len(key)]) == key {
			return i
		}
	}

	return NotFound
}

func findFolded[V any](t *Table[V], key string) int {
	if len(key) >= len(t.starts) {
		return NotFound
	}

	for i := t.starts[len(key)]; i != end; i = t.slots[i].next {
		if equalFold(uf.B2S(t.keys[t.slots[i].offset:t.slots[i].offset+len(key)]), key) {
			return i
		}
	}

	return NotFound
}

// equalFold compares equal-length strings, treating only 'A'-'Z' and 'a'-'z' as equal
// pairs. Every other byte, punctuation and control ones included, must match exactly.
func equalFold(a, b string) bool {
	for i := range len(a) {
		if a[i] != b[i] && lower(a[i]) != lower(b[i]) {
			return false
		}
	}

	return true
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c | 0x20
	}

	return c
}
