// Package strtable implements an immutable lookup table over a small set of string keys,
// known entirely at construction time. Typical use is a keyword table of a tokenizer.
//
// A query is first restricted to the keys of its own length, and only then compared
// byte-wise against them, walking a chain of same-length keys in insertion order. Queries
// longer than the longest key miss without looking at any byte at all.
//
// Lookups never fail: a missing key results in the default value (or NotFound for offset
// lookups). A Table is safe for concurrent reads.
package strtable

import (
	"fmt"
	"iter"
	"sync/atomic"

	"github.com/indigo-web/fastsend/config"
	"github.com/indigo-web/fastsend/errors"
	"github.com/indigo-web/utils/uf"
)

// NotFound is returned by offset lookups for keys missing in the table.
const NotFound = -1

// end terminates both starts and chains.
const end = -1

// slot describes a single key, stored in the flat key buffer at [offset, offset+length).
// next is the index of the following slot holding a key of the same length, or end.
type slot struct {
	offset, length, next int
}

type Table[V any] struct {
	keys   []byte
	slots  []slot
	values []V
	// starts[n] is the first slot holding a key of length n, or end. Its length is
	// therefore the longest key length plus one.
	starts          []int
	caseInsensitive bool
	def             V
	find            atomic.Pointer[finder[V]]
}

// New builds a table with default settings. See NewWithConfig.
func New[V any](keys []string, values []V, def V) (*Table[V], error) {
	return NewWithConfig(keys, values, def, config.Default().Table)
}

// NewWithConfig builds a table where i-th key maps onto i-th value. def is returned on
// every miss.
//
// If a key occurs more than once (case-insensitively, if enabled), only its first
// occurrence is stored, the rest are dropped. Therefore Count may be lower than
// the number of passed keys.
func NewWithConfig[V any](keys []string, values []V, def V, cfg config.Table) (*Table[V], error) {
	if len(keys) != len(values) {
		return nil, fmt.Errorf(
			"%w: got %d keys but %d values", errors.ErrConstruction, len(keys), len(values),
		)
	}

	maxLen, total := -1, 0
	for _, key := range keys {
		if len(key) > cfg.MaxKeyLength {
			return nil, fmt.Errorf(
				"%w: key of %d bytes exceeds the limit of %d",
				errors.ErrConstruction, len(key), cfg.MaxKeyLength,
			)
		}

		maxLen = max(maxLen, len(key))
		total += len(key)
	}

	t := &Table[V]{
		keys:            make([]byte, 0, max(total, cfg.KeysPrealloc)),
		slots:           make([]slot, 0, len(keys)),
		values:          make([]V, 0, len(values)),
		starts:          make([]int, maxLen+1),
		caseInsensitive: cfg.CaseInsensitive,
		def:             def,
	}

	// tails[n] is the last slot of the n-length chain, so appending keeps the chain in
	// insertion order.
	tails := make([]int, maxLen+1)
	for i := range t.starts {
		t.starts[i] = end
	}

	find := t.pick()

	for i, key := range keys {
		if find(t, key) != NotFound {
			continue
		}

		index := len(t.slots)
		t.slots = append(t.slots, slot{
			offset: len(t.keys),
			length: len(key),
			next:   end,
		})
		t.keys = append(t.keys, key...)
		t.values = append(t.values, values[i])

		if t.starts[len(key)] == end {
			t.starts[len(key)] = index
		} else {
			t.slots[tails[len(key)]].next = index
		}

		tails[len(key)] = index
	}

	return t, nil
}

// MustNew is the same as New, except it panics on error. Suitable for package-level
// tables initialized from literals.
func MustNew[V any](keys []string, values []V, def V) *Table[V] {
	t, err := New(keys, values, def)
	if err != nil {
		panic(err)
	}

	return t
}

// Lookup returns the value of the key or the default value.
func (t *Table[V]) Lookup(key string) V {
	return t.ValueAt(t.strategy()(t, key))
}

// LookupBytes is the same as Lookup, but for a byte slice. It doesn't allocate.
func (t *Table[V]) LookupBytes(key []byte) V {
	return t.Lookup(uf.B2S(key))
}

// Get returns the value of the key and whether it was found at all.
func (t *Table[V]) Get(key string) (value V, found bool) {
	index := t.strategy()(t, key)
	if index == NotFound {
		return t.def, false
	}

	return t.values[index], true
}

// Has indicates, whether the key is presented.
func (t *Table[V]) Has(key string) bool {
	return t.Offset(key) != NotFound
}

// Offset returns the insertion index of the key, or NotFound. Useful for compiling keys
// into dense integers for a subsequent switch.
func (t *Table[V]) Offset(key string) int {
	return t.strategy()(t, key)
}

// OffsetBytes is the same as Offset, but for a byte slice. It doesn't allocate.
func (t *Table[V]) OffsetBytes(key []byte) int {
	return t.Offset(uf.B2S(key))
}

// Finder returns a function bound to the installed comparison strategy, behaving exactly
// as OffsetBytes does. Hot loops may use it to skip a dispatch per lookup.
func (t *Table[V]) Finder() func(key []byte) int {
	find := t.strategy()
	return func(key []byte) int {
		return find(t, uf.B2S(key))
	}
}

// Lookuper is the same as Finder, but the returned function behaves as LookupBytes does.
func (t *Table[V]) Lookuper() func(key []byte) V {
	find := t.strategy()
	return func(key []byte) V {
		return t.ValueAt(find(t, uf.B2S(key)))
	}
}

// Count returns the number of stored keys.
func (t *Table[V]) Count() int {
	return len(t.slots)
}

// ValueAt returns the value at the insertion index, or the default value if the index is
// out of range.
func (t *Table[V]) ValueAt(index int) V {
	if index < 0 || index >= len(t.values) {
		return t.def
	}

	return t.values[index]
}

// KeyAt returns the key at the insertion index, or an empty string if the index is
// out of range.
func (t *Table[V]) KeyAt(index int) string {
	if index < 0 || index >= len(t.slots) {
		return ""
	}

	s := t.slots[index]
	return uf.B2S(t.keys[s.offset : s.offset+s.length])
}

// Keys returns all the keys in insertion order. The returned slice is a fresh copy.
func (t *Table[V]) Keys() []string {
	keys := make([]string, len(t.slots))
	for i := range keys {
		keys[i] = t.KeyAt(i)
	}

	return keys
}

// Iter returns an iterator over the pairs in insertion order.
func (t *Table[V]) Iter() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for i := range t.slots {
			if !yield(t.KeyAt(i), t.values[i]) {
				break
			}
		}
	}
}

// Default returns the value returned on misses.
func (t *Table[V]) Default() V {
	return t.def
}

// WithDefault returns a table holding the same keys and values, but returning def on
// misses. The storage is shared, t itself stays unchanged.
func (t *Table[V]) WithDefault(def V) *Table[V] {
	return &Table[V]{
		keys:            t.keys,
		slots:           t.slots,
		values:          t.values,
		starts:          t.starts,
		caseInsensitive: t.caseInsensitive,
		def:             def,
	}
}

func (t *Table[V]) CaseInsensitive() bool {
	return t.caseInsensitive
}

// MaxLen returns the length of the longest key, or -1 if the table is empty.
func (t *Table[V]) MaxLen() int {
	return len(t.starts) - 1
}
