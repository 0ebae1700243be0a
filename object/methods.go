package object

import (
	"iter"
)

// MethodEntry describes a single method implementation.
type MethodEntry struct {
	Selector Selector
	// NumArgs is the exact number of arguments the method accepts. Negative value
	// stands for a variadic method.
	NumArgs int
	Impl    Method
}

// Accepts reports whether the method can be called with argc arguments.
func (m MethodEntry) Accepts(argc int) bool {
	return m.NumArgs < 0 || m.NumArgs == argc
}

// MethodTable is an associative structure for storing methods by their selectors. It acts
// as a map but uses linear search instead, which proves to be more efficient on relatively
// low amount of entries, which is pretty much always the case for a single class.
type MethodTable struct {
	entries   []MethodEntry
	selectors []Selector
}

func NewMethodTable() *MethodTable {
	return new(MethodTable)
}

// NewMethodTablePrealloc returns an instance of MethodTable with pre-allocated underlying storage.
func NewMethodTablePrealloc(n int) *MethodTable {
	return &MethodTable{
		entries: make([]MethodEntry, 0, n),
	}
}

// Add defines a method. If the selector is already defined, the entry is replaced in place,
// so redefinition doesn't change the enumeration order.
func (m *MethodTable) Add(sel Selector, numArgs int, impl Method) *MethodTable {
	entry := MethodEntry{
		Selector: sel,
		NumArgs:  numArgs,
		Impl:     impl,
	}

	for i := range m.entries {
		if m.entries[i].Selector == sel {
			m.entries[i] = entry
			return m
		}
	}

	m.entries = append(m.entries, entry)
	return m
}

// Get returns an entry and a bool, indicating whether the entry was found.
func (m *MethodTable) Get(sel Selector) (entry MethodEntry, found bool) {
	if m == nil {
		return entry, false
	}

	for _, e := range m.entries {
		if e.Selector == sel {
			return e, true
		}
	}

	return entry, false
}

// Has indicates, whether there's an entry of the selector.
func (m *MethodTable) Has(sel Selector) bool {
	_, found := m.Get(sel)
	return found
}

// Selectors returns all defined selectors in definition order.
//
// WARNING: calling it twice will override values, returned by the first call. Consider
// copying the returned slice for safe use.
func (m *MethodTable) Selectors() []Selector {
	m.selectors = m.selectors[:0]

	for _, e := range m.entries {
		m.selectors = append(m.selectors, e.Selector)
	}

	return m.selectors
}

// Iter returns an iterator over the entries.
func (m *MethodTable) Iter() iter.Seq2[Selector, MethodEntry] {
	return func(yield func(Selector, MethodEntry) bool) {
		if m == nil {
			return
		}

		for _, e := range m.entries {
			if !yield(e.Selector, e) {
				break
			}
		}
	}
}

// Len returns the number of defined methods.
func (m *MethodTable) Len() int {
	if m == nil {
		return 0
	}

	return len(m.entries)
}
