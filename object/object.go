// Package object is the minimal object root the dispatch machinery works against:
// selectors, classes with their method tables, and generic instances carrying named
// variables.
package object

import (
	"fmt"
	"strings"
	"sync"
)

// Selector names the method a message targets, independently of the type actually
// receiving it. Keyword selectors keep their colons, e.g. "at:put:".
type Selector string

// Arity returns the number of arguments implied by the selector's shape: the count of
// colons for keyword selectors, 1 for binary operators and 0 for unary ones.
func (s Selector) Arity() int {
	if n := strings.Count(string(s), ":"); n > 0 {
		return n
	}

	if len(s) > 0 && !isIdentByte(s[0]) {
		return 1
	}

	return 0
}

func isIdentByte(c byte) bool {
	return c == '_' || (c|0x20 >= 'a' && c|0x20 <= 'z') || (c >= '0' && c <= '9')
}

// Method is a resolved, directly callable method implementation. The args slice is owned
// by the caller and must not be retained.
type Method func(receiver any, args []any) (any, error)

// Object is implemented by everything carrying its own class.
type Object interface {
	Class() *Class
}

// Class is a named method container with an optional superclass.
type Class struct {
	Name    string
	Super   *Class
	Methods *MethodTable
}

func NewClass(name string, super *Class) *Class {
	return &Class{
		Name:    name,
		Super:   super,
		Methods: NewMethodTable(),
	}
}

// Define adds a method to the class. Definitions must be done before the class is used
// for dispatch, as they aren't synchronized.
func (c *Class) Define(sel Selector, numArgs int, impl Method) *Class {
	c.Methods.Add(sel, numArgs, impl)
	return c
}

// Lookup finds a method, walking up the class hierarchy.
func (c *Class) Lookup(sel Selector) (MethodEntry, bool) {
	for class := c; class != nil; class = class.Super {
		if entry, found := class.Methods.Get(sel); found {
			return entry, true
		}
	}

	return MethodEntry{}, false
}

// RespondsTo reports whether instances of the class understand the selector.
func (c *Class) RespondsTo(sel Selector) bool {
	_, found := c.Lookup(sel)
	return found
}

// IsKindOf reports whether the class is other or inherits from it.
func (c *Class) IsKindOf(other *Class) bool {
	for class := c; class != nil; class = class.Super {
		if class == other {
			return true
		}
	}

	return false
}

func (c *Class) String() string {
	if c == nil {
		return "<nil class>"
	}

	return c.Name
}

// Instance is a generic object of a class, keeping its state in named variables.
type Instance struct {
	class *Class
	mu    sync.RWMutex
	vars  map[string]any
}

func NewInstance(class *Class) *Instance {
	return &Instance{
		class: class,
		vars:  make(map[string]any),
	}
}

func (i *Instance) Class() *Class {
	return i.class
}

// Var gets an instance variable value. Unset variables are nil.
func (i *Instance) Var(name string) any {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.vars[name]
}

// SetVar sets an instance variable value.
func (i *Instance) SetVar(name string, value any) *Instance {
	i.mu.Lock()
	i.vars[name] = value
	i.mu.Unlock()
	return i
}

func (i *Instance) String() string {
	return fmt.Sprintf("<%s instance>", i.class)
}
