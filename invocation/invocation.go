// Package invocation implements a reusable message send: a receiver, a selector and up to
// MaxArgs arguments, performed any number of times. Resolving how to call a method is
// usually the most expensive part of a dynamic send, so an invocation may be told to
// resolve it only once and to call the resolved method directly afterward.
//
// The current dispatch strategy is exposed as the Fun field. It starts as a resolving
// strategy and, if caching is enabled, replaces itself with the direct-call one after the
// first successful resolution. Hot loops may call inv.Fun(inv) (or Call(inv)) directly.
//
// An Invocation is a single-writer scratch object: it mustn't be used by multiple
// goroutines at once without external synchronization. It doesn't own its receiver and
// must not be used after the receiver became invalid.
package invocation

import (
	"fmt"

	"github.com/indigo-web/fastsend/config"
	"github.com/indigo-web/fastsend/dispatcher"
	"github.com/indigo-web/fastsend/errors"
	"github.com/indigo-web/fastsend/object"
	"github.com/tliron/commonlog"
)

const loggerName = "fastsend.invocation"

// Resolver resolves which method a receiver runs for a selector and a number of arguments.
// *dispatcher.Dispatcher is the canonical implementation.
type Resolver interface {
	Resolve(receiver any, sel object.Selector, argc int) (object.Method, error)
}

// Func is a dispatch strategy. It performs the invocation and stores the result into it.
type Func func(inv *Invocation) error

type Invocation struct {
	// Fun is the currently installed dispatch strategy and is never nil. Calling
	// inv.Fun(inv) is exactly the same as calling inv.Invoke().
	Fun Func

	receiver any
	selector object.Selector
	args     Args
	result   any
	cached   object.Method
	caching  bool
	resolver Resolver
}

// New returns a new invocation with no receiver and selector set. Nil resolver stands for
// a dispatcher with default settings.
func New(resolver Resolver, cfg config.Invocation) *Invocation {
	if resolver == nil {
		resolver = dispatcher.Default()
	}

	inv := &Invocation{
		resolver: resolver,
		caching:  cfg.Caching,
	}
	inv.Fun = inv.resolvingStrategy()

	return inv
}

// Call performs the invocation through the installed strategy and returns its result.
func Call(inv *Invocation) (any, error) {
	if err := inv.Fun(inv); err != nil {
		return nil, err
	}

	return inv.result, nil
}

func (inv *Invocation) SetReceiver(receiver any) {
	inv.receiver = receiver
}

func (inv *Invocation) Receiver() any {
	return inv.receiver
}

func (inv *Invocation) SetSelector(sel object.Selector) {
	inv.selector = sel
}

func (inv *Invocation) Selector() object.Selector {
	return inv.selector
}

// SetArgument stores the value into the argument slot, which must be in [0, MaxArgs).
// The arguments count is extended to cover the slot if it doesn't already.
func (inv *Invocation) SetArgument(value any, index int) error {
	return inv.args.Set(index, value)
}

// Argument returns the value of the argument slot.
func (inv *Invocation) Argument(index int) (any, error) {
	return inv.args.Get(index)
}

// SetArgCount sets how many leading argument slots are passed to the method.
func (inv *Invocation) SetArgCount(n int) error {
	return inv.args.SetCount(n)
}

func (inv *Invocation) ArgCount() int {
	return inv.args.Len()
}

// SetCaching switches the caching policy. Any previously resolved method is dropped.
func (inv *Invocation) SetCaching(enabled bool) {
	inv.caching = enabled
	inv.Flush()
}

func (inv *Invocation) Caching() bool {
	return inv.caching
}

// Flush drops the resolved method, so the next invocation resolves again. It must be
// called whenever receiver type, selector or arguments count change on a caching
// invocation.
func (inv *Invocation) Flush() {
	inv.cached = nil
	inv.Fun = inv.resolvingStrategy()
}

// Resolved reports whether a resolved method is cached.
func (inv *Invocation) Resolved() bool {
	return inv.cached != nil
}

// Reset brings the invocation to the just-created state, keeping its resolver and
// caching policy. Useful to reuse instances.
func (inv *Invocation) Reset() {
	inv.receiver = nil
	inv.selector = ""
	inv.args.Clear()
	inv.result = nil
	inv.Flush()
}

// Invoke performs the invocation. The result is overwritten by every call, and is nil if
// the call failed.
func (inv *Invocation) Invoke() error {
	return inv.Fun(inv)
}

// Result returns the result of the last invocation.
func (inv *Invocation) Result() any {
	return inv.result
}

// ResultOfInvoking performs a fresh invocation and returns its result.
func (inv *Invocation) ResultOfInvoking() (any, error) {
	return Call(inv)
}

// ResultOfInvokingWithArgs replaces the arguments with args and performs a fresh invocation.
func (inv *Invocation) ResultOfInvokingWithArgs(args ...any) (any, error) {
	if err := inv.args.Fill(args); err != nil {
		return nil, err
	}

	return Call(inv)
}

func (inv *Invocation) resolvingStrategy() Func {
	if inv.caching {
		return specialize
	}

	return resolve
}

// resolve resolves the method on every call.
func resolve(inv *Invocation) error {
	method, err := inv.resolve()
	if err != nil {
		return err
	}

	return inv.call(method)
}

// specialize resolves the method, caches it and installs the direct-call strategy.
func specialize(inv *Invocation) error {
	method, err := inv.resolve()
	if err != nil {
		return err
	}

	inv.cached = method
	inv.Fun = direct
	commonlog.GetLogger(loggerName).Debugf(
		"%q on %T with %d argument(s) is now called directly",
		inv.selector, inv.receiver, inv.args.Len(),
	)

	return inv.call(method)
}

// direct calls the cached method, skipping the resolution.
func direct(inv *Invocation) error {
	if err := inv.begin(); err != nil {
		return err
	}

	return inv.call(inv.cached)
}

func (inv *Invocation) begin() error {
	inv.result = nil

	switch {
	case len(inv.selector) == 0:
		return fmt.Errorf("%w: selector is not set", errors.ErrInvalidState)
	case inv.receiver == nil:
		return fmt.Errorf("%w: receiver is not set", errors.ErrInvalidState)
	}

	return nil
}

func (inv *Invocation) resolve() (object.Method, error) {
	if err := inv.begin(); err != nil {
		return nil, err
	}

	return inv.resolver.Resolve(inv.receiver, inv.selector, inv.args.Len())
}

func (inv *Invocation) call(method object.Method) error {
	result, err := method(inv.receiver, inv.args.Slice())
	if err != nil {
		return err
	}

	inv.result = result
	return nil
}
