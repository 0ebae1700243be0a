package dispatcher

import (
	"fmt"
	"sync/atomic"

	"github.com/indigo-web/fastsend/config"
	"github.com/indigo-web/fastsend/errors"
	"github.com/indigo-web/fastsend/object"
	"github.com/tliron/commonlog"
)

// Dispatcher resolves selectors to directly callable methods. Receivers implementing
// object.Object are resolved through their class hierarchy, any other Go value (if enabled)
// through its exported methods.
//
// Dispatcher is safe for concurrent use, as long as classes aren't redefined meanwhile.
type Dispatcher struct {
	cfg         config.Dispatch
	log         commonlog.Logger
	resolutions atomic.Uint64
	failures    atomic.Uint64
	sends       atomic.Uint64
}

func New(cfg config.Dispatch) *Dispatcher {
	return &Dispatcher{
		cfg: cfg,
		log: commonlog.GetLogger(cfg.LoggerName),
	}
}

// Default returns a dispatcher with default settings.
func Default() *Dispatcher {
	return New(config.Default().Dispatch)
}

// Resolve looks up the method the receiver would run for the selector, called with argc
// arguments. The returned method may be called any number of times, but only with the
// receivers of the same type (or class) the method was resolved for.
func (d *Dispatcher) Resolve(receiver any, sel object.Selector, argc int) (object.Method, error) {
	d.resolutions.Add(1)

	method, err := d.resolve(receiver, sel, argc)
	if err != nil {
		d.failures.Add(1)
		d.log.Debugf("resolve %q on %T with %d argument(s): %s", sel, receiver, argc, err)
	}

	return method, err
}

func (d *Dispatcher) resolve(receiver any, sel object.Selector, argc int) (object.Method, error) {
	if receiver == nil {
		return nil, fmt.Errorf("%w: nil receiver", errors.ErrInvalidState)
	}

	if len(sel) == 0 {
		return nil, fmt.Errorf("%w: empty selector", errors.ErrInvalidState)
	}

	if obj, ok := receiver.(object.Object); ok {
		class := obj.Class()
		if class == nil {
			return nil, fmt.Errorf("%w: %T has no class", errors.ErrUnsupportedOperation, receiver)
		}

		entry, found := class.Lookup(sel)
		if found {
			if !entry.Accepts(argc) {
				return nil, fmt.Errorf(
					"%w: %s>>%s takes %d argument(s), got %d",
					errors.ErrUnsupportedOperation, class, sel, entry.NumArgs, argc,
				)
			}

			return guard(class, entry), nil
		}

		if !d.cfg.ReflectFallback {
			return nil, fmt.Errorf(
				"%w: %s does not understand %q", errors.ErrUnsupportedOperation, class, sel,
			)
		}
	}

	if !d.cfg.ReflectFallback {
		return nil, fmt.Errorf(
			"%w: %T is not an object", errors.ErrUnsupportedOperation, receiver,
		)
	}

	return resolveReflect(receiver, sel, argc)
}

// guard wraps the class method so that it keeps rejecting argument counts it doesn't
// accept after being cached.
func guard(class *object.Class, entry object.MethodEntry) object.Method {
	return func(receiver any, args []any) (any, error) {
		if !entry.Accepts(len(args)) {
			return nil, fmt.Errorf(
				"%w: %s>>%s takes %d argument(s), got %d",
				errors.ErrUnsupportedOperation, class, entry.Selector, entry.NumArgs, len(args),
			)
		}

		return entry.Impl(receiver, args)
	}
}

// Send resolves and calls the method at once. Nothing is cached between sends.
func (d *Dispatcher) Send(receiver any, sel object.Selector, args ...any) (any, error) {
	d.sends.Add(1)

	method, err := d.Resolve(receiver, sel, len(args))
	if err != nil {
		return nil, err
	}

	return method(receiver, args)
}

// RespondsTo reports whether the receiver can perform the selector with argc arguments.
// Doesn't affect the stats.
func (d *Dispatcher) RespondsTo(receiver any, sel object.Selector, argc int) bool {
	_, err := d.resolve(receiver, sel, argc)
	return err == nil
}

// Stats is a snapshot of the dispatcher counters.
type Stats struct {
	// Resolutions is the number of Resolve calls, including failed ones and ones made
	// implicitly by Send.
	Resolutions uint64
	// Failures is the number of unsuccessful resolutions.
	Failures uint64
	// Sends is the number of Send calls.
	Sends uint64
}

func (d *Dispatcher) Stats() Stats {
	return Stats{
		Resolutions: d.resolutions.Load(),
		Failures:    d.failures.Load(),
		Sends:       d.sends.Load(),
	}
}
