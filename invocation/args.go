package invocation

import (
	"fmt"

	"github.com/indigo-web/fastsend/errors"
)

// MaxArgs is the fixed argument capacity of a single invocation.
const MaxArgs = 10

// Args is a fixed-capacity ordered sequence of arguments. Accesses are bounds-checked
// against MaxArgs, not against the current count, so slots may be filled in any order.
type Args struct {
	values [MaxArgs]any
	n      int
}

// Set stores the value into the slot. The count grows to cover the slot if needed.
func (a *Args) Set(index int, value any) error {
	if err := checkIndex(index); err != nil {
		return err
	}

	a.values[index] = value
	if index >= a.n {
		a.n = index + 1
	}

	return nil
}

// Get returns the value stored in the slot. Slots never set are nil.
func (a *Args) Get(index int) (any, error) {
	if err := checkIndex(index); err != nil {
		return nil, err
	}

	return a.values[index], nil
}

// SetCount sets how many leading slots are logically populated. Shrinking the count
// doesn't clear the slots beyond it.
func (a *Args) SetCount(n int) error {
	if n < 0 || n > MaxArgs {
		return fmt.Errorf("%w: %d arguments, capacity is %d", errors.ErrOutOfRange, n, MaxArgs)
	}

	a.n = n
	return nil
}

// Fill replaces the leading slots with values and sets the count to their number.
func (a *Args) Fill(values []any) error {
	if len(values) > MaxArgs {
		return fmt.Errorf(
			"%w: %d arguments, capacity is %d", errors.ErrOutOfRange, len(values), MaxArgs,
		)
	}

	a.n = copy(a.values[:], values)
	return nil
}

func (a *Args) Len() int {
	return a.n
}

// Slice returns the populated slots. It aliases the underlying storage, so it is valid
// only until the next modification.
func (a *Args) Slice() []any {
	return a.values[:a.n]
}

// Clear drops all the values and resets the count.
func (a *Args) Clear() {
	a.values = [MaxArgs]any{}
	a.n = 0
}

func checkIndex(index int) error {
	if index < 0 || index >= MaxArgs {
		return fmt.Errorf(
			"%w: argument index %d, capacity is %d", errors.ErrOutOfRange, index, MaxArgs,
		)
	}

	return nil
}
