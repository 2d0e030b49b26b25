package tour

import "errors"

var (
	// ErrExhausted is returned by [Iterator.Next] once every point of the tour
	// has been produced. Asking for more is a programming error.
	ErrExhausted = errors.New("no more points in tour")

	// ErrRemoveUnsupported is returned by [Iterator.Remove]. Tours only grow;
	// the single way to drop points is [Tour.Reset].
	ErrRemoveUnsupported = errors.New("remove is not supported during iteration")

	// ErrConcurrentModification is returned by [Iterator.Next] when the tour
	// was mutated after the iterator was created. The range-over-func
	// iterators panic with this error instead.
	ErrConcurrentModification = errors.New("tour modified during iteration")

	// ErrUnknownStrategy is returned by [ParseStrategy] and [Tour.Insert] for
	// names or values that do not denote one of the three heuristics.
	ErrUnknownStrategy = errors.New("unknown insertion strategy")

	// ErrBrokenRing is returned by [Tour.Validate] when a ring invariant does
	// not hold. It indicates an internal defect, not bad input.
	ErrBrokenRing = errors.New("broken tour ring")
)
