package peer

import "errors"

// ErrUnavailable is the reason attached to an unavailable Result that was
// created without a more specific cause.
var ErrUnavailable = errors.New("peer unavailable")

// Result holds either data fetched from a peer or the reason the peer could
// not provide it.
type Result[T any] struct {
	value T
	err   error
	ok    bool
}

// Available returns a Result carrying v.
func Available[T any](v T) Result[T] {
	return Result[T]{value: v, ok: true}
}

// Unavailable returns a Result with no data. A nil err becomes ErrUnavailable.
func Unavailable[T any](err error) Result[T] {
	if err == nil {
		err = ErrUnavailable
	}
	return Result[T]{err: err}
}

// Get returns the data and whether the peer was available.
func (r Result[T]) Get() (T, bool) {
	return r.value, r.ok
}

// OrElse returns the data, or def when the peer was unavailable.
func (r Result[T]) OrElse(def T) T {
	if !r.ok {
		return def
	}
	return r.value
}

// Err returns why the peer was unavailable, or nil.
func (r Result[T]) Err() error {
	return r.err
}
