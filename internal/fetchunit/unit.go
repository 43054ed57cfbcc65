// Package fetchunit implements the loading/success/error lifecycle shared by
// every data-backed page section.
//
// A Unit is keyed by a single comparable input (business id, business name
// or search query). Loading a new key supersedes any load still in flight:
// responses are applied only when they belong to the latest generation, so
// a slow answer for an old key can never overwrite the state of a newer one.
package fetchunit

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// State is the lifecycle position of a unit
type State int

const (
	Idle State = iota
	Loading
	Success
	Error
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Fetcher retrieves the data for one key
type Fetcher[K comparable, T any] func(ctx context.Context, key K) (T, error)

// Observer is notified each time a load settles and its result is applied
type Observer interface {
	UnitSettled(unit string, state State)
}

// View is an immutable snapshot of a unit
type View[K comparable, T any] struct {
	State State
	Key   K
	Data  T
	Err   string // ErrorPrefix + underlying error text, set only in Error
}

// HasData reports whether the view carries a successful payload
func (v View[K, T]) HasData() bool {
	return v.State == Success
}

// Unit owns the state of one section
type Unit[K comparable, T any] struct {
	name        string
	errorPrefix string
	fetch       Fetcher[K, T]
	observer    Observer

	mu         sync.Mutex
	generation uint64
	view       View[K, T]
}

// New creates an idle unit. errorPrefix is prepended to the error text
// shown when a load fails.
func New[K comparable, T any](name, errorPrefix string, fetch Fetcher[K, T]) *Unit[K, T] {
	return &Unit[K, T]{
		name:        name,
		errorPrefix: errorPrefix,
		fetch:       fetch,
	}
}

// WithObserver attaches an observer and returns the unit
func (u *Unit[K, T]) WithObserver(o Observer) *Unit[K, T] {
	u.observer = o
	return u
}

// Name returns the unit name
func (u *Unit[K, T]) Name() string {
	return u.name
}

// Load fetches the data for key and applies the result unless a newer
// Load started in the meantime. A zero key resets the unit to Idle
// without issuing a request. The returned view is the unit state after
// this call, which may belong to a newer key.
func (u *Unit[K, T]) Load(ctx context.Context, key K) View[K, T] {
	var zeroKey K
	if key == zeroKey {
		u.mu.Lock()
		u.generation++
		u.view = View[K, T]{State: Idle}
		u.mu.Unlock()
		return u.Snapshot()
	}

	u.mu.Lock()
	u.generation++
	gen := u.generation
	// previous data is not carried into the new key
	u.view = View[K, T]{State: Loading, Key: key}
	u.mu.Unlock()

	data, err := u.fetch(ctx, key)

	u.mu.Lock()
	if gen != u.generation {
		u.mu.Unlock()
		logrus.Debugf("Discarding stale %s response for %v", u.name, key)
		return u.Snapshot()
	}

	if err != nil {
		u.view = View[K, T]{State: Error, Key: key, Err: u.errorPrefix + err.Error()}
	} else {
		u.view = View[K, T]{State: Success, Key: key, Data: data}
	}
	settled := u.view.State
	u.mu.Unlock()

	if settled == Error {
		logrus.Warnf("%s load for %v failed: %v", u.name, key, err)
	}
	if u.observer != nil {
		u.observer.UnitSettled(u.name, settled)
	}

	return u.Snapshot()
}

// Retry re-runs the fetch for the current key. An idle unit stays idle.
func (u *Unit[K, T]) Retry(ctx context.Context) View[K, T] {
	u.mu.Lock()
	key := u.view.Key
	u.mu.Unlock()

	return u.Load(ctx, key)
}

// Snapshot returns the current view
func (u *Unit[K, T]) Snapshot() View[K, T] {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.view
}
