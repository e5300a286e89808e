// Package mutator runs confirm, write and refetch cycles against remote
// collections.
//
// The client never merges a write into its cached list. Every successful
// write is followed by a full refetch, and writes to one collection are
// serialized so the last refetch to finish is always the last one issued.
package mutator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/eventflow/internal/common"
	"github.com/dmitrijs2005/eventflow/internal/logging"
	"golang.org/x/sync/semaphore"
)

// ErrDeclined is returned when the user says no at the confirmation step.
// No remote call has been made.
var ErrDeclined = errors.New("declined by user")

// Credentials hands out the credential to attach to a call dispatched now.
type Credentials interface {
	Credential() (string, bool)
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// Notifier shows messages to the user. Alert is for failures the user must
// acknowledge; Notice for completed actions.
type Notifier interface {
	Alert(msg string)
	Notice(msg string)
}

// Deps are the collaborators shared by every collection.
type Deps struct {
	Credentials Credentials
	Confirmer   Confirmer
	Notifier    Notifier
	Logger      logging.Logger
}

// Fetcher reads the whole collection.
type Fetcher[T any] func(ctx context.Context, credential string) ([]T, error)

// Op is one write.
type Op struct {
	Name    string
	Confirm string // prompt; empty means no confirmation step
	Success string
	Failure string
	Call    func(ctx context.Context, credential string) error
}

// State is a copy of what the view shows.
type State[T any] struct {
	Items  []T
	Err    error
	Loaded bool
}

// Collection caches the last full read of a remote list.
type Collection[T any] struct {
	name  string
	fetch Fetcher[T]
	deps  Deps
	log   logging.Logger
	queue *semaphore.Weighted

	mu      sync.Mutex
	items   []T
	listErr error
	loaded  bool
}

func NewCollection[T any](name string, fetch Fetcher[T], deps Deps) *Collection[T] {
	log := deps.Logger
	if log == nil {
		log = logging.Nop()
	}
	return &Collection[T]{
		name:  name,
		fetch: fetch,
		deps:  deps,
		log:   log.With("collection", name),
		queue: semaphore.NewWeighted(1),
	}
}

// State returns the current list, the inline list error, if any, and whether
// a read has ever succeeded.
func (c *Collection[T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State[T]{
		Items:  append([]T(nil), c.items...),
		Err:    c.listErr,
		Loaded: c.loaded,
	}
}

// Refetch re-reads the collection. A failure is kept as the inline error and
// the previous list stays visible. When ctx ends first the result is dropped.
func (c *Collection[T]) Refetch(ctx context.Context) error {
	if err := c.queue.Acquire(ctx, 1); err != nil {
		return err
	}
	defer c.queue.Release(1)
	return c.refetch(ctx)
}

// Mutate runs op: confirmation, then the call, then a refetch. The call and
// the refetch hold the collection's write slot.
//
// A failed call raises an alert and leaves the list untouched. A refetch
// failure after a successful call only sets the inline error; the write
// itself is reported as done.
func (c *Collection[T]) Mutate(ctx context.Context, op Op) error {
	if op.Confirm != "" {
		if c.deps.Confirmer == nil || !c.deps.Confirmer.Confirm(ctx, op.Confirm) {
			c.log.Debug(ctx, "mutation declined", "op", op.Name)
			return ErrDeclined
		}
	}

	if err := c.queue.Acquire(ctx, 1); err != nil {
		return err
	}
	defer c.queue.Release(1)

	credential, ok := c.deps.Credentials.Credential()
	if !ok {
		return fmt.Errorf("%s: %w", op.Name, common.ErrNotAuthenticated)
	}

	if err := op.Call(ctx, credential); err != nil {
		if ctx.Err() != nil {
			c.log.Debug(ctx, "mutation result discarded", "op", op.Name)
			return ctx.Err()
		}
		c.log.Warn(ctx, "mutation failed", "op", op.Name, "err", err)
		c.alert(op.Failure)
		return fmt.Errorf("%s: %w", op.Name, err)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	c.log.Info(ctx, "mutation done", "op", op.Name)
	if c.deps.Notifier != nil && op.Success != "" {
		c.deps.Notifier.Notice(op.Success)
	}

	if err := c.refetch(ctx); err != nil && ctx.Err() == nil {
		c.log.Warn(ctx, "refetch after write failed", "op", op.Name, "err", err)
	}
	return nil
}

func (c *Collection[T]) refetch(ctx context.Context) error {
	credential, ok := c.deps.Credentials.Credential()
	if !ok {
		err := fmt.Errorf("list %s: %w", c.name, common.ErrNotAuthenticated)
		c.setError(err)
		return err
	}

	items, err := c.fetch(ctx, credential)
	if ctx.Err() != nil {
		c.log.Debug(ctx, "refetch result discarded")
		return ctx.Err()
	}
	if err != nil {
		err = fmt.Errorf("list %s: %w", c.name, err)
		c.setError(err)
		return err
	}

	c.mu.Lock()
	c.items = items
	c.listErr = nil
	c.loaded = true
	c.mu.Unlock()

	c.log.Debug(ctx, "refetched", "count", len(items))
	return nil
}

func (c *Collection[T]) setError(err error) {
	c.mu.Lock()
	c.listErr = err
	c.mu.Unlock()
}

func (c *Collection[T]) alert(msg string) {
	if c.deps.Notifier != nil && msg != "" {
		c.deps.Notifier.Alert(msg)
	}
}
