// Package collection implements the live-synchronized collection view: a
// subscription against one remote collection whose local ordered snapshot
// is replaced wholesale on every pushed set.
package collection

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/starlove/together/internal/docstore"
)

const (
	initialBackoff = time.Second
	maxBackoff     = 30 * time.Second
)

// DecodeFunc turns a raw document into a typed record. A decode failure
// drops that document from the snapshot rather than tearing the view down.
type DecodeFunc[T any] func(docstore.Document) (T, error)

// View bridges one remote collection to its consumers. The local snapshot
// is always exactly the most recently pushed set; no merging of stale and
// fresh data ever happens.
type View[T any] struct {
	store    docstore.Store
	name     string
	order    docstore.OrderBy
	decode   DecodeFunc[T]
	onChange func([]T)
	log      zerolog.Logger

	mu   sync.RWMutex
	snap []T

	subMu  sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func New[T any](store docstore.Store, name string, order docstore.OrderBy, decode DecodeFunc[T], log zerolog.Logger) *View[T] {
	return &View[T]{
		store:  store,
		name:   name,
		order:  order,
		decode: decode,
		log:    log.With().Str("collection", name).Logger(),
	}
}

// OnChange registers a callback invoked with the new snapshot after every
// replacement. Must be called before Subscribe.
func (v *View[T]) OnChange(fn func([]T)) { v.onChange = fn }

// Subscribe opens the live query. If a subscription is already active it is
// torn down first so callbacks are never delivered twice. The initial Watch
// failure is returned synchronously; later stream failures trigger
// reconnection with capped exponential backoff.
func (v *View[T]) Subscribe(ctx context.Context) error {
	v.subMu.Lock()
	defer v.subMu.Unlock()
	v.teardownLocked()

	ctx, cancel := context.WithCancel(ctx)
	sub, err := v.store.Watch(ctx, v.name, v.order)
	if err != nil {
		cancel()
		return err
	}

	done := make(chan struct{})
	v.cancel = cancel
	v.done = done
	go v.run(ctx, sub, done)
	return nil
}

// Unsubscribe releases the live query. It is idempotent and synchronous:
// once it returns, no further snapshot callback fires.
func (v *View[T]) Unsubscribe() {
	v.subMu.Lock()
	defer v.subMu.Unlock()
	v.teardownLocked()
}

func (v *View[T]) teardownLocked() {
	if v.cancel == nil {
		return
	}
	v.cancel()
	<-v.done
	v.cancel = nil
	v.done = nil
}

// Snapshot returns a copy of the current ordered set.
func (v *View[T]) Snapshot() []T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]T, len(v.snap))
	copy(out, v.snap)
	return out
}

func (v *View[T]) run(ctx context.Context, sub docstore.Subscription, done chan struct{}) {
	defer close(done)
	defer func() { sub.Stop() }()

	backoff := initialBackoff
	for {
		for docs := range sub.Updates() {
			v.apply(docs)
			backoff = initialBackoff
		}
		if ctx.Err() != nil {
			return
		}
		err := sub.Err()
		v.log.Warn().Err(err).Dur("backoff", backoff).Msg("live query ended, reconnecting")

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		if backoff < maxBackoff {
			backoff *= 2
		}

		next, err := v.store.Watch(ctx, v.name, v.order)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			v.log.Warn().Err(err).Msg("live query reopen failed")
			continue
		}
		sub.Stop()
		sub = next
	}
}

func (v *View[T]) apply(docs []docstore.Document) {
	items := make([]T, 0, len(docs))
	for _, d := range docs {
		item, err := v.decode(d)
		if err != nil {
			v.log.Warn().Err(err).Str("doc", d.ID).Msg("dropping undecodable document")
			continue
		}
		items = append(items, item)
	}
	v.mu.Lock()
	v.snap = items
	v.mu.Unlock()
	if v.onChange != nil {
		v.onChange(items)
	}
}
