// Package memdoc is an in-memory document store used by tests and local
// development. It implements the same live-query contract as the Firestore
// adapter: every mutation pushes the full ordered collection to watchers.
package memdoc

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/starlove/together/internal/docstore"
	"github.com/starlove/together/internal/model"
)

type Store struct {
	mu       sync.Mutex
	colls    map[string]map[string]map[string]any
	watchers map[*subscription]struct{}
	closed   bool
}

func New() *Store {
	return &Store{
		colls:    make(map[string]map[string]map[string]any),
		watchers: make(map[*subscription]struct{}),
	}
}

func (s *Store) Watch(ctx context.Context, collection string, order docstore.OrderBy) (docstore.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, fmt.Errorf("memdoc: store closed")
	}
	sub := &subscription{
		store:      s,
		collection: collection,
		order:      order,
		ch:         make(chan []docstore.Document, 16),
	}
	s.watchers[sub] = struct{}{}
	sub.push(s.orderedLocked(collection, order))

	go func() {
		<-ctx.Done()
		sub.Stop()
	}()
	return sub, nil
}

func (s *Store) Insert(ctx context.Context, collection string, fields map[string]any) (string, error) {
	id := uuid.New().String()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.colls[collection] == nil {
		s.colls[collection] = make(map[string]map[string]any)
	}
	s.colls[collection][id] = cloneFields(fields)
	s.notifyLocked(collection)
	return id, nil
}

func (s *Store) Patch(ctx context.Context, collection, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.colls[collection][id]
	if !ok {
		return &docstore.WriteError{Op: "patch", Collection: collection, Err: model.ErrNotFound}
	}
	for k, v := range fields {
		doc[k] = v
	}
	s.notifyLocked(collection)
	return nil
}

func (s *Store) Remove(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.colls[collection][id]; !ok {
		return &docstore.WriteError{Op: "remove", Collection: collection, Err: model.ErrNotFound}
	}
	delete(s.colls[collection], id)
	s.notifyLocked(collection)
	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	subs := make([]*subscription, 0, len(s.watchers))
	for sub := range s.watchers {
		subs = append(subs, sub)
	}
	s.closed = true
	s.mu.Unlock()
	for _, sub := range subs {
		sub.Stop()
	}
	return nil
}

func (s *Store) notifyLocked(collection string) {
	for sub := range s.watchers {
		if sub.collection == collection {
			sub.push(s.orderedLocked(collection, sub.order))
		}
	}
}

// orderedLocked snapshots a collection ordered by the watch key with an
// ascending id tie-break.
func (s *Store) orderedLocked(collection string, order docstore.OrderBy) []docstore.Document {
	docs := make([]docstore.Document, 0, len(s.colls[collection]))
	for id, fields := range s.colls[collection] {
		docs = append(docs, docstore.Document{ID: id, Fields: cloneFields(fields)})
	}
	sort.Slice(docs, func(i, j int) bool {
		c := compareValues(docs[i].Fields[order.Field], docs[j].Fields[order.Field])
		if c == 0 {
			return docs[i].ID < docs[j].ID
		}
		if order.Direction == docstore.Desc {
			return c > 0
		}
		return c < 0
	})
	return docs
}

type subscription struct {
	store      *Store
	collection string
	order      docstore.OrderBy
	ch         chan []docstore.Document
	stop       sync.Once
}

func (s *subscription) Updates() <-chan []docstore.Document { return s.ch }

func (s *subscription) Err() error { return nil }

func (s *subscription) Stop() {
	s.stop.Do(func() {
		s.store.mu.Lock()
		delete(s.store.watchers, s)
		s.store.mu.Unlock()
		close(s.ch)
	})
}

// push never blocks a mutation: when the watcher lags, the oldest pending
// set is dropped since only the latest matters.
func (s *subscription) push(docs []docstore.Document) {
	for {
		select {
		case s.ch <- docs:
			return
		default:
			select {
			case <-s.ch:
			default:
			}
		}
	}
}

func cloneFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}

func compareValues(a, b any) int {
	switch av := a.(type) {
	case time.Time:
		bv, _ := b.(time.Time)
		switch {
		case av.Before(bv):
			return -1
		case av.After(bv):
			return 1
		}
		return 0
	case string:
		bv, _ := b.(string)
		return strings.Compare(av, bv)
	case bool:
		bv, _ := b.(bool)
		switch {
		case !av && bv:
			return -1
		case av && !bv:
			return 1
		}
		return 0
	}
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		}
	}
	return 0
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
