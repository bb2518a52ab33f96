// Package docstoretest provides a scriptable in-process docstore.Store for
// unit tests: pushed snapshots are delivered to watchers and every write
// is recorded instead of applied.
package docstoretest

import (
	"context"
	"fmt"
	"sync"

	"github.com/starlove/together/internal/docstore"
)

// Mutation records one write issued against the fake.
type Mutation struct {
	Collection string
	ID         string
	Fields     map[string]any
}

type Fake struct {
	mu      sync.Mutex
	subs    map[string][]*fakeSub
	nextID  int
	Inserts []Mutation
	Patches []Mutation
	Removes []Mutation

	InsertErr error
	PatchErr  error
	RemoveErr error
}

func New() *Fake {
	return &Fake{subs: make(map[string][]*fakeSub)}
}

// Push delivers a full snapshot to every watcher of a collection.
func (f *Fake) Push(collection string, docs []docstore.Document) {
	f.mu.Lock()
	subs := append([]*fakeSub(nil), f.subs[collection]...)
	f.mu.Unlock()
	for _, s := range subs {
		s.deliver(docs)
	}
}

// Fail terminates every watcher of a collection with err, as a broken live
// query would.
func (f *Fake) Fail(collection string, err error) {
	f.mu.Lock()
	subs := append([]*fakeSub(nil), f.subs[collection]...)
	f.subs[collection] = nil
	f.mu.Unlock()
	for _, s := range subs {
		s.fail(err)
	}
}

func (f *Fake) Watch(ctx context.Context, collection string, order docstore.OrderBy) (docstore.Subscription, error) {
	s := &fakeSub{fake: f, collection: collection, ch: make(chan []docstore.Document, 16)}
	f.mu.Lock()
	f.subs[collection] = append(f.subs[collection], s)
	f.mu.Unlock()
	go func() {
		<-ctx.Done()
		s.Stop()
	}()
	return s, nil
}

func (f *Fake) Insert(ctx context.Context, collection string, fields map[string]any) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.InsertErr != nil {
		return "", f.InsertErr
	}
	f.nextID++
	id := fmt.Sprintf("doc-%d", f.nextID)
	f.Inserts = append(f.Inserts, Mutation{Collection: collection, ID: id, Fields: fields})
	return id, nil
}

func (f *Fake) Patch(ctx context.Context, collection, id string, fields map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.PatchErr != nil {
		return f.PatchErr
	}
	f.Patches = append(f.Patches, Mutation{Collection: collection, ID: id, Fields: fields})
	return nil
}

func (f *Fake) Remove(ctx context.Context, collection, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.RemoveErr != nil {
		return f.RemoveErr
	}
	f.Removes = append(f.Removes, Mutation{Collection: collection, ID: id})
	return nil
}

func (f *Fake) Close() error { return nil }

type fakeSub struct {
	fake       *Fake
	collection string
	ch         chan []docstore.Document

	mu     sync.Mutex
	err    error
	closed bool
}

func (s *fakeSub) deliver(docs []docstore.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.ch <- docs
}

func (s *fakeSub) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.err = err
	s.closed = true
	close(s.ch)
}

func (s *fakeSub) Updates() <-chan []docstore.Document { return s.ch }

func (s *fakeSub) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *fakeSub) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.ch)

	s.fake.mu.Lock()
	subs := s.fake.subs[s.collection]
	for i, cur := range subs {
		if cur == s {
			s.fake.subs[s.collection] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	s.fake.mu.Unlock()
}
