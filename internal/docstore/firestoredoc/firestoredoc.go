// Package firestoredoc adapts Cloud Firestore to the docstore interface.
// Live queries map onto Firestore snapshot listeners, which push the full
// matching result set on every change.
package firestoredoc

import (
	"context"
	"fmt"
	"sync"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"github.com/starlove/together/internal/docstore"
)

type Store struct {
	client *firestore.Client
}

// New connects to Firestore for the given project. credentialsFile may be
// empty, in which case application default credentials are used.
func New(ctx context.Context, projectID, credentialsFile string) (*Store, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}
	return &Store{client: client}, nil
}

func (s *Store) Watch(ctx context.Context, collection string, order docstore.OrderBy) (docstore.Subscription, error) {
	q := s.client.Collection(collection).
		OrderBy(order.Field, direction(order.Direction)).
		OrderBy(firestore.DocumentID, firestore.Asc)
	sub := &subscription{
		it: q.Snapshots(ctx),
		ch: make(chan []docstore.Document, 1),
	}
	go sub.run()
	return sub, nil
}

func (s *Store) Insert(ctx context.Context, collection string, fields map[string]any) (string, error) {
	id := uuid.New().String()
	if _, err := s.client.Collection(collection).Doc(id).Set(ctx, fields); err != nil {
		return "", &docstore.WriteError{Op: "insert", Collection: collection, Err: err}
	}
	return id, nil
}

func (s *Store) Patch(ctx context.Context, collection, id string, fields map[string]any) error {
	updates := make([]firestore.Update, 0, len(fields))
	for k, v := range fields {
		updates = append(updates, firestore.Update{Path: k, Value: v})
	}
	if _, err := s.client.Collection(collection).Doc(id).Update(ctx, updates); err != nil {
		return &docstore.WriteError{Op: "patch", Collection: collection, Err: err}
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, collection, id string) error {
	if _, err := s.client.Collection(collection).Doc(id).Delete(ctx); err != nil {
		return &docstore.WriteError{Op: "remove", Collection: collection, Err: err}
	}
	return nil
}

func (s *Store) Close() error { return s.client.Close() }

type subscription struct {
	it *firestore.QuerySnapshotIterator
	ch chan []docstore.Document

	mu   sync.Mutex
	err  error
	stop sync.Once
}

func (s *subscription) run() {
	defer close(s.ch)
	for {
		snap, err := s.it.Next()
		if err != nil {
			s.mu.Lock()
			s.err = err
			s.mu.Unlock()
			return
		}
		docs, err := snap.Documents.GetAll()
		if err != nil {
			s.mu.Lock()
			s.err = err
			s.mu.Unlock()
			return
		}
		out := make([]docstore.Document, 0, len(docs))
		for _, d := range docs {
			out = append(out, docstore.Document{ID: d.Ref.ID, Fields: d.Data()})
		}
		s.deliver(out)
	}
}

// deliver keeps only the latest set when the consumer lags.
func (s *subscription) deliver(docs []docstore.Document) {
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

func (s *subscription) Updates() <-chan []docstore.Document { return s.ch }

func (s *subscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *subscription) Stop() {
	s.stop.Do(s.it.Stop)
}

func direction(d docstore.Direction) firestore.Direction {
	if d == docstore.Desc {
		return firestore.Desc
	}
	return firestore.Asc
}
