// Package docstore defines the narrow interface the application needs from
// the remote document store: per-collection live queries and per-document
// create/update/delete. Adapters live under internal/docstore/<driver>/.
package docstore

import "context"

// Direction orders a live query by a single field.
type Direction int

const (
	Asc Direction = iota
	Desc
)

// OrderBy names the ordering field for a live query. Adapters apply a
// secondary ascending document-id tie-break so equal keys order
// deterministically across reloads.
type OrderBy struct {
	Field     string
	Direction Direction
}

// Document is one record as reported by the store.
type Document struct {
	ID     string
	Fields map[string]any
}

// Subscription is a live query handle. Updates delivers the full ordered
// matching set on every change; it is closed when the subscription ends,
// after which Err reports the terminal error if the end was not requested.
type Subscription interface {
	Updates() <-chan []Document
	Err() error
	// Stop releases the live query. Idempotent.
	Stop()
}

// Store is the persistence boundary. Every write is a single attempt; the
// caller decides what a failure means.
type Store interface {
	// Watch opens a live query over a collection. The first delivered set
	// is the current state of the collection.
	Watch(ctx context.Context, collection string, order OrderBy) (Subscription, error)
	// Insert creates a document and returns its assigned id.
	Insert(ctx context.Context, collection string, fields map[string]any) (string, error)
	// Patch applies a partial update to one document.
	Patch(ctx context.Context, collection, id string, fields map[string]any) error
	// Remove deletes one document.
	Remove(ctx context.Context, collection, id string) error
	Close() error
}

// WriteError reports a failed create/update/delete against the store.
type WriteError struct {
	Op         string
	Collection string
	Err        error
}

func (e *WriteError) Error() string {
	return "docstore: " + e.Op + " " + e.Collection + ": " + e.Err.Error()
}

func (e *WriteError) Unwrap() error { return e.Err }
