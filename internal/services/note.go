package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/starlove/together/internal/collection"
	"github.com/starlove/together/internal/docstore"
	"github.com/starlove/together/internal/model"
)

// CollectionNotes is the remote collection backing notes.
const CollectionNotes = "notes"

// NoteService is the collection view model for notes, newest first. Any
// user may read every note; content and theme edits and deletion are
// owner-only, enforced here before any network I/O.
type NoteService struct {
	store docstore.Store
	view  *collection.View[model.Note]
	log   zerolog.Logger
}

func NewNoteService(store docstore.Store, log zerolog.Logger) *NoteService {
	s := &NoteService{store: store, log: log}
	s.view = collection.New(store, CollectionNotes,
		docstore.OrderBy{Field: model.FieldCreatedAt, Direction: docstore.Desc},
		func(d docstore.Document) (model.Note, error) {
			return model.NoteFromFields(d.ID, d.Fields)
		}, log)
	return s
}

func (s *NoteService) View() *collection.View[model.Note] { return s.view }

func (s *NoteService) Start(ctx context.Context) error { return s.view.Subscribe(ctx) }
func (s *NoteService) Stop()                           { s.view.Unsubscribe() }

func (s *NoteService) Snapshot() []model.Note { return s.view.Snapshot() }

type CreateNoteRequest struct {
	Content string          `json:"content"`
	Theme   model.NoteTheme `json:"theme,omitempty"`
}

func (s *NoteService) Create(ctx context.Context, session model.Session, req CreateNoteRequest) error {
	if req.Content == "" {
		return fmt.Errorf("content is required: %w", model.ErrValidation)
	}
	if req.Theme == "" {
		req.Theme = model.NoteClassic
	}
	if !req.Theme.Valid() {
		return fmt.Errorf("theme %q is not a valid note theme: %w", req.Theme, model.ErrValidation)
	}
	n := model.Note{
		Content:     req.Content,
		Theme:       req.Theme,
		OwnerUserID: session.UID,
		OwnerEmail:  session.Email,
		CreatedAt:   time.Now().UTC(),
	}
	id, err := s.store.Insert(ctx, CollectionNotes, n.Fields())
	if err != nil {
		s.log.Error().Err(err).Msg("note create failed")
		return err
	}
	s.log.Info().Str("note", id).Str("user", session.UID).Msg("note created")
	return nil
}

// UpdateNoteRequest carries a partial note edit. Nil fields are untouched.
type UpdateNoteRequest struct {
	Content *string          `json:"content,omitempty"`
	Theme   *model.NoteTheme `json:"theme,omitempty"`
}

func (s *NoteService) Update(ctx context.Context, session model.Session, id string, req UpdateNoteRequest) error {
	n, ok := s.find(id)
	if !ok {
		return fmt.Errorf("note %s: %w", id, model.ErrNotFound)
	}
	if n.OwnerUserID != session.UID {
		return fmt.Errorf("note %s belongs to another user: %w", id, model.ErrForbidden)
	}
	fields := map[string]any{}
	if req.Content != nil {
		if *req.Content == "" {
			return fmt.Errorf("content is required: %w", model.ErrValidation)
		}
		fields["content"] = *req.Content
	}
	if req.Theme != nil {
		if !req.Theme.Valid() {
			return fmt.Errorf("theme %q is not a valid note theme: %w", *req.Theme, model.ErrValidation)
		}
		fields["theme"] = string(*req.Theme)
	}
	if len(fields) == 0 {
		return fmt.Errorf("nothing to update: %w", model.ErrValidation)
	}
	err := s.store.Patch(ctx, CollectionNotes, id, fields)
	if err != nil {
		s.log.Error().Err(err).Str("note", id).Msg("note update failed")
	}
	return err
}

func (s *NoteService) Delete(ctx context.Context, session model.Session, id string) error {
	n, ok := s.find(id)
	if !ok {
		return fmt.Errorf("note %s: %w", id, model.ErrNotFound)
	}
	if n.OwnerUserID != session.UID {
		return fmt.Errorf("note %s belongs to another user: %w", id, model.ErrForbidden)
	}
	err := s.store.Remove(ctx, CollectionNotes, id)
	if err != nil {
		s.log.Error().Err(err).Str("note", id).Msg("note delete failed")
	}
	return err
}

func (s *NoteService) find(id string) (model.Note, bool) {
	for _, n := range s.view.Snapshot() {
		if n.ID == id {
			return n, true
		}
	}
	return model.Note{}, false
}
