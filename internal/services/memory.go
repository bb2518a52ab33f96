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

// CollectionMemories is the remote collection backing photo memories.
const CollectionMemories = "memories"

// MemoryService is the collection view model for photo memories, newest
// first. Memories are create-only: no edit or delete flow exists, and the
// likes set is written empty with no toggle.
type MemoryService struct {
	store docstore.Store
	view  *collection.View[model.Memory]
	log   zerolog.Logger
}

func NewMemoryService(store docstore.Store, log zerolog.Logger) *MemoryService {
	s := &MemoryService{store: store, log: log}
	s.view = collection.New(store, CollectionMemories,
		docstore.OrderBy{Field: model.FieldCreatedAt, Direction: docstore.Desc},
		func(d docstore.Document) (model.Memory, error) {
			return model.MemoryFromFields(d.ID, d.Fields)
		}, log)
	return s
}

func (s *MemoryService) View() *collection.View[model.Memory] { return s.view }

func (s *MemoryService) Start(ctx context.Context) error { return s.view.Subscribe(ctx) }
func (s *MemoryService) Stop()                           { s.view.Unsubscribe() }

func (s *MemoryService) Snapshot() []model.Memory { return s.view.Snapshot() }

type CreateMemoryRequest struct {
	ImageURL    string `json:"imageUrl"`
	Description string `json:"description"`
}

// Create stores a new memory. The image URL is taken as-is; reachability
// is not validated.
func (s *MemoryService) Create(ctx context.Context, session model.Session, req CreateMemoryRequest) error {
	if req.ImageURL == "" {
		return fmt.Errorf("imageUrl is required: %w", model.ErrValidation)
	}
	if req.Description == "" {
		return fmt.Errorf("description is required: %w", model.ErrValidation)
	}
	m := model.Memory{
		ImageURL:    req.ImageURL,
		Description: req.Description,
		Likes:       []string{},
		OwnerUserID: session.UID,
		OwnerEmail:  session.Email,
		CreatedAt:   time.Now().UTC(),
	}
	id, err := s.store.Insert(ctx, CollectionMemories, m.Fields())
	if err != nil {
		s.log.Error().Err(err).Msg("memory create failed")
		return err
	}
	s.log.Info().Str("memory", id).Str("user", session.UID).Msg("memory created")
	return nil
}
