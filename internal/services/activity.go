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

// CollectionActivities is the remote collection backing activities.
const CollectionActivities = "activities"

// ActivityService is the collection view model for activities: a live view
// ordered by date descending plus the mutation contract. Mutations are a
// single fire-and-forget write; the view reflects them on the next pushed
// snapshot, never locally.
type ActivityService struct {
	store docstore.Store
	view  *collection.View[model.Activity]
	// ownerOnly restricts delete to the creating user. The observed web
	// client lets any signed-in user delete, so this defaults off.
	ownerOnly bool
	log       zerolog.Logger
}

func NewActivityService(store docstore.Store, ownerOnly bool, log zerolog.Logger) *ActivityService {
	s := &ActivityService{store: store, ownerOnly: ownerOnly, log: log}
	s.view = collection.New(store, CollectionActivities,
		docstore.OrderBy{Field: model.FieldDate, Direction: docstore.Desc},
		func(d docstore.Document) (model.Activity, error) {
			return model.ActivityFromFields(d.ID, d.Fields)
		}, log)
	return s
}

// View exposes the underlying live view for snapshot fan-out wiring.
func (s *ActivityService) View() *collection.View[model.Activity] { return s.view }

func (s *ActivityService) Start(ctx context.Context) error { return s.view.Subscribe(ctx) }
func (s *ActivityService) Stop()                           { s.view.Unsubscribe() }

func (s *ActivityService) Snapshot() []model.Activity { return s.view.Snapshot() }

// CreateActivityRequest carries the add-form fields.
type CreateActivityRequest struct {
	Title    string             `json:"title"`
	Date     time.Time          `json:"date"`
	Location string             `json:"location,omitempty"`
	Type     model.ActivityType `json:"type"`
}

// Create validates required fields, stamps the session identity and a
// creation timestamp, and issues one write. No retry on failure.
func (s *ActivityService) Create(ctx context.Context, session model.Session, req CreateActivityRequest) error {
	if req.Title == "" {
		return fmt.Errorf("title is required: %w", model.ErrValidation)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("date is required: %w", model.ErrValidation)
	}
	if !req.Type.Valid() {
		return fmt.Errorf("type %q is not a valid activity type: %w", req.Type, model.ErrValidation)
	}
	a := model.Activity{
		Title:       req.Title,
		Date:        req.Date,
		Location:    req.Location,
		Type:        req.Type,
		IsFavorite:  false,
		OwnerUserID: session.UID,
		OwnerEmail:  session.Email,
		CreatedAt:   time.Now().UTC(),
	}
	id, err := s.store.Insert(ctx, CollectionActivities, a.Fields())
	if err != nil {
		s.log.Error().Err(err).Msg("activity create failed")
		return err
	}
	s.log.Info().Str("activity", id).Str("user", session.UID).Msg("activity created")
	return nil
}

// ToggleFavorite flips the favorite flag of one activity. Open to any
// authenticated user.
func (s *ActivityService) ToggleFavorite(ctx context.Context, session model.Session, id string) error {
	a, ok := s.find(id)
	if !ok {
		return fmt.Errorf("activity %s: %w", id, model.ErrNotFound)
	}
	err := s.store.Patch(ctx, CollectionActivities, id, map[string]any{"isFavorite": !a.IsFavorite})
	if err != nil {
		s.log.Error().Err(err).Str("activity", id).Msg("favorite toggle failed")
	}
	return err
}

// Delete removes one activity, honoring the owner-only policy when enabled.
// The ownership check runs before any network I/O.
func (s *ActivityService) Delete(ctx context.Context, session model.Session, id string) error {
	a, ok := s.find(id)
	if !ok {
		return fmt.Errorf("activity %s: %w", id, model.ErrNotFound)
	}
	if s.ownerOnly && a.OwnerUserID != session.UID {
		return fmt.Errorf("activity %s belongs to another user: %w", id, model.ErrForbidden)
	}
	err := s.store.Remove(ctx, CollectionActivities, id)
	if err != nil {
		s.log.Error().Err(err).Str("activity", id).Msg("activity delete failed")
	}
	return err
}

func (s *ActivityService) find(id string) (model.Activity, bool) {
	for _, a := range s.view.Snapshot() {
		if a.ID == id {
			return a, true
		}
	}
	return model.Activity{}, false
}
