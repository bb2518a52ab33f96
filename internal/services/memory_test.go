package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starlove/together/internal/docstore/docstoretest"
	"github.com/starlove/together/internal/model"
)

func TestCreateMemoryWritesEmptyLikes(t *testing.T) {
	fake := docstoretest.New()
	svc := NewMemoryService(fake, zerolog.Nop())
	require.NoError(t, svc.Start(context.Background()))
	t.Cleanup(svc.Stop)

	err := svc.Create(context.Background(), alice, CreateMemoryRequest{
		ImageURL:    "https://img.example.com/beach.jpg",
		Description: "first trip",
	})
	require.NoError(t, err)

	require.Len(t, fake.Inserts, 1)
	fields := fake.Inserts[0].Fields
	assert.Equal(t, []string{}, fields["likes"])
	assert.Equal(t, "alice", fields["userId"])
}

func TestCreateMemoryValidation(t *testing.T) {
	fake := docstoretest.New()
	svc := NewMemoryService(fake, zerolog.Nop())
	require.NoError(t, svc.Start(context.Background()))
	t.Cleanup(svc.Stop)

	err := svc.Create(context.Background(), alice, CreateMemoryRequest{Description: "no image"})
	assert.ErrorIs(t, err, model.ErrValidation)

	err = svc.Create(context.Background(), alice, CreateMemoryRequest{ImageURL: "https://x/y.jpg"})
	assert.ErrorIs(t, err, model.ErrValidation)

	assert.Empty(t, fake.Inserts)
}
