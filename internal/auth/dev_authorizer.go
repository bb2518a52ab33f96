package auth

import (
	"context"
	"errors"

	"github.com/starlove/together/internal/model"
)

const (
	// LocalDevAPIKey is the hardcoded API key for local development only
	LocalDevAPIKey = "sk_local_together_dev_key"
)

// DevAuthorizer recognizes only the hardcoded local development key and
// resolves it to a fixed dev session.
type DevAuthorizer struct{}

func NewDevAuthorizer() *DevAuthorizer { return &DevAuthorizer{} }

func (d *DevAuthorizer) Authorize(ctx context.Context, apiKey string) (*model.Session, error) {
	if apiKey != LocalDevAPIKey {
		return nil, errors.New("invalid API key for local development")
	}
	return &model.Session{UID: "together-dev", Email: "dev@localhost"}, nil
}
