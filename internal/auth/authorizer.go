// Package auth is the identity-provider boundary. The service trusts an
// external provider to have authenticated the couple; here an API key is
// resolved to the opaque session identity (uid, email) it stands for.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/starlove/together/internal/model"
)

// Authorizer resolves a bearer API key to a session.
type Authorizer interface {
	Authorize(ctx context.Context, apiKey string) (*model.Session, error)
}

// StaticAuthorizer holds the fixed key table of a two-partner deployment.
type StaticAuthorizer struct {
	sessions map[string]model.Session
}

// NewStaticAuthorizer parses a comma-separated key table of the form
// "key=uid:email,key2=uid2:email2".
func NewStaticAuthorizer(keyTable string) (*StaticAuthorizer, error) {
	sessions := make(map[string]model.Session)
	for _, pair := range strings.Split(keyTable, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, identity, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("malformed api key entry %q, expected key=uid:email", pair)
		}
		uid, email, ok := strings.Cut(identity, ":")
		if !ok || uid == "" || email == "" {
			return nil, fmt.Errorf("malformed identity in %q, expected uid:email", pair)
		}
		sessions[key] = model.Session{UID: uid, Email: email}
	}
	if len(sessions) == 0 {
		return nil, errors.New("api key table is empty")
	}
	return &StaticAuthorizer{sessions: sessions}, nil
}

func (a *StaticAuthorizer) Authorize(ctx context.Context, apiKey string) (*model.Session, error) {
	s, ok := a.sessions[apiKey]
	if !ok {
		return nil, errors.New("unknown API key")
	}
	return &s, nil
}
