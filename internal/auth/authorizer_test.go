package auth

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticAuthorizerParsesKeyTable(t *testing.T) {
	a, err := NewStaticAuthorizer("k1=alice:alice@example.com, k2=bob:bob@example.com")
	require.NoError(t, err)

	s, err := a.Authorize(context.Background(), "k1")
	require.NoError(t, err)
	assert.Equal(t, "alice", s.UID)
	assert.Equal(t, "alice@example.com", s.Email)

	s, err = a.Authorize(context.Background(), "k2")
	require.NoError(t, err)
	assert.Equal(t, "bob", s.UID)
}

func TestStaticAuthorizerRejectsUnknownKey(t *testing.T) {
	a, err := NewStaticAuthorizer("k1=alice:alice@example.com")
	require.NoError(t, err)

	_, err = a.Authorize(context.Background(), "nope")
	assert.Error(t, err)
}

func TestStaticAuthorizerMalformedTables(t *testing.T) {
	cases := []string{
		"",
		"justakey",
		"k1=nomail",
		"k1=:missing@uid.com",
		"k1=uid:",
	}
	for _, table := range cases {
		_, err := NewStaticAuthorizer(table)
		assert.Error(t, err, "table %q should be rejected", table)
	}
}

func TestDevAuthorizerRecognizesOnlyTheDevKey(t *testing.T) {
	a := NewDevAuthorizer()

	s, err := a.Authorize(context.Background(), LocalDevAPIKey)
	require.NoError(t, err)
	assert.Equal(t, "together-dev", s.UID)

	_, err = a.Authorize(context.Background(), "whatever")
	assert.Error(t, err)
}

func TestExtractAPIKeyBearerHeader(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/activities", nil)
	r.Header.Set("Authorization", "Bearer sk_test")

	key, err := ExtractAPIKey(r)
	require.NoError(t, err)
	assert.Equal(t, "sk_test", key)
}

func TestExtractAPIKeyQueryFallback(t *testing.T) {
	r := httptest.NewRequest("GET", "/ws?key=sk_ws", nil)
	key, err := ExtractAPIKey(r)
	require.NoError(t, err)
	assert.Equal(t, "sk_ws", key)
}

func TestExtractAPIKeyErrors(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/activities", nil)
	_, err := ExtractAPIKey(r)
	assert.Error(t, err, "missing header and query")

	r.Header.Set("Authorization", "Basic dXNlcg==")
	_, err = ExtractAPIKey(r)
	assert.Error(t, err, "non-bearer scheme")
}
