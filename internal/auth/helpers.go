package auth

import (
	"errors"
	"net/http"
	"strings"
)

// ExtractAPIKey extracts the API key from the Authorization header,
// expecting the "Bearer <api_key>" format. WebSocket clients cannot set
// headers from the browser, so a "key" query parameter is accepted as a
// fallback.
func ExtractAPIKey(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		if k := r.URL.Query().Get("key"); k != "" {
			return k, nil
		}
		return "", errors.New("missing Authorization header")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", errors.New("invalid Authorization header format, expected 'Bearer <api_key>'")
	}
	return parts[1], nil
}
