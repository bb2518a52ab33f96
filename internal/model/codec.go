package model

import (
	"fmt"
	"time"
)

// Field names shared by every collection document.
const (
	FieldDate      = "date"
	FieldCreatedAt = "createdAt"
)

// The functions below convert between typed records and the schema-flexible
// field maps the document store deals in. Decoding validates enums and
// instants here so nothing above the store boundary handles untyped bags.

func ActivityFromFields(id string, fields map[string]any) (Activity, error) {
	a := Activity{
		ID:          id,
		Title:       stringField(fields, "title"),
		Date:        timeField(fields, "date"),
		Location:    stringField(fields, "location"),
		Type:        ActivityType(stringField(fields, "type")),
		IsFavorite:  boolField(fields, "isFavorite"),
		OwnerUserID: stringField(fields, "userId"),
		OwnerEmail:  stringField(fields, "userEmail"),
		CreatedAt:   timeField(fields, "createdAt"),
	}
	if !a.Type.Valid() {
		return Activity{}, fmt.Errorf("activity %s: type %q: %w", id, a.Type, ErrValidation)
	}
	if a.Date.IsZero() {
		return Activity{}, fmt.Errorf("activity %s: date missing: %w", id, ErrValidation)
	}
	return a, nil
}

func (a Activity) Fields() map[string]any {
	f := map[string]any{
		"title":      a.Title,
		"date":       a.Date,
		"type":       string(a.Type),
		"isFavorite": a.IsFavorite,
		"userId":     a.OwnerUserID,
		"userEmail":  a.OwnerEmail,
		"createdAt":  a.CreatedAt,
	}
	if a.Location != "" {
		f["location"] = a.Location
	}
	return f
}

func NoteFromFields(id string, fields map[string]any) (Note, error) {
	n := Note{
		ID:          id,
		Content:     stringField(fields, "content"),
		Theme:       NoteTheme(stringField(fields, "theme")),
		OwnerUserID: stringField(fields, "userId"),
		OwnerEmail:  stringField(fields, "userEmail"),
		CreatedAt:   timeField(fields, "createdAt"),
	}
	// Documents written before theming shipped have no theme field.
	if n.Theme == "" {
		n.Theme = NoteClassic
	}
	if !n.Theme.Valid() {
		return Note{}, fmt.Errorf("note %s: theme %q: %w", id, n.Theme, ErrValidation)
	}
	return n, nil
}

func (n Note) Fields() map[string]any {
	return map[string]any{
		"content":   n.Content,
		"theme":     string(n.Theme),
		"userId":    n.OwnerUserID,
		"userEmail": n.OwnerEmail,
		"createdAt": n.CreatedAt,
	}
}

func MemoryFromFields(id string, fields map[string]any) (Memory, error) {
	m := Memory{
		ID:          id,
		ImageURL:    stringField(fields, "imageUrl"),
		Description: stringField(fields, "description"),
		Likes:       stringsField(fields, "likes"),
		OwnerUserID: stringField(fields, "userId"),
		OwnerEmail:  stringField(fields, "userEmail"),
		CreatedAt:   timeField(fields, "createdAt"),
	}
	return m, nil
}

func (m Memory) Fields() map[string]any {
	likes := m.Likes
	if likes == nil {
		likes = []string{}
	}
	return map[string]any{
		"imageUrl":    m.ImageURL,
		"description": m.Description,
		"likes":       likes,
		"userId":      m.OwnerUserID,
		"userEmail":   m.OwnerEmail,
		"createdAt":   m.CreatedAt,
	}
}

func stringField(f map[string]any, key string) string {
	s, _ := f[key].(string)
	return s
}

func boolField(f map[string]any, key string) bool {
	b, _ := f[key].(bool)
	return b
}

func timeField(f map[string]any, key string) time.Time {
	switch v := f[key].(type) {
	case time.Time:
		return v
	case *time.Time:
		if v != nil {
			return *v
		}
	}
	return time.Time{}
}

// stringsField accepts both []string and the []interface{} shape Firestore
// returns for array fields.
func stringsField(f map[string]any, key string) []string {
	switch v := f[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
