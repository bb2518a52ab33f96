package model

import (
	"errors"
	"testing"
	"time"
)

func TestActivityFromFields(t *testing.T) {
	date := time.Date(2024, 6, 1, 19, 30, 0, 0, time.UTC)
	created := time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC)

	a, err := ActivityFromFields("a1", map[string]any{
		"title":      "Dinner",
		"date":       date,
		"type":       "date",
		"isFavorite": true,
		"location":   "Roma",
		"userId":     "u1",
		"userEmail":  "u1@example.test",
		"createdAt":  created,
	})
	if err != nil {
		t.Fatalf("ActivityFromFields: %v", err)
	}
	if a.ID != "a1" || a.Title != "Dinner" || a.Type != ActivityDate || !a.IsFavorite {
		t.Fatalf("unexpected activity: %+v", a)
	}
	if !a.Date.Equal(date) || !a.CreatedAt.Equal(created) {
		t.Fatalf("timestamps not preserved: %+v", a)
	}
}

func TestActivityFromFieldsRejectsBadType(t *testing.T) {
	_, err := ActivityFromFields("a1", map[string]any{
		"title": "x",
		"date":  time.Now(),
		"type":  "party",
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestActivityFromFieldsRejectsMissingDate(t *testing.T) {
	_, err := ActivityFromFields("a1", map[string]any{
		"title": "x",
		"type":  "trip",
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestNoteFromFieldsDefaultsTheme(t *testing.T) {
	n, err := NoteFromFields("n1", map[string]any{
		"content":   "hello",
		"userId":    "u1",
		"userEmail": "u1@example.test",
		"createdAt": time.Now(),
	})
	if err != nil {
		t.Fatalf("NoteFromFields: %v", err)
	}
	if n.Theme != NoteClassic {
		t.Fatalf("expected classic default, got %q", n.Theme)
	}
}

func TestNoteFromFieldsRejectsBadTheme(t *testing.T) {
	_, err := NoteFromFields("n1", map[string]any{
		"content": "hello",
		"theme":   "neon",
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestMemoryLikesDecodeFromInterfaceSlice(t *testing.T) {
	// Firestore reports array fields as []interface{}.
	m, err := MemoryFromFields("m1", map[string]any{
		"imageUrl":    "https://img.example.test/1.jpg",
		"description": "sunset",
		"likes":       []any{"u1", "u2"},
	})
	if err != nil {
		t.Fatalf("MemoryFromFields: %v", err)
	}
	if len(m.Likes) != 2 || m.Likes[0] != "u1" || m.Likes[1] != "u2" {
		t.Fatalf("likes not decoded: %+v", m.Likes)
	}
}

func TestMemoryFieldsWritesEmptyLikes(t *testing.T) {
	f := Memory{ImageURL: "x", Description: "y"}.Fields()
	likes, ok := f["likes"].([]string)
	if !ok || likes == nil || len(likes) != 0 {
		t.Fatalf("expected empty likes slice, got %#v", f["likes"])
	}
}

func TestThemeCycle(t *testing.T) {
	got := ThemeLight
	want := []Theme{ThemeDark, ThemeLove, ThemeLight}
	for i, w := range want {
		got = got.Next()
		if got != w {
			t.Fatalf("step %d: got %q, want %q", i, got, w)
		}
	}
}

func TestThemeIsDark(t *testing.T) {
	if ThemeLight.IsDark() || ThemeLove.IsDark() {
		t.Fatal("only dark should be dark")
	}
	if !ThemeDark.IsDark() {
		t.Fatal("dark should be dark")
	}
}
