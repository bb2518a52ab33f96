package model

import "time"

// ActivityType classifies a shared activity.
type ActivityType string

const (
	ActivityDate     ActivityType = "date"
	ActivityTrip     ActivityType = "trip"
	ActivityEvent    ActivityType = "event"
	ActivitySurprise ActivityType = "surprise"
)

// Valid reports whether t is one of the enumerated activity types.
func (t ActivityType) Valid() bool {
	switch t {
	case ActivityDate, ActivityTrip, ActivityEvent, ActivitySurprise:
		return true
	}
	return false
}

// NoteTheme selects the presentation variant of a note.
type NoteTheme string

const (
	NoteClassic  NoteTheme = "classic"
	NoteRomantic NoteTheme = "romantic"
	NoteMinimal  NoteTheme = "minimal"
	NoteElegant  NoteTheme = "elegant"
)

func (t NoteTheme) Valid() bool {
	switch t {
	case NoteClassic, NoteRomantic, NoteMinimal, NoteElegant:
		return true
	}
	return false
}

// Theme is the process-wide UI theme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeLove  Theme = "love"
)

func (t Theme) Valid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeLove:
		return true
	}
	return false
}

// Next advances the theme in cyclic order light -> dark -> love -> light.
func (t Theme) Next() Theme {
	switch t {
	case ThemeLight:
		return ThemeDark
	case ThemeDark:
		return ThemeLove
	default:
		return ThemeLight
	}
}

// IsDark reports whether the theme drives the dark presentation variant.
// Love is a variant of its own and is not dark for contrast purposes.
func (t Theme) IsDark() bool { return t == ThemeDark }

// Session is the authenticated identity associated with a caller.
type Session struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}

// Activity is a shared activity planned or recorded by the couple.
type Activity struct {
	ID          string       `firestore:"-" json:"id"`
	Title       string       `firestore:"title" json:"title"`
	Date        time.Time    `firestore:"date" json:"date"`
	Location    string       `firestore:"location,omitempty" json:"location,omitempty"`
	Type        ActivityType `firestore:"type" json:"type"`
	IsFavorite  bool         `firestore:"isFavorite" json:"isFavorite"`
	OwnerUserID string       `firestore:"userId" json:"userId"`
	OwnerEmail  string       `firestore:"userEmail" json:"userEmail"`
	CreatedAt   time.Time    `firestore:"createdAt" json:"createdAt"`
}

// Note is a free-form message visible to both partners, editable only by its owner.
type Note struct {
	ID          string    `firestore:"-" json:"id"`
	Content     string    `firestore:"content" json:"content"`
	Theme       NoteTheme `firestore:"theme" json:"theme"`
	OwnerUserID string    `firestore:"userId" json:"userId"`
	OwnerEmail  string    `firestore:"userEmail" json:"userEmail"`
	CreatedAt   time.Time `firestore:"createdAt" json:"createdAt"`
}

// Memory is a photo memory. Likes has no toggle flow yet; it is written
// empty at creation and never mutated.
type Memory struct {
	ID          string    `firestore:"-" json:"id"`
	ImageURL    string    `firestore:"imageUrl" json:"imageUrl"`
	Description string    `firestore:"description" json:"description"`
	Likes       []string  `firestore:"likes" json:"likes"`
	OwnerUserID string    `firestore:"userId" json:"userId"`
	OwnerEmail  string    `firestore:"userEmail" json:"userEmail"`
	CreatedAt   time.Time `firestore:"createdAt" json:"createdAt"`
}
