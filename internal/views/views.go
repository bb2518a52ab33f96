// Package views holds the pure transformations rendered over a collection
// snapshot. They are recomputed on demand; inputs are personal-scale so no
// caching is needed.
package views

import (
	"sort"
	"time"

	"github.com/starlove/together/internal/model"
)

// upcomingLimit is how many future activities the dashboard card shows.
const upcomingLimit = 3

// Upcoming returns the next activities strictly after now, soonest first.
func Upcoming(activities []model.Activity, now time.Time) []model.Activity {
	out := make([]model.Activity, 0, upcomingLimit)
	for _, a := range activities {
		if a.Date.After(now) {
			out = append(out, a)
		}
	}
	sortByDateAsc(out)
	if len(out) > upcomingLimit {
		out = out[:upcomingLimit]
	}
	return out
}

// Timeline returns the full set ordered ascending by date.
func Timeline(activities []model.Activity) []model.Activity {
	out := make([]model.Activity, len(activities))
	copy(out, activities)
	sortByDateAsc(out)
	return out
}

// FeedItem is an activity with its per-viewer favorite affordance.
type FeedItem struct {
	model.Activity
	// CanToggleFavorite is set for items the viewer does not own.
	CanToggleFavorite bool `json:"canToggleFavorite"`
}

// SharedFeed keeps the snapshot's insertion order and flags which items the
// current session may mark as favorite.
func SharedFeed(activities []model.Activity, session model.Session) []FeedItem {
	out := make([]FeedItem, 0, len(activities))
	for _, a := range activities {
		out = append(out, FeedItem{
			Activity:          a,
			CanToggleFavorite: a.OwnerUserID != session.UID,
		})
	}
	return out
}

// Milestones is the timeline as the milestone view consumes it: every
// activity in date order, favorites included.
func Milestones(activities []model.Activity) []model.Activity {
	return Timeline(activities)
}

func sortByDateAsc(activities []model.Activity) {
	sort.SliceStable(activities, func(i, j int) bool {
		if activities[i].Date.Equal(activities[j].Date) {
			return activities[i].ID < activities[j].ID
		}
		return activities[i].Date.Before(activities[j].Date)
	})
}
