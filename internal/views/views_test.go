package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/starlove/together/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fixture() []model.Activity {
	return []model.Activity{
		{ID: "a1", Title: "picnic", Date: day(2024, 1, 1)},
		{ID: "a2", Title: "road trip", Date: day(2024, 6, 1)},
		{ID: "a3", Title: "concert", Date: day(2023, 12, 1)},
	}
}

func TestUpcomingKeepsOnlyFutureDates(t *testing.T) {
	now := day(2024, 2, 1)
	got := Upcoming(fixture(), now)
	if assert.Len(t, got, 1) {
		assert.Equal(t, "a2", got[0].ID)
	}
}

func TestUpcomingCapsAtThreeSoonestFirst(t *testing.T) {
	acts := []model.Activity{
		{ID: "w", Date: day(2024, 5, 1)},
		{ID: "x", Date: day(2024, 3, 1)},
		{ID: "y", Date: day(2024, 4, 1)},
		{ID: "z", Date: day(2024, 6, 1)},
	}
	got := Upcoming(acts, day(2024, 2, 1))
	ids := []string{got[0].ID, got[1].ID, got[2].ID}
	assert.Equal(t, []string{"x", "y", "w"}, ids)
	assert.Len(t, got, 3)
}

func TestUpcomingExcludesToday(t *testing.T) {
	now := day(2024, 1, 1)
	got := Upcoming([]model.Activity{{ID: "a1", Date: now}}, now)
	assert.Empty(t, got, "an activity dated exactly now is not upcoming")
}

func TestTimelineOrdersAscendingWithoutMutatingInput(t *testing.T) {
	in := fixture()
	got := Timeline(in)

	assert.Equal(t, []string{"a3", "a1", "a2"}, []string{got[0].ID, got[1].ID, got[2].ID})
	assert.Equal(t, "a1", in[0].ID, "input slice must keep its order")
}

func TestTimelineTiesBreakByID(t *testing.T) {
	same := day(2024, 1, 1)
	got := Timeline([]model.Activity{
		{ID: "b", Date: same},
		{ID: "a", Date: same},
	})
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
}

func TestSharedFeedFlagsOtherUsersItems(t *testing.T) {
	session := model.Session{UID: "me"}
	got := SharedFeed([]model.Activity{
		{ID: "mine", OwnerUserID: "me"},
		{ID: "theirs", OwnerUserID: "partner"},
	}, session)

	assert.False(t, got[0].CanToggleFavorite)
	assert.True(t, got[1].CanToggleFavorite)
	assert.Equal(t, "mine", got[0].ID, "feed keeps snapshot order")
}

func TestMilestonesMatchesTimeline(t *testing.T) {
	in := fixture()
	assert.Equal(t, Timeline(in), Milestones(in))
}
