package main

import (
	"fmt"
	"io"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/starlove/together/internal/model"
	"github.com/starlove/together/internal/services"
)

func newClient(base, key string) *resty.Client {
	return resty.New().
		SetBaseURL(base).
		SetAuthToken(key).
		SetTimeout(15 * time.Second)
}

type activityList struct {
	Activities []model.Activity `json:"activities"`
	Count      int              `json:"count"`
}

type noteList struct {
	Notes []model.Note `json:"notes"`
	Count int          `json:"count"`
}

type themeState struct {
	Theme  model.Theme `json:"theme"`
	IsDark bool        `json:"isDark"`
}

func runListActivities(base, key string, out io.Writer) error {
	var list activityList
	resp, err := newClient(base, key).R().SetResult(&list).Get("/api/activities")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("service returned %s: %s", resp.Status(), resp.String())
	}
	printActivities(out, list.Activities)
	return nil
}

func runUpcoming(base, key string, out io.Writer) error {
	var list activityList
	resp, err := newClient(base, key).R().SetResult(&list).Get("/api/activities/upcoming")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("service returned %s: %s", resp.Status(), resp.String())
	}
	printActivities(out, list.Activities)
	return nil
}

func runAddActivity(base, key, title, date, typ, location string, out io.Writer) error {
	when, err := time.Parse(time.RFC3339, date)
	if err != nil {
		return fmt.Errorf("invalid --date, expected RFC3339: %w", err)
	}
	req := services.CreateActivityRequest{
		Title:    title,
		Date:     when,
		Type:     model.ActivityType(typ),
		Location: location,
	}
	resp, err := newClient(base, key).R().SetBody(req).Post("/api/activities")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("service returned %s: %s", resp.Status(), resp.String())
	}
	fmt.Fprintln(out, "activity submitted")
	return nil
}

func runListNotes(base, key string, out io.Writer) error {
	var list noteList
	resp, err := newClient(base, key).R().SetResult(&list).Get("/api/notes")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("service returned %s: %s", resp.Status(), resp.String())
	}
	for _, n := range list.Notes {
		fmt.Fprintf(out, "%s  [%s]  %s\n", n.CreatedAt.Format("2006-01-02 15:04"), n.OwnerEmail, n.Content)
	}
	return nil
}

func runTheme(base, key string, toggle bool, out io.Writer) error {
	client := newClient(base, key)
	var state themeState
	var resp *resty.Response
	var err error
	if toggle {
		resp, err = client.R().SetResult(&state).Post("/api/theme/toggle")
	} else {
		resp, err = client.R().SetResult(&state).Get("/api/theme")
	}
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("service returned %s: %s", resp.Status(), resp.String())
	}
	fmt.Fprintf(out, "theme: %s (dark: %v)\n", state.Theme, state.IsDark)
	return nil
}

func printActivities(out io.Writer, activities []model.Activity) {
	for _, a := range activities {
		fav := " "
		if a.IsFavorite {
			fav = "*"
		}
		fmt.Fprintf(out, "%s %s  %-8s  %s", fav, a.Date.Format("2006-01-02 15:04"), a.Type, a.Title)
		if a.Location != "" {
			fmt.Fprintf(out, " @ %s", a.Location)
		}
		fmt.Fprintln(out)
	}
}
