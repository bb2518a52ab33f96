// Package reminder implements the activity e-mail reminder: one pass over
// today's activities, one templated mail per match through the mail relay.
// There is no job state, no idempotency key and no retry; a failed send is
// logged and skipped.
package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/starlove/together/internal/docstore"
	"github.com/starlove/together/internal/model"
	"github.com/starlove/together/internal/services"
)

// snapshotTimeout bounds how long we wait for the store to deliver the
// current activity set.
const snapshotTimeout = 30 * time.Second

type Reminder struct {
	store    docstore.Store
	relayURL string
	from     string
	loc      *time.Location
	client   *resty.Client
	log      zerolog.Logger
}

func New(store docstore.Store, relayURL, from string, loc *time.Location, log zerolog.Logger) *Reminder {
	return &Reminder{
		store:    store,
		relayURL: relayURL,
		from:     from,
		loc:      loc,
		client:   resty.New().SetTimeout(15 * time.Second),
		log:      log,
	}
}

type mailRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// Run sends one reminder per activity scheduled within [today 00:00,
// tomorrow 00:00) in the configured location. It returns how many mails
// were sent.
func (r *Reminder) Run(ctx context.Context, now time.Time) (int, error) {
	activities, err := r.todaysActivities(ctx, now)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, a := range activities {
		if err := r.send(ctx, a); err != nil {
			r.log.Error().Err(err).Str("activity", a.ID).Str("to", a.OwnerEmail).Msg("reminder send failed")
			continue
		}
		sent++
		r.log.Info().Str("activity", a.ID).Str("to", a.OwnerEmail).Msg("reminder sent")
	}
	return sent, nil
}

// todaysActivities takes a single snapshot of the activities collection and
// filters it to today's window.
func (r *Reminder) todaysActivities(ctx context.Context, now time.Time) ([]model.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, snapshotTimeout)
	defer cancel()

	sub, err := r.store.Watch(ctx, services.CollectionActivities,
		docstore.OrderBy{Field: model.FieldDate, Direction: docstore.Asc})
	if err != nil {
		return nil, err
	}
	defer sub.Stop()

	var docs []docstore.Document
	select {
	case docs = <-sub.Updates():
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for activity snapshot: %w", ctx.Err())
	}

	local := now.In(r.loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, r.loc)
	end := start.AddDate(0, 0, 1)

	var out []model.Activity
	for _, d := range docs {
		a, err := model.ActivityFromFields(d.ID, d.Fields)
		if err != nil {
			r.log.Warn().Err(err).Str("doc", d.ID).Msg("skipping undecodable activity")
			continue
		}
		if !a.Date.Before(start) && a.Date.Before(end) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *Reminder) send(ctx context.Context, a model.Activity) error {
	body := fmt.Sprintf("<h2>Activity Reminder</h2>"+
		"<p>Don't forget your activity scheduled for today:</p>"+
		"<h3>%s</h3>"+
		"<p><strong>Date:</strong> %s</p>", a.Title, a.Date.In(r.loc).Format("Monday, January 2 at 15:04"))
	if a.Location != "" {
		body += fmt.Sprintf("<p><strong>Location:</strong> %s</p>", a.Location)
	}
	body += fmt.Sprintf("<p><strong>Type:</strong> %s</p>", a.Type)

	resp, err := r.client.R().
		SetContext(ctx).
		SetBody(mailRequest{
			From:    r.from,
			To:      a.OwnerEmail,
			Subject: fmt.Sprintf("Reminder: %s", a.Title),
			HTML:    body,
		}).
		Post(r.relayURL)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("mail relay returned %s", resp.Status())
	}
	return nil
}
