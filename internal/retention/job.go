package retention

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/BruksfildServices01/braids-scheduler/internal/messaging"
	"github.com/BruksfildServices01/braids-scheduler/internal/models"
	"github.com/BruksfildServices01/braids-scheduler/internal/state"
	"github.com/BruksfildServices01/braids-scheduler/internal/timezone"
)

type Repository interface {
	View(ctx context.Context, fn func(st *state.State) error) error
	Update(ctx context.Context, fn func(st *state.State) error) error
}

type Nudge struct {
	ClientID        string  `json:"clientId"`
	ClientName      string  `json:"clientName"`
	Phone           string  `json:"phone"`
	LastSessionDate *string `json:"lastSessionDate,omitempty"`
	Message         string  `json:"message"`
	Queued          bool    `json:"queued"`
}

// Job reminds active clients who have not been back for a while.
type Job struct {
	store    Repository
	messages *messaging.Resilient
	outbox   *messaging.Outbox
	clock    timezone.Clock
	days     int
}

func NewJob(
	store Repository,
	messages *messaging.Resilient,
	outbox *messaging.Outbox,
	clock timezone.Clock,
	days int,
) *Job {
	return &Job{
		store:    store,
		messages: messages,
		outbox:   outbox,
		clock:    clock,
		days:     days,
	}
}

// Due lists active clients whose last session is at least days old and who
// were not nudged since that session. Clients without a recorded session
// are skipped.
func Due(clients []models.Client, today string, days int) []models.Client {
	ref, err := time.Parse(timezone.DateLayout, today)
	if err != nil {
		return nil
	}
	cutoff := ref.AddDate(0, 0, -days).Format(timezone.DateLayout)

	var out []models.Client
	for _, c := range clients {
		if c.Status != models.ClientActive || c.LastSessionDate == nil {
			continue
		}
		if *c.LastSessionDate == "" || *c.LastSessionDate > cutoff {
			continue
		}
		if c.LastNudgedDate != nil && *c.LastNudgedDate >= *c.LastSessionDate {
			continue
		}
		out = append(out, c)
	}
	return out
}

// RunOnce generates and queues one nudge per due client, then stamps the
// queued clients with today's date so the next runs leave them alone.
func (j *Job) RunOnce(ctx context.Context) ([]Nudge, error) {
	today := timezone.Today(j.clock)

	var due []models.Client
	err := j.store.View(ctx, func(st *state.State) error {
		due = Due(st.Clients, today, j.days)
		return nil
	})
	if err != nil {
		return nil, err
	}

	nudges := make([]Nudge, 0, len(due))
	var queuedIDs []string
	for _, c := range due {
		msg := j.messages.Retention(ctx, c.Name, c.LastSessionDate)
		queued := j.outbox.Enqueue(messaging.Message{
			Kind: "retention",
			To:   c.Phone,
			Body: msg,
		})
		if queued {
			queuedIDs = append(queuedIDs, c.ID)
		}

		nudges = append(nudges, Nudge{
			ClientID:        c.ID,
			ClientName:      c.Name,
			Phone:           c.Phone,
			LastSessionDate: c.LastSessionDate,
			Message:         msg,
			Queued:          queued,
		})
	}

	log.Printf("retention: %d client(s) due, %d queued, cutoff %d days", len(nudges), len(queuedIDs), j.days)

	if len(queuedIDs) == 0 {
		return nudges, nil
	}

	err = j.store.Update(ctx, func(st *state.State) error {
		for _, id := range queuedIDs {
			if c := st.Client(id); c != nil {
				d := today
				c.LastNudgedDate = &d
			}
		}
		return nil
	})
	if err != nil {
		return nudges, err
	}

	return nudges, nil
}

// Schedule registers RunOnce on the cron expression, evaluated in the clock's zone.
func (j *Job) Schedule(expr string, loc *time.Location) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(loc))

	_, err := c.AddFunc(expr, func() {
		if _, err := j.RunOnce(context.Background()); err != nil {
			log.Printf("retention run failed: %v", err)
		}
	})
	if err != nil {
		return nil, err
	}

	return c, nil
}
