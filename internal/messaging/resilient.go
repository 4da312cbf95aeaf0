package messaging

import (
	"context"
	"log"
	"strings"
	"time"
)

// Resilient bounds a Generator by timeout and substitutes the template text
// when it fails or answers nothing. Its methods never return an error.
type Resilient struct {
	primary  Generator
	fallback Template
	timeout  time.Duration
}

// NewResilient accepts a nil primary, in which case only the template is used.
func NewResilient(primary Generator, fallback Template, timeout time.Duration) *Resilient {
	return &Resilient{
		primary:  primary,
		fallback: fallback,
		timeout:  timeout,
	}
}

func (r *Resilient) Confirmation(ctx context.Context, clientName, date, hour string) string {
	if r.primary != nil {
		ctx, cancel := r.bound(ctx)
		defer cancel()

		msg, err := r.primary.ConfirmationMessage(ctx, clientName, date, hour)
		if ok(msg, err, "confirmation") {
			return msg
		}
	}

	msg, _ := r.fallback.ConfirmationMessage(ctx, clientName, date, hour)
	return msg
}

func (r *Resilient) Retention(ctx context.Context, clientName string, lastSession *string) string {
	if r.primary != nil {
		ctx, cancel := r.bound(ctx)
		defer cancel()

		msg, err := r.primary.RetentionMessage(ctx, clientName, lastSession)
		if ok(msg, err, "retention") {
			return msg
		}
	}

	msg, _ := r.fallback.RetentionMessage(ctx, clientName, lastSession)
	return msg
}

func (r *Resilient) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

func ok(msg string, err error, kind string) bool {
	if err != nil {
		log.Printf("messaging: %s generation failed, using template: %v", kind, err)
		return false
	}
	return strings.TrimSpace(msg) != ""
}
