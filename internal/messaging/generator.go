package messaging

import (
	"context"
	"fmt"
	"time"

	"github.com/BruksfildServices01/braids-scheduler/internal/timezone"
)

//go:generate mockgen -source=generator.go -destination=mocks/mock_generator.go -package=mock_messaging

// Generator writes the texts sent to clients. Implementations may call an
// external service and fail; callers go through Resilient.
type Generator interface {
	ConfirmationMessage(ctx context.Context, clientName, date, time string) (string, error)
	RetentionMessage(ctx context.Context, clientName string, lastSession *string) (string, error)
}

// Template produces the fixed texts. It never fails.
type Template struct {
	SalonName string
}

func (t Template) ConfirmationMessage(_ context.Context, clientName, date, hour string) (string, error) {
	return fmt.Sprintf(
		"Olá %s, seu horário com %s está confirmado para %s às %s. Mal posso esperar para transformar seu visual! ✨",
		clientName, t.SalonName, DisplayDate(date), hour,
	), nil
}

func (t Template) RetentionMessage(_ context.Context, clientName string, _ *string) (string, error) {
	return fmt.Sprintf(
		"Olá %s, como estão suas tranças? Notei que já faz um tempinho que não cuidamos do seu visual. Que tal agendarmos uma renovação? Abraços, %s. ✨",
		clientName, t.SalonName,
	), nil
}

// DisplayDate renders YYYY-MM-DD as DD/MM/YYYY; anything else is returned as is.
func DisplayDate(date string) string {
	d, err := time.Parse(timezone.DateLayout, date)
	if err != nil {
		return date
	}
	return d.Format("02/01/2006")
}
