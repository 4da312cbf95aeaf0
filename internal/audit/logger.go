package audit

import (
	"encoding/json"
	"io"
	"log"
	"time"
)

type Logger struct {
	out *log.Logger
}

func New(w io.Writer) *Logger {
	return &Logger{out: log.New(w, "audit ", log.LstdFlags)}
}

type entry struct {
	At       time.Time `json:"at"`
	Action   string    `json:"action"`
	Entity   string    `json:"entity"`
	EntityID string    `json:"entity_id,omitempty"`
	Metadata any       `json:"metadata,omitempty"`
}

func (l *Logger) Log(
	action string,
	entity string,
	entityID string,
	metadata any,
) error {

	b, err := json.Marshal(entry{
		At:       time.Now().UTC(),
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Metadata: metadata,
	})
	if err != nil {
		return err
	}

	l.out.Println(string(b))
	return nil
}
