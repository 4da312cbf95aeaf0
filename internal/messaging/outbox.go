package messaging

import (
	"context"
	"log"
	"sync"
	"time"
)

type Message struct {
	Kind string
	To   string
	Body string
}

// Outbox delivers messages on a background worker so senders never wait on
// the notifier.
type Outbox struct {
	notifier Notifier
	timeout  time.Duration
	queue    chan Message

	closeOnce sync.Once
	done      chan struct{}
}

func NewOutbox(notifier Notifier, size int, timeout time.Duration) *Outbox {
	o := &Outbox{
		notifier: notifier,
		timeout:  timeout,
		queue:    make(chan Message, size),
		done:     make(chan struct{}),
	}

	go o.worker()
	return o
}

func (o *Outbox) worker() {
	defer close(o.done)

	for msg := range o.queue {
		ctx, cancel := context.WithTimeout(context.Background(), o.timeout)
		if err := o.notifier.Send(ctx, msg.To, msg.Body); err != nil {
			log.Printf("outbox: %s to %s failed: %v", msg.Kind, msg.To, err)
		}
		cancel()
	}
}

// Enqueue reports whether the message was accepted. Messages without a
// recipient and messages arriving on a full queue are dropped.
func (o *Outbox) Enqueue(msg Message) bool {
	if o == nil || msg.To == "" {
		return false
	}

	select {
	case o.queue <- msg:
		return true
	default:
		log.Printf("outbox full, dropping %s to %s", msg.Kind, msg.To)
		return false
	}
}

// Close delivers what is queued and stops the worker.
func (o *Outbox) Close() {
	o.closeOnce.Do(func() {
		close(o.queue)
	})
	<-o.done
}
