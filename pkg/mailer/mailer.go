package mailer

import (
	"fmt"
	"log"
	"sync"
)

// Message is a single outbound notification. Either Text or HTML carries the
// body; both may be set.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Transport delivers a single message. Implementations block until the
// message is handed to the underlying service.
type Transport interface {
	Send(msg Message) error
}

// Sender accepts messages for asynchronous delivery.
type Sender interface {
	Enqueue(msg Message)
}

// Mailer dispatches messages through a Transport from a bounded queue drained
// by a single worker goroutine. Enqueue never blocks the caller: a full queue
// drops the message with a log line, and each delivery's outcome is logged by
// the worker. Nothing is retried.
type Mailer struct {
	transport Transport
	queue     chan Message
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// New creates a Mailer draining a queue of the given size and starts its
// worker. queueSize must be positive.
func New(transport Transport, queueSize int) (*Mailer, error) {
	if transport == nil {
		return nil, fmt.Errorf("mailer: transport is required")
	}
	if queueSize <= 0 {
		return nil, fmt.Errorf("mailer: queue size must be positive, got %d", queueSize)
	}

	m := &Mailer{
		transport: transport,
		queue:     make(chan Message, queueSize),
	}
	m.wg.Add(1)
	go m.worker()
	return m, nil
}

// Enqueue hands a message to the worker without blocking. When the queue is
// full the message is dropped and logged.
func (m *Mailer) Enqueue(msg Message) {
	select {
	case m.queue <- msg:
	default:
		log.Printf("mailer: queue full, dropping message to %s (subject: %s)", msg.To, msg.Subject)
	}
}

// Close stops accepting messages, waits for the queued ones to be delivered,
// and stops the worker. Safe to call more than once.
func (m *Mailer) Close() {
	m.closeOnce.Do(func() {
		close(m.queue)
		m.wg.Wait()
	})
}

func (m *Mailer) worker() {
	defer m.wg.Done()
	for msg := range m.queue {
		if err := m.transport.Send(msg); err != nil {
			log.Printf("mailer: failed to send message to %s: %v", msg.To, err)
			continue
		}
		log.Printf("mailer: sent message to %s (subject: %s)", msg.To, msg.Subject)
	}
}
