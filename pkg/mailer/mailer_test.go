package mailer_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"cuahang/pkg/mailer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingTransport captures every message it is asked to send. An optional
// gate blocks deliveries until released, and err makes every send fail.
type recordingTransport struct {
	mu   sync.Mutex
	sent []mailer.Message
	gate chan struct{}
	err  error
}

func (t *recordingTransport) Send(msg mailer.Message) error {
	if t.gate != nil {
		<-t.gate
	}
	if t.err != nil {
		return t.err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sent = append(t.sent, msg)
	return nil
}

func (t *recordingTransport) messages() []mailer.Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]mailer.Message, len(t.sent))
	copy(out, t.sent)
	return out
}

func TestMailer_DeliversEnqueuedMessages(t *testing.T) {
	transport := &recordingTransport{}
	m, err := mailer.New(transport, 8)
	require.NoError(t, err)

	m.Enqueue(mailer.Message{To: "an@example.com", Subject: "Order confirmation", Text: "hello"})
	m.Enqueue(mailer.Message{To: "binh@example.com", Subject: "Order confirmation", Text: "hi"})
	m.Close() // drains the queue before returning

	sent := transport.messages()
	require.Len(t, sent, 2)
	assert.Equal(t, "an@example.com", sent[0].To)
	assert.Equal(t, "binh@example.com", sent[1].To)
}

func TestMailer_SendFailureDoesNotStopWorker(t *testing.T) {
	transport := &recordingTransport{err: fmt.Errorf("smtp unreachable")}
	m, err := mailer.New(transport, 8)
	require.NoError(t, err)

	m.Enqueue(mailer.Message{To: "an@example.com", Subject: "x"})
	m.Close()

	// The failure is logged, not propagated; Close still returns. A second
	// Close is a no-op.
	m.Close()
	assert.Empty(t, transport.messages())
}

func TestMailer_FullQueueDropsWithoutBlocking(t *testing.T) {
	gate := make(chan struct{})
	transport := &recordingTransport{gate: gate}
	m, err := mailer.New(transport, 1)
	require.NoError(t, err)

	// First message occupies the worker (blocked on the gate), second fills
	// the queue, third must be dropped rather than block the caller.
	m.Enqueue(mailer.Message{To: "1@example.com"})
	time.Sleep(10 * time.Millisecond) // let the worker pick up the first
	m.Enqueue(mailer.Message{To: "2@example.com"})

	done := make(chan struct{})
	go func() {
		m.Enqueue(mailer.Message{To: "3@example.com"})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked on a full queue")
	}

	close(gate)
	m.Close()

	sent := transport.messages()
	require.Len(t, sent, 2)
	assert.Equal(t, "1@example.com", sent[0].To)
	assert.Equal(t, "2@example.com", sent[1].To)
}

func TestMailer_RejectsBadConfiguration(t *testing.T) {
	_, err := mailer.New(nil, 8)
	assert.Error(t, err)

	_, err = mailer.New(&recordingTransport{}, 0)
	assert.Error(t, err)
}
