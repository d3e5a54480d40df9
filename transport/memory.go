package transport

import (
	"context"
	"sync"

	mail "github.com/wneessen/go-mail"
)

// Memory is a Transport that records deliveries in memory instead of
// dispatching them. It is useful for tests and for dry-run wiring.
type Memory struct {
	// FailHosts maps a host name to the error its delivery attempts return.
	// Hosts not present always succeed.
	FailHosts map[string]error

	mu         sync.Mutex
	attempts   []Delivery
	deliveries []Recorded
}

// Recorded is one successfully "delivered" message.
type Recorded struct {
	Delivery Delivery
	Message  *mail.Msg
}

// NewMemory creates an empty in-memory transport.
func NewMemory() *Memory {
	return &Memory{}
}

// Deliver records the attempt and succeeds unless the endpoint's host is
// listed in FailHosts.
func (t *Memory) Deliver(_ context.Context, d Delivery, msg *mail.Msg) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.attempts = append(t.attempts, d)
	if err, ok := t.FailHosts[d.Endpoint.Host]; ok {
		return err
	}
	t.deliveries = append(t.deliveries, Recorded{Delivery: d, Message: msg})
	return nil
}

// Name returns the backend name.
func (t *Memory) Name() string {
	return "memory"
}

// Attempts returns every delivery attempt seen, successful or not, in order.
func (t *Memory) Attempts() []Delivery {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Delivery(nil), t.attempts...)
}

// Deliveries returns the successfully delivered messages in order.
func (t *Memory) Deliveries() []Recorded {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Recorded(nil), t.deliveries...)
}
