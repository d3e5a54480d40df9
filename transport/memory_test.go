package transport

import (
	"context"
	"errors"
	"testing"

	mail "github.com/wneessen/go-mail"
)

func TestMemoryRecordsDeliveries(t *testing.T) {
	t.Parallel()

	tr := NewMemory()
	msg := mail.NewMsg()
	msg.Subject("hello")

	d := Delivery{Endpoint: Endpoint{Host: "relay.example.com", Port: 25}}
	if err := tr.Deliver(context.Background(), d, msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	deliveries := tr.Deliveries()
	if len(deliveries) != 1 {
		t.Fatalf("deliveries: got %d, want 1", len(deliveries))
	}
	if deliveries[0].Delivery.Endpoint.Host != "relay.example.com" {
		t.Errorf("host: got %q, want %q", deliveries[0].Delivery.Endpoint.Host, "relay.example.com")
	}
	if got := deliveries[0].Message.GetGenHeader(mail.HeaderSubject); len(got) != 1 || got[0] != "hello" {
		t.Errorf("subject header: got %v, want [hello]", got)
	}
}

func TestMemoryScriptedFailure(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("connection refused")
	tr := NewMemory()
	tr.FailHosts = map[string]error{"down.example.com": wantErr}

	err := tr.Deliver(context.Background(), Delivery{Endpoint: Endpoint{Host: "down.example.com", Port: 25}}, mail.NewMsg())
	if !errors.Is(err, wantErr) {
		t.Fatalf("error: got %v, want %v", err, wantErr)
	}

	if got := len(tr.Deliveries()); got != 0 {
		t.Errorf("deliveries after failure: got %d, want 0", got)
	}
	if got := len(tr.Attempts()); got != 1 {
		t.Errorf("attempts after failure: got %d, want 1", got)
	}
}
