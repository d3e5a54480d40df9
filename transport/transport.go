// Package transport defines the interface for mail delivery backends and
// the relay endpoint model used by the mailer's host-fallback loop.
package transport

import (
	"context"
	"fmt"
	"time"

	mail "github.com/wneessen/go-mail"
)

// DefaultPort is the standard SMTP submission port used when a host entry
// carries no explicit port.
const DefaultPort = 25

// Endpoint identifies a single mail relay.
type Endpoint struct {
	Host string
	Port int
}

// String returns the endpoint in host:port form.
func (e Endpoint) String() string {
	return fmt.Sprintf("%s:%d", e.Host, e.Port)
}

// Delivery describes a single delivery attempt against one endpoint.
type Delivery struct {
	// Endpoint is the relay to attempt.
	Endpoint Endpoint

	// Timeout bounds the connection and transfer for this attempt only.
	// Zero means the backend's own default.
	Timeout time.Duration

	// RequestDSN asks the backend to request delivery status notifications
	// (success, failure and delay) from the receiving server.
	RequestDSN bool
}

// Transport is the interface that mail delivery backends must implement.
// Each backend performs exactly one delivery attempt per Deliver call;
// retry and fallback policy belong to the caller.
type Transport interface {
	// Deliver attempts to hand the composed message to the given endpoint.
	// It returns an error if the attempt fails.
	Deliver(ctx context.Context, d Delivery, msg *mail.Msg) error

	// Name returns the human-readable name of this backend.
	Name() string
}
