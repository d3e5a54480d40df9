package transport

import (
	"context"
	"crypto/tls"
	"fmt"

	mail "github.com/wneessen/go-mail"
)

// SMTP delivers messages over SMTP using a go-mail client. A fresh client is
// built for every attempt so each endpoint gets its own connection settings.
//
// TLS is opportunistic: STARTTLS is used when the relay offers it and the
// connection stays plain otherwise, matching the behavior of the legacy
// component this package replaces.
type SMTP struct {
	// Username and Password enable SMTP AUTH (PLAIN) when both are set.
	Username string
	Password string

	// TLSConfig overrides the client TLS configuration. When nil and
	// InsecureSkipVerify is set, a config skipping certificate verification
	// is used instead.
	TLSConfig          *tls.Config
	InsecureSkipVerify bool

	// HELO overrides the hostname sent in the HELO/EHLO greeting.
	HELO string
}

// Deliver performs a single delivery attempt against the given endpoint.
func (t *SMTP) Deliver(ctx context.Context, d Delivery, msg *mail.Msg) error {
	opts := []mail.Option{
		mail.WithPort(d.Endpoint.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if d.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(d.Timeout))
	}
	if t.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(t.Username),
			mail.WithPassword(t.Password),
		)
	}
	tlsConfig := t.TLSConfig
	if tlsConfig == nil && t.InsecureSkipVerify {
		tlsConfig = &tls.Config{InsecureSkipVerify: true}
	}
	if tlsConfig != nil {
		opts = append(opts, mail.WithTLSConfig(tlsConfig))
	}
	if t.HELO != "" {
		opts = append(opts, mail.WithHELO(t.HELO))
	}
	if d.RequestDSN {
		opts = append(opts,
			mail.WithDSNMailReturnType(mail.DSNMailReturnFull),
			mail.WithDSNRcptNotifyType(
				mail.DSNRcptNotifySuccess,
				mail.DSNRcptNotifyFailure,
				mail.DSNRcptNotifyDelay,
			),
		)
	}

	client, err := mail.NewClient(d.Endpoint.Host, opts...)
	if err != nil {
		return fmt.Errorf("failed to configure SMTP client for %s: %w", d.Endpoint, err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to deliver via %s: %w", d.Endpoint, err)
	}
	return nil
}

// Name returns the backend name.
func (t *SMTP) Name() string {
	return "smtp"
}
