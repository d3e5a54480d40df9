package aspmailer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/legacyline/aspmailer/transport"
)

// SendMail composes a message from the current state and attempts delivery
// against each configured host in order until one succeeds or all fail. It
// blocks until the outcome is known. On failure the error description is
// available through Response; nothing is raised across this boundary.
func (m *Mailer) SendMail() bool {
	return m.SendMailContext(context.Background())
}

// SendMailContext is SendMail with a caller-supplied context applied to each
// delivery attempt.
func (m *Mailer) SendMailContext(ctx context.Context) bool {
	m.response = ""
	m.spawnPGPHelper()

	msg, err := m.compose()
	if err != nil {
		m.response = err.Error()
		slog.Debug("message composition failed", "error", err)
		m.logLine("composition failed: " + err.Error())
		return false
	}
	m.logComposed()

	endpoints, err := transport.ParseHostSpec(m.RemoteHost)
	if err != nil {
		m.response = err.Error()
		m.logLine("host list rejected: " + err.Error())
		return false
	}

	if !m.Live {
		slog.Debug("live flag disabled, skipping dispatch", "subject", m.Subject)
		m.logLine("not live, message composed but not dispatched")
		return true
	}

	timeout := time.Duration(m.TimeoutSeconds) * time.Second
	for _, ep := range endpoints {
		d := transport.Delivery{
			Endpoint:   ep,
			Timeout:    timeout,
			RequestDSN: m.ReturnReceipt,
		}

		err := m.Transport.Deliver(ctx, d, msg)
		if err == nil {
			m.response = ""
			slog.Debug("message delivered",
				"transport", m.Transport.Name(),
				"host", ep.Host,
				"port", ep.Port,
			)
			m.logLine(fmt.Sprintf("delivered via %s", ep))
			return true
		}

		m.response = err.Error()
		slog.Debug("delivery attempt failed",
			"transport", m.Transport.Name(),
			"host", ep.Host,
			"port", ep.Port,
			"error", err,
		)
		m.logLine(fmt.Sprintf("attempt via %s failed: %v", ep, err))
	}

	m.logLine("all hosts exhausted")
	return false
}

// spawnPGPHelper launches the optional external encryption helper
// fire-and-forget. Its outcome is never awaited or inspected; a spawn
// failure is logged and does not abort the send.
func (m *Mailer) spawnPGPHelper() {
	if m.PGPPath == "" {
		return
	}

	cmd := exec.Command(m.PGPPath, strings.Fields(m.PGPArgs)...)
	if err := cmd.Start(); err != nil {
		slog.Warn("failed to start pgp helper", "path", m.PGPPath, "error", err)
		return
	}
	go func() {
		_ = cmd.Wait()
	}()
}

// logComposed writes a composition summary to the send log. The body is
// included unless SuppressMsgBody is set.
func (m *Mailer) logComposed() {
	if m.LogFile == "" {
		return
	}
	m.logLine(fmt.Sprintf("composed message from=%q to=%d cc=%d bcc=%d subject=%q",
		m.FromAddress, len(m.to), len(m.cc), len(m.bcc), m.Subject))
	if !m.SuppressMsgBody {
		m.logLine("body: " + m.BodyText)
	}
}

// logLine appends one timestamped line to the configured send log file.
// Logging failures are reported through slog and never affect the send.
func (m *Mailer) logLine(line string) {
	if m.LogFile == "" {
		return
	}

	f, err := os.OpenFile(m.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		slog.Warn("failed to open send log", "path", m.LogFile, "error", err)
		return
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%s %s\n", time.Now().Format("2006-01-02 15:04:05"), line); err != nil {
		slog.Warn("failed to write send log", "path", m.LogFile, "error", err)
	}
}
