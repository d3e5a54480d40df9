// Package aspmailer exposes the legacy ASPMail-style property-bag mail
// interface on top of a modern SMTP transport. Callers configure a Mailer
// through its fields and collection operations, then invoke SendMail, which
// composes one message and tries each configured relay host in order until
// one accepts it.
package aspmailer

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/legacyline/aspmailer/transport"
)

// version is the read-only component version reported by Version.
const version = "1.0.0"

// Legal priority codes. Any other value is rejected by SetPriority.
const (
	PriorityHigh   = 1
	PriorityNormal = 3
	PriorityLow    = 5
)

// ErrInvalidPriority is returned by SetPriority for codes outside {1, 3, 5}.
var ErrInvalidPriority = errors.New("priority must be 1 (high), 3 (normal) or 5 (low)")

// addressEntry is one recipient: a display name and an address string.
type addressEntry struct {
	name    string
	address string
}

// Mailer holds the configuration and collections for one outbound message.
// Fields may be set freely between sends; nothing is reset by SendMail, so
// collections persist across repeated sends unless explicitly cleared.
//
// A Mailer is not safe for concurrent use. Collection mutation is not atomic
// with respect to a concurrent send snapshotting the same state; share one
// instance across goroutines only with external synchronization.
type Mailer struct {
	// FromName and FromAddress identify the sender. Both the From and the
	// envelope sender are built from this pair; a missing or malformed
	// address fails the send before any host is attempted.
	FromName    string
	FromAddress string

	// Subject is copied onto the message verbatim.
	Subject string

	// BodyText is the message body. ContentType selects rich text when it
	// equals exactly "text/html"; any other value means plain text.
	BodyText    string
	ContentType string

	// CharSet selects the body character set: 1 for US-ASCII, 2 for
	// ISO-8859-1. CustomCharSet, when set, overrides the code with a
	// character set name used as-is.
	CharSet       int
	CustomCharSet string

	// RemoteHost is the semicolon-delimited relay list, e.g.
	// "a.example.com;b.example.com:2525". Parsed at send time.
	RemoteHost string

	// ReplyTo, when set, is parsed as an address and added to the message.
	ReplyTo string

	// TimeoutSeconds bounds each per-host delivery attempt.
	TimeoutSeconds int

	// Organization is injected verbatim as the Organization header.
	Organization string

	// DateString, when set, is injected verbatim as the Date header instead
	// of letting the transport stamp the current time.
	DateString string

	// ConfirmRead requests a read receipt (Disposition-Notification-To
	// addressed to the sender).
	ConfirmRead bool

	// ReturnReceipt requests delivery status notifications on success,
	// failure and delay.
	ReturnReceipt bool

	// IgnoreMalformedAddress disables the "@" check on recipient adds.
	IgnoreMalformedAddress bool

	// IgnoreRecipientErrors tolerates individual recipients the transport
	// library rejects during composition instead of failing the send.
	IgnoreRecipientErrors bool

	// Live controls dispatch. When false the message is composed and logged
	// but never handed to the transport.
	Live bool

	// Urgent forces high priority regardless of the priority code.
	Urgent bool

	// UseMSMailHeaders is accepted for legacy compatibility. The transport
	// library emits X-MSMail-Priority together with X-Priority whenever a
	// non-normal priority is set, so the header set already covers it.
	UseMSMailHeaders bool

	// SuppressMsgBody omits the body from the send log file.
	SuppressMsgBody bool

	// WordWrap wraps plain-text bodies at WordWrapLen columns.
	WordWrap    bool
	WordWrapLen int

	// PGPPath and PGPArgs configure an optional external encryption helper
	// spawned fire-and-forget before composition.
	PGPPath string
	PGPArgs string

	// LogFile, when set, receives a plain-text line per send attempt.
	LogFile string

	// Transport performs the per-host delivery attempts. Defaults to the
	// SMTP backend.
	Transport transport.Transport

	priority     int
	to           []addressEntry
	cc           []addressEntry
	bcc          []addressEntry
	attachments  []string
	extraHeaders []string
	response     string
}

// New creates a Mailer with the legacy defaults: best-effort unauthenticated
// sending, normal priority, 30 second timeout, 70 column word wrap and
// US-ASCII body text.
func New() *Mailer {
	return &Mailer{
		CharSet:               1,
		TimeoutSeconds:        30,
		WordWrapLen:           70,
		IgnoreRecipientErrors: true,
		Live:                  true,
		priority:              PriorityNormal,
		Transport:             &transport.SMTP{},
	}
}

// Version returns the read-only component version string.
func (m *Mailer) Version() string {
	return fmt.Sprintf("aspmailer %s", version)
}

// Response returns the human-readable status of the last operation. It holds
// the most recent error description after a failure and is empty after a
// successful send.
func (m *Mailer) Response() string {
	return m.response
}

// SetPriority sets the message priority code. Only 1 (high), 3 (normal) and
// 5 (low) are legal; any other value returns ErrInvalidPriority and leaves
// the stored priority unchanged.
func (m *Mailer) SetPriority(p int) error {
	switch p {
	case PriorityHigh, PriorityNormal, PriorityLow:
		m.priority = p
		return nil
	default:
		return fmt.Errorf("%w: got %d", ErrInvalidPriority, p)
	}
}

// Priority returns the current priority code.
func (m *Mailer) Priority() int {
	return m.priority
}

// AddRecipient appends a To recipient. It returns false without mutating the
// collection when the address is empty, or when it lacks an "@" and
// IgnoreMalformedAddress is not set.
func (m *Mailer) AddRecipient(name, address string) bool {
	return m.addAddress(&m.to, name, address)
}

// AddCC appends a Cc recipient under the same validation as AddRecipient.
func (m *Mailer) AddCC(name, address string) bool {
	return m.addAddress(&m.cc, name, address)
}

// AddBCC appends a Bcc recipient under the same validation as AddRecipient.
func (m *Mailer) AddBCC(name, address string) bool {
	return m.addAddress(&m.bcc, name, address)
}

func (m *Mailer) addAddress(list *[]addressEntry, name, address string) bool {
	if address == "" {
		return false
	}
	if !m.IgnoreMalformedAddress && !strings.Contains(address, "@") {
		return false
	}
	*list = append(*list, addressEntry{name: name, address: address})
	return true
}

// ClearRecipients empties the To collection.
func (m *Mailer) ClearRecipients() {
	m.to = nil
}

// ClearCCs empties the Cc collection.
func (m *Mailer) ClearCCs() {
	m.cc = nil
}

// ClearBCCs empties the Bcc collection.
func (m *Mailer) ClearBCCs() {
	m.bcc = nil
}

// ClearAllRecipients empties the To, Cc and Bcc collections.
func (m *Mailer) ClearAllRecipients() {
	m.ClearRecipients()
	m.ClearCCs()
	m.ClearBCCs()
}

// AddAttachment appends a file path to the attachment list. The path is not
// validated here; an unreadable file fails the send at composition time.
func (m *Mailer) AddAttachment(path string) {
	m.attachments = append(m.attachments, path)
}

// ClearAttachments empties the attachment list.
func (m *Mailer) ClearAttachments() {
	m.attachments = nil
}

// AddExtraHeader appends a raw "Name: Value" header line. The line is only
// validated at send time; a line without a ": " separator fails composition.
// The return value is always true, matching the legacy surface.
func (m *Mailer) AddExtraHeader(line string) bool {
	m.extraHeaders = append(m.extraHeaders, line)
	return true
}

// ClearExtraHeaders empties the extra header list.
func (m *Mailer) ClearExtraHeaders() {
	m.extraHeaders = nil
}

// ClearBodyText sets the body to empty.
func (m *Mailer) ClearBodyText() {
	m.BodyText = ""
}

// GetBodyTextFromFile reads the whole file as the body text. When
// deleteAfter is set the source file is removed after a successful read.
// The showWindow flag is accepted for legacy compatibility and ignored.
// Failures are reported through the return value and Response.
func (m *Mailer) GetBodyTextFromFile(path string, deleteAfter, _ bool) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		m.response = fmt.Sprintf("failed to read body file %q: %v", path, err)
		return false
	}
	m.BodyText = string(data)

	if deleteAfter {
		if err := os.Remove(path); err != nil {
			m.response = fmt.Sprintf("failed to delete body file %q: %v", path, err)
			return false
		}
	}
	return true
}

// EncodeHeader returns the input unchanged. The legacy component documented
// RFC 2047 word encoding for this operation but shipped an identity
// passthrough; callers depend on that, so the passthrough is preserved.
func (m *Mailer) EncodeHeader(text string) string {
	return text
}

// GetTempPath returns the platform temp directory.
func (m *Mailer) GetTempPath() string {
	return os.TempDir()
}
