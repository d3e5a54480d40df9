package aspmailer

import (
	"fmt"
	"log/slog"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	gomail "github.com/wneessen/go-mail"

	"github.com/legacyline/aspmailer/internal/filetimes"
)

// headerSeparator splits a raw extra-header line into name and value.
const headerSeparator = ": "

// compose builds an outbound message from the current configuration
// snapshot. Any error aborts the whole send before a host is attempted.
func (m *Mailer) compose() (*gomail.Msg, error) {
	msg := gomail.NewMsg(gomail.WithCharset(m.charset()))

	if m.FromAddress == "" {
		return nil, fmt.Errorf("no sender address configured")
	}
	if err := msg.FromFormat(m.FromName, m.FromAddress); err != nil {
		return nil, fmt.Errorf("invalid sender address %q: %w", m.FromAddress, err)
	}

	if err := m.addRecipients(msg); err != nil {
		return nil, err
	}

	msg.Subject(m.Subject)
	msg.SetBodyString(m.bodyContentType(), m.body())

	if m.ConfirmRead {
		addr, err := mail.ParseAddress(m.FromAddress)
		if err != nil {
			return nil, fmt.Errorf("invalid read-receipt address %q: %w", m.FromAddress, err)
		}
		msg.SetGenHeader(gomail.HeaderDispositionNotificationTo, addr.String())
	}

	if m.DateString != "" {
		msg.SetGenHeader(gomail.HeaderDate, m.DateString)
	}
	if m.Organization != "" {
		msg.SetOrganization(m.Organization)
	}

	if m.ReplyTo != "" {
		if err := msg.ReplyTo(m.ReplyTo); err != nil {
			return nil, fmt.Errorf("invalid reply-to address %q: %w", m.ReplyTo, err)
		}
	}

	msg.SetImportance(m.importance())

	if err := m.attachFiles(msg); err != nil {
		return nil, err
	}
	if err := m.addExtraHeaders(msg); err != nil {
		return nil, err
	}

	return msg, nil
}

// charset resolves the configured character set. A custom name wins over the
// numeric code; codes outside {1, 2} fall back to US-ASCII.
func (m *Mailer) charset() gomail.Charset {
	if m.CustomCharSet != "" {
		return gomail.Charset(m.CustomCharSet)
	}
	switch m.CharSet {
	case 2:
		return gomail.CharsetISO88591
	default:
		return gomail.CharsetASCII
	}
}

// bodyContentType marks the body as HTML only on an exact "text/html" match.
func (m *Mailer) bodyContentType() gomail.ContentType {
	if m.ContentType == "text/html" {
		return gomail.TypeTextHTML
	}
	return gomail.TypeTextPlain
}

// body returns the body text, word-wrapped when configured for plain text.
func (m *Mailer) body() string {
	if m.WordWrap && m.bodyContentType() == gomail.TypeTextPlain {
		return wrapText(m.BodyText, m.WordWrapLen)
	}
	return m.BodyText
}

// importance maps the legacy priority code, with the urgent flag forcing
// high. The code itself is range-checked at set time.
func (m *Mailer) importance() gomail.Importance {
	if m.Urgent {
		return gomail.ImportanceHigh
	}
	switch m.priority {
	case PriorityHigh:
		return gomail.ImportanceHigh
	case PriorityLow:
		return gomail.ImportanceLow
	default:
		return gomail.ImportanceNormal
	}
}

// addRecipients copies the To, Cc and Bcc collections onto the message in
// insertion order. A recipient the transport library rejects is skipped when
// recipient errors are tolerated, and fails composition otherwise.
func (m *Mailer) addRecipients(msg *gomail.Msg) error {
	type collection struct {
		kind    string
		entries []addressEntry
		add     func(name, addr string) error
	}
	collections := []collection{
		{kind: "recipient", entries: m.to, add: msg.AddToFormat},
		{kind: "cc", entries: m.cc, add: msg.AddCcFormat},
		{kind: "bcc", entries: m.bcc, add: msg.AddBccFormat},
	}

	for _, c := range collections {
		for _, entry := range c.entries {
			if err := c.add(entry.name, entry.address); err != nil {
				if m.IgnoreRecipientErrors || m.IgnoreMalformedAddress {
					slog.Warn("skipping rejected recipient",
						"kind", c.kind,
						"address", entry.address,
						"error", err,
					)
					continue
				}
				return fmt.Errorf("invalid %s address %q: %w", c.kind, entry.address, err)
			}
		}
	}
	return nil
}

// attachFiles resolves each attachment path at send time. The file's
// creation, modification and access times are embedded in the
// content-disposition parameters.
func (m *Mailer) attachFiles(msg *gomail.Msg) error {
	for _, path := range m.attachments {
		fi, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("failed to read attachment %q: %w", path, err)
		}
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to read attachment %q: %w", path, err)
		}
		_ = f.Close()

		name := filepath.Base(path)
		msg.AttachFile(path,
			gomail.WithFileName(name),
			withDispositionTimes(name, filetimes.Stat(fi)),
		)
	}
	return nil
}

// withDispositionTimes presets the attachment content-disposition so the
// message writer keeps the filename together with the file timestamps.
func withDispositionTimes(filename string, ts filetimes.Times) gomail.FileOption {
	disposition := fmt.Sprintf(
		"attachment; filename=%q; creation-date=%q; modification-date=%q; read-date=%q",
		filename,
		ts.Created.Format(time.RFC1123Z),
		ts.Modified.Format(time.RFC1123Z),
		ts.Accessed.Format(time.RFC1123Z),
	)
	return func(f *gomail.File) {
		f.Header.Set("Content-Disposition", disposition)
	}
}

// addExtraHeaders splits each raw header line on the first ": " and adds it
// to the message, preserving insertion order per name. A line without the
// separator is a composition error rather than a crash.
func (m *Mailer) addExtraHeaders(msg *gomail.Msg) error {
	names := make([]string, 0, len(m.extraHeaders))
	values := make(map[string][]string, len(m.extraHeaders))

	for _, line := range m.extraHeaders {
		name, value, found := strings.Cut(line, headerSeparator)
		if !found || name == "" {
			return fmt.Errorf("malformed extra header %q: missing %q separator", line, headerSeparator)
		}
		if _, seen := values[name]; !seen {
			names = append(names, name)
		}
		values[name] = append(values[name], value)
	}

	for _, name := range names {
		msg.SetGenHeader(gomail.Header(name), values[name]...)
	}
	return nil
}

// wrapText greedily wraps each line of text at the given column, preserving
// existing line breaks. Words longer than the column are left intact.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = wrapLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func wrapLine(line string, width int) string {
	words := strings.Fields(line)
	if len(words) == 0 {
		return line
	}

	var b strings.Builder
	length := 0
	for i, word := range words {
		if i > 0 {
			if length+1+len(word) > width {
				b.WriteByte('\n')
				length = 0
			} else {
				b.WriteByte(' ')
				length++
			}
		}
		b.WriteString(word)
		length += len(word)
	}
	return b.String()
}
