package aspmailer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/legacyline/aspmailer/transport"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()

	envVars := []string{
		"ASPMAILER_REMOTE_HOST", "ASPMAILER_SENDER_NAME", "ASPMAILER_SENDER_ADDRESS",
		"ASPMAILER_TIMEOUT_SECONDS", "ASPMAILER_CHARSET", "ASPMAILER_ORGANIZATION",
		"ASPMAILER_LOG_FILE", "ASPMAILER_SMTP_USERNAME", "ASPMAILER_SMTP_PASSWORD",
		"ASPMAILER_SMTP_INSECURE_SKIP_VERIFY", "ASPMAILER_LOG_LEVEL",
	}
	for _, env := range envVars {
		t.Setenv(env, "")
	}
}

func TestLoadDefaults_DefaultValues(t *testing.T) {
	clearConfigEnv(t)

	d, err := LoadDefaults()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.Mailer.TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds: got %d, want 30", d.Mailer.TimeoutSeconds)
	}
	if d.Mailer.CharSet != 1 {
		t.Errorf("CharSet: got %d, want 1", d.Mailer.CharSet)
	}
	if d.Mailer.RemoteHost != "" {
		t.Errorf("RemoteHost: got %q, want empty", d.Mailer.RemoteHost)
	}
	if d.SMTP.Username != "" {
		t.Errorf("SMTP.Username: got %q, want empty", d.SMTP.Username)
	}
	if d.Logging.Level != "info" {
		t.Errorf("Logging.Level: got %q, want %q", d.Logging.Level, "info")
	}
}

func TestLoadDefaults_EnvVarOverrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("ASPMAILER_REMOTE_HOST", "a.example.com;b.example.com:2525")
	t.Setenv("ASPMAILER_SENDER_NAME", "Ops")
	t.Setenv("ASPMAILER_SENDER_ADDRESS", "ops@example.com")
	t.Setenv("ASPMAILER_TIMEOUT_SECONDS", "45")
	t.Setenv("ASPMAILER_CHARSET", "2")
	t.Setenv("ASPMAILER_ORGANIZATION", "Example Corp")
	t.Setenv("ASPMAILER_SMTP_USERNAME", "relayuser")
	t.Setenv("ASPMAILER_SMTP_PASSWORD", "relaypass")
	t.Setenv("ASPMAILER_SMTP_INSECURE_SKIP_VERIFY", "true")
	t.Setenv("ASPMAILER_LOG_LEVEL", "DEBUG")

	d, err := LoadDefaults()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.Mailer.RemoteHost != "a.example.com;b.example.com:2525" {
		t.Errorf("RemoteHost: got %q", d.Mailer.RemoteHost)
	}
	if d.Mailer.SenderName != "Ops" || d.Mailer.SenderAddress != "ops@example.com" {
		t.Errorf("sender: got %q <%q>", d.Mailer.SenderName, d.Mailer.SenderAddress)
	}
	if d.Mailer.TimeoutSeconds != 45 {
		t.Errorf("TimeoutSeconds: got %d, want 45", d.Mailer.TimeoutSeconds)
	}
	if d.Mailer.CharSet != 2 {
		t.Errorf("CharSet: got %d, want 2", d.Mailer.CharSet)
	}
	if d.SMTP.Username != "relayuser" || d.SMTP.Password != "relaypass" {
		t.Errorf("SMTP credentials: got %q/%q", d.SMTP.Username, d.SMTP.Password)
	}
	if !d.SMTP.InsecureSkipVerify {
		t.Error("InsecureSkipVerify: got false, want true")
	}
	if d.Logging.Level != "debug" {
		t.Errorf("Logging.Level: got %q, want %q (lowercased)", d.Logging.Level, "debug")
	}
}

func TestLoadDefaultsFromFile(t *testing.T) {
	clearConfigEnv(t)

	content := `
mailer:
  remote_host: relay.example.com
  sender_address: noreply@example.com
  timeout_seconds: 10
smtp:
  username: fileuser
  password: filepass
logging:
  level: warn
`
	path := filepath.Join(t.TempDir(), "aspmailer.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	// Environment overrides the file.
	t.Setenv("ASPMAILER_SMTP_USERNAME", "envuser")

	d, err := LoadDefaultsFromFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.Mailer.RemoteHost != "relay.example.com" {
		t.Errorf("RemoteHost: got %q", d.Mailer.RemoteHost)
	}
	if d.Mailer.TimeoutSeconds != 10 {
		t.Errorf("TimeoutSeconds: got %d, want 10", d.Mailer.TimeoutSeconds)
	}
	if d.SMTP.Username != "envuser" {
		t.Errorf("SMTP.Username: got %q, want env override %q", d.SMTP.Username, "envuser")
	}
	if d.SMTP.Password != "filepass" {
		t.Errorf("SMTP.Password: got %q, want %q", d.SMTP.Password, "filepass")
	}
	if d.Logging.Level != "warn" {
		t.Errorf("Logging.Level: got %q, want %q", d.Logging.Level, "warn")
	}
}

func TestLoadDefaultsFromFileMissing(t *testing.T) {
	clearConfigEnv(t)

	if _, err := LoadDefaultsFromFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file, got nil")
	}
}

func TestNewFromDefaults(t *testing.T) {
	clearConfigEnv(t)

	d := &Defaults{}
	d.applyDefaults()
	d.Mailer.RemoteHost = "relay.example.com:587"
	d.Mailer.SenderName = "Ops"
	d.Mailer.SenderAddress = "ops@example.com"
	d.Mailer.Organization = "Example Corp"
	d.SMTP.Username = "relayuser"
	d.SMTP.Password = "relaypass"
	d.SMTP.InsecureSkipVerify = true

	m := NewFromDefaults(d)
	if m.RemoteHost != "relay.example.com:587" {
		t.Errorf("RemoteHost: got %q", m.RemoteHost)
	}
	if m.FromName != "Ops" || m.FromAddress != "ops@example.com" {
		t.Errorf("sender: got %q <%q>", m.FromName, m.FromAddress)
	}
	if m.Organization != "Example Corp" {
		t.Errorf("Organization: got %q", m.Organization)
	}
	if m.TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds: got %d, want 30", m.TimeoutSeconds)
	}

	smtp, ok := m.Transport.(*transport.SMTP)
	if !ok {
		t.Fatalf("Transport: got %T, want *transport.SMTP", m.Transport)
	}
	if smtp.Username != "relayuser" || smtp.Password != "relaypass" {
		t.Errorf("transport credentials: got %q/%q", smtp.Username, smtp.Password)
	}
	if !smtp.InsecureSkipVerify {
		t.Error("transport InsecureSkipVerify: got false, want true")
	}
}
