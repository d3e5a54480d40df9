package aspmailer

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/legacyline/aspmailer/transport"
)

// Defaults holds site-wide mailer settings loaded from the environment with
// an optional YAML file as the base layer. It covers the properties an
// operator typically fixes per deployment; everything else stays per-message.
type Defaults struct {
	Mailer  MailerDefaults  `yaml:"mailer"`
	SMTP    SMTPDefaults    `yaml:"smtp"`
	Logging LoggingDefaults `yaml:"logging"`
}

// MailerDefaults holds the preconfigured message settings.
type MailerDefaults struct {
	RemoteHost     string `yaml:"remote_host"`
	SenderName     string `yaml:"sender_name"`
	SenderAddress  string `yaml:"sender_address"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	CharSet        int    `yaml:"charset"`
	Organization   string `yaml:"organization"`
	LogFile        string `yaml:"log_file"`
}

// SMTPDefaults holds the transport credentials and TLS behavior.
type SMTPDefaults struct {
	Username           string `yaml:"username"`
	Password           string `yaml:"password"`
	InsecureSkipVerify bool   `yaml:"insecure_skip_verify"`
}

// LoggingDefaults holds logging configuration.
type LoggingDefaults struct {
	Level string `yaml:"level"`
}

// LoadDefaults loads settings from environment variables with sensible
// defaults. Environment variables always take precedence.
func LoadDefaults() (*Defaults, error) {
	d := &Defaults{}
	d.applyDefaults()
	d.applyEnvVars()
	return d, nil
}

// LoadDefaultsFromFile loads settings from a YAML file as the base layer,
// then overrides with environment variables. Returns an error if the
// specified file path does not exist.
func LoadDefaultsFromFile(path string) (*Defaults, error) {
	d := &Defaults{}
	d.applyDefaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, d); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Environment variables always override YAML values
	d.applyEnvVars()

	return d, nil
}

// applyDefaults sets the baseline values for all settings.
func (d *Defaults) applyDefaults() {
	d.Mailer.TimeoutSeconds = 30
	d.Mailer.CharSet = 1
	d.Logging.Level = "info"
}

// applyEnvVars overrides settings with environment variable values.
// Only non-empty environment variables override existing values.
func (d *Defaults) applyEnvVars() {
	if v := os.Getenv("ASPMAILER_REMOTE_HOST"); v != "" {
		d.Mailer.RemoteHost = v
	}
	if v := os.Getenv("ASPMAILER_SENDER_NAME"); v != "" {
		d.Mailer.SenderName = v
	}
	if v := os.Getenv("ASPMAILER_SENDER_ADDRESS"); v != "" {
		d.Mailer.SenderAddress = v
	}
	if v := os.Getenv("ASPMAILER_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			d.Mailer.TimeoutSeconds = secs
		}
	}
	if v := os.Getenv("ASPMAILER_CHARSET"); v != "" {
		if code, err := strconv.Atoi(v); err == nil {
			d.Mailer.CharSet = code
		}
	}
	if v := os.Getenv("ASPMAILER_ORGANIZATION"); v != "" {
		d.Mailer.Organization = v
	}
	if v := os.Getenv("ASPMAILER_LOG_FILE"); v != "" {
		d.Mailer.LogFile = v
	}

	if v := os.Getenv("ASPMAILER_SMTP_USERNAME"); v != "" {
		d.SMTP.Username = v
	}
	if v := os.Getenv("ASPMAILER_SMTP_PASSWORD"); v != "" {
		d.SMTP.Password = v
	}
	if v := os.Getenv("ASPMAILER_SMTP_INSECURE_SKIP_VERIFY"); v != "" {
		if skip, err := strconv.ParseBool(v); err == nil {
			d.SMTP.InsecureSkipVerify = skip
		}
	}

	if v := os.Getenv("ASPMAILER_LOG_LEVEL"); v != "" {
		d.Logging.Level = strings.ToLower(v)
	}
}

// NewFromDefaults creates a Mailer preconfigured from loaded defaults,
// including an SMTP transport carrying the configured credentials.
func NewFromDefaults(d *Defaults) *Mailer {
	m := New()
	m.RemoteHost = d.Mailer.RemoteHost
	m.FromName = d.Mailer.SenderName
	m.FromAddress = d.Mailer.SenderAddress
	if d.Mailer.TimeoutSeconds > 0 {
		m.TimeoutSeconds = d.Mailer.TimeoutSeconds
	}
	if d.Mailer.CharSet > 0 {
		m.CharSet = d.Mailer.CharSet
	}
	m.Organization = d.Mailer.Organization
	m.LogFile = d.Mailer.LogFile

	m.Transport = &transport.SMTP{
		Username:           d.SMTP.Username,
		Password:           d.SMTP.Password,
		InsecureSkipVerify: d.SMTP.InsecureSkipVerify,
	}
	return m
}

// SetupLogging configures the global slog logger with JSON output and the
// given level. Host applications that manage their own logger can skip it.
func SetupLogging(level string) {
	var logLevel slog.Level

	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}
