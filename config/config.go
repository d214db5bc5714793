package config

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	ProviderSendGrid = "sendgrid"
	ProviderSMTP     = "smtp"

	// VisitsDisabled turns visitor tracking off when used as VISITS_DB_PATH.
	VisitsDisabled = "off"
)

type Config struct {
	Server ServerConfig
	App    AppConfig
	Sheet  SheetConfig
	Mail   MailConfig
	Visits VisitsConfig
}

type ServerConfig struct {
	Port        string   `validate:"required,numeric"`
	CORSOrigins []string `validate:"min=1,dive,eq=*|http_url"`
}

type AppConfig struct {
	Environment string `validate:"required"`
	Version     string
}

type SheetConfig struct {
	URL     string        `validate:"required,http_url"`
	Timeout time.Duration `validate:"gte=0"`
	// RequireID disables the positional index fallback for project lookup.
	RequireID bool
}

type MailConfig struct {
	Provider     string `validate:"oneof=sendgrid smtp"`
	SendGridKey  string `validate:"required_if=Provider sendgrid"`
	SendGridHost string `validate:"omitempty,http_url"`
	SMTPHost     string `validate:"required_if=Provider smtp"`
	SMTPPort     string `validate:"omitempty,numeric"`
	SMTPUser     string `validate:"required_if=Provider smtp"`
	SMTPPass     string `validate:"required_if=Provider smtp"`
	From         string `validate:"required,email"`
	To           string `validate:"required,email"`
}

type VisitsConfig struct {
	DBPath string
}

func (v VisitsConfig) Enabled() bool {
	return v.DBPath != "" && !strings.EqualFold(v.DBPath, VisitsDisabled)
}

// Load reads configuration from the environment, after loading .env when
// one exists.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds and validates a Config from getenv.
func FromEnv(getenv func(string) string) (*Config, error) {
	e := env{get: getenv}

	provider := strings.ToLower(e.str("MAIL_PROVIDER", ProviderSendGrid))
	smtpUser := e.str("SMTP_USER", "")
	from := e.str("MAIL_FROM", "")
	if from == "" && provider == ProviderSMTP {
		from = smtpUser
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        e.str("PORT", "8080"),
			CORSOrigins: e.list("CORS_ORIGINS", []string{"*"}),
		},
		App: AppConfig{
			Environment: e.str("APP_ENV", "development"),
			Version:     e.str("APP_VERSION", "1.0.0"),
		},
		Sheet: SheetConfig{
			URL:       e.first("SHEET_URL", "NEXT_PUBLIC_SHEET_URL"),
			Timeout:   e.duration("SHEET_TIMEOUT", 15*time.Second),
			RequireID: e.boolean("REQUIRE_PROJECT_ID", false),
		},
		Mail: MailConfig{
			Provider:     provider,
			SendGridKey:  e.str("SENDGRID_API_KEY", ""),
			SendGridHost: e.str("SENDGRID_HOST", ""),
			SMTPHost:     e.str("SMTP_HOST", "smtp.gmail.com"),
			SMTPPort:     e.str("SMTP_PORT", "587"),
			SMTPUser:     smtpUser,
			SMTPPass:     e.str("SMTP_PASS", ""),
			From:         from,
			To:           e.first("MAIL_TO", "TO_EMAIL"),
		},
		Visits: VisitsConfig{
			DBPath: e.str("VISITS_DB_PATH", "portfolio.db"),
		},
	}

	if len(e.errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(e.errs, "; "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = validator.New()

// Validate reports every failing field at once.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	sort.Strings(msgs)
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

type env struct {
	get  func(string) string
	errs []string
}

func (e *env) str(key, def string) string {
	if v := strings.TrimSpace(e.get(key)); v != "" {
		return v
	}
	return def
}

func (e *env) first(keys ...string) string {
	for _, k := range keys {
		if v := e.str(k, ""); v != "" {
			return v
		}
	}
	return ""
}

func (e *env) list(key string, def []string) []string {
	raw := e.str(key, "")
	if raw == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (e *env) duration(key string, def time.Duration) time.Duration {
	raw := e.str(key, "")
	if raw == "" {
		return def
	}
	if raw == "0" {
		return 0
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		e.errs = append(e.errs, fmt.Sprintf("%s: %v", key, err))
		return def
	}
	return d
}

func (e *env) boolean(key string, def bool) bool {
	raw := e.str(key, "")
	if raw == "" {
		return def
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		e.errs = append(e.errs, fmt.Sprintf("%s: %v", key, err))
		return def
	}
	return b
}
