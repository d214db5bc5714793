package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"SHEET_URL":        "https://docs.example.com/export?format=xlsx",
		"SENDGRID_API_KEY": "SG.key",
		"MAIL_FROM":        "site@example.com",
		"MAIL_TO":          "owner@example.com",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, 15*time.Second, cfg.Sheet.Timeout)
	assert.False(t, cfg.Sheet.RequireID)
	assert.Equal(t, ProviderSendGrid, cfg.Mail.Provider)
	assert.Equal(t, "portfolio.db", cfg.Visits.DBPath)
	assert.True(t, cfg.Visits.Enabled())
}

func TestFromEnv_LegacyNames(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"NEXT_PUBLIC_SHEET_URL": "https://sheets.example.com/book.xlsx",
		"MAIL_PROVIDER":         "SMTP",
		"SMTP_USER":             "me@example.com",
		"SMTP_PASS":             "app-pass",
		"TO_EMAIL":              "owner@example.com",
		"VISITS_DB_PATH":        "off",
	}))
	require.NoError(t, err)

	assert.Equal(t, "https://sheets.example.com/book.xlsx", cfg.Sheet.URL)
	assert.Equal(t, ProviderSMTP, cfg.Mail.Provider)
	assert.Equal(t, "me@example.com", cfg.Mail.From, "smtp falls back to the login address")
	assert.Equal(t, "owner@example.com", cfg.Mail.To)
	assert.Equal(t, "smtp.gmail.com", cfg.Mail.SMTPHost)
	assert.False(t, cfg.Visits.Enabled())
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"PORT":               "9000",
		"CORS_ORIGINS":       "https://a.dev, https://b.dev",
		"SHEET_URL":          "http://localhost:9999/sheet.xlsx",
		"SHEET_TIMEOUT":      "0",
		"REQUIRE_PROJECT_ID": "true",
		"SENDGRID_API_KEY":   "SG.key",
		"MAIL_FROM":          "site@example.com",
		"MAIL_TO":            "owner@example.com",
	}))
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, []string{"https://a.dev", "https://b.dev"}, cfg.Server.CORSOrigins)
	assert.Equal(t, time.Duration(0), cfg.Sheet.Timeout)
	assert.True(t, cfg.Sheet.RequireID)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing sheet url",
			env:     map[string]string{"SENDGRID_API_KEY": "k", "MAIL_FROM": "a@b.co", "MAIL_TO": "c@d.co"},
			wantErr: "Config.Sheet.URL",
		},
		{
			name:    "sendgrid without key",
			env:     map[string]string{"SHEET_URL": "https://x.dev/s.xlsx", "MAIL_FROM": "a@b.co", "MAIL_TO": "c@d.co"},
			wantErr: "Config.Mail.SendGridKey",
		},
		{
			name: "smtp without password",
			env: map[string]string{
				"SHEET_URL": "https://x.dev/s.xlsx", "MAIL_PROVIDER": "smtp",
				"SMTP_USER": "a@b.co", "MAIL_TO": "c@d.co",
			},
			wantErr: "Config.Mail.SMTPPass",
		},
		{
			name: "unknown provider",
			env: map[string]string{
				"SHEET_URL": "https://x.dev/s.xlsx", "MAIL_PROVIDER": "pigeon",
				"MAIL_FROM": "a@b.co", "MAIL_TO": "c@d.co",
			},
			wantErr: "Config.Mail.Provider",
		},
		{
			name: "bad recipient",
			env: map[string]string{
				"SHEET_URL": "https://x.dev/s.xlsx", "SENDGRID_API_KEY": "k",
				"MAIL_FROM": "a@b.co", "MAIL_TO": "nobody",
			},
			wantErr: "Config.Mail.To",
		},
		{
			name: "origin without scheme",
			env: map[string]string{
				"SHEET_URL": "https://x.dev/s.xlsx", "SENDGRID_API_KEY": "k",
				"MAIL_FROM": "a@b.co", "MAIL_TO": "c@d.co", "CORS_ORIGINS": "https://a.dev,example.com",
			},
			wantErr: "Config.Server.CORSOrigins[1]",
		},
		{
			name: "bad timeout",
			env: map[string]string{
				"SHEET_URL": "https://x.dev/s.xlsx", "SENDGRID_API_KEY": "k",
				"MAIL_FROM": "a@b.co", "MAIL_TO": "c@d.co", "SHEET_TIMEOUT": "soon",
			},
			wantErr: "SHEET_TIMEOUT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromEnv(envOf(tt.env))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
