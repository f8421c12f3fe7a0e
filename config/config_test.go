package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.DBDriver != DriverSQLite || cfg.AppPort != "8080" {
		t.Errorf("unexpected defaults: driver %q port %q", cfg.DBDriver, cfg.AppPort)
	}
	if len(cfg.SlotTimes) != len(DefaultSlotTimes) || cfg.SlotTimes[0] != "09:00" {
		t.Errorf("expected default slot times, got %v", cfg.SlotTimes)
	}
	if cfg.MaxRangeDays != 62 || cfg.ReminderLead != 24*time.Hour {
		t.Errorf("unexpected range/lead defaults: %d %v", cfg.MaxRangeDays, cfg.ReminderLead)
	}
	if cfg.Location() != time.UTC {
		t.Errorf("expected UTC, got %v", cfg.Location())
	}
	if cfg.IsProduction() {
		t.Errorf("default environment must not be production")
	}
	if AppConfig.AppPort != cfg.AppPort {
		t.Errorf("AppConfig not populated")
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", " Postgres ")
	t.Setenv("DATABASE_URL", "postgres://localhost/sapdoc")
	t.Setenv("SLOT_TIMES", "08:00, 08:30,13:00")
	t.Setenv("CLINIC_TIMEZONE", "Europe/Berlin")
	t.Setenv("REMINDER_LEAD", "2h")
	t.Setenv("MAX_RANGE_DAYS", "14")
	t.Setenv("ENV", "production")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.DBDriver != DriverPostgres {
		t.Errorf("expected normalized driver, got %q", cfg.DBDriver)
	}
	if got := strings.Join(cfg.SlotTimes, ","); got != "08:00,08:30,13:00" {
		t.Errorf("unexpected slot times %q", got)
	}
	if cfg.Location().String() != "Europe/Berlin" {
		t.Errorf("unexpected location %v", cfg.Location())
	}
	if !cfg.IsProduction() {
		t.Errorf("expected production environment, got %q", cfg.Env)
	}
	if cfg.ReminderLead != 2*time.Hour || cfg.MaxRangeDays != 14 {
		t.Errorf("unexpected lead %v range %d", cfg.ReminderLead, cfg.MaxRangeDays)
	}
}

func TestLoadConfigRejectsInvalidSettings(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown driver":      {"DB_DRIVER": "oracle"},
		"bad timezone":        {"CLINIC_TIMEZONE": "Mars/Olympus"},
		"unordered labels":    {"SLOT_TIMES": "10:00,09:00"},
		"gemini without key":  {"ASSISTANT_MODE": "gemini"},
		"reminders w/o redis": {"REMINDERS_ENABLED": "true"},
		"non-positive range":  {"MAX_RANGE_DAYS": "0"},
		"unknown assistant":   {"ASSISTANT_MODE": "oracle"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			if _, err := LoadConfig(); err == nil {
				t.Errorf("expected an error")
			}
		})
	}
}

func TestValidateSlotTimes(t *testing.T) {
	valid := [][]string{DefaultSlotTimes, {"00:00"}, {"08:00", "23:30"}}
	for _, labels := range valid {
		if err := ValidateSlotTimes(labels); err != nil {
			t.Errorf("%v: unexpected error %v", labels, err)
		}
	}

	invalid := [][]string{
		nil,
		{"9:00"},
		{"09:00", "09:00"},
		{"25:00"},
		{"09:00", "08:59"},
		{"09-00"},
	}
	for _, labels := range invalid {
		if err := ValidateSlotTimes(labels); err == nil {
			t.Errorf("%v: expected an error", labels)
		}
	}
}
