package config

import (
	"testing"
	"time"

	"github.com/juancarlosGilardi/flask-marcaciones/location"
)

func setRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "user:pass@tcp(localhost:3306)/marcaciones?parseTime=true")
	t.Setenv("JWT_KEY", "test-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("port = %s, want 8080", cfg.Port)
	}
	if cfg.GPS.ToleranceMeters != 700 {
		t.Errorf("tolerance = %v, want 700", cfg.GPS.ToleranceMeters)
	}
	if cfg.GPS.MaxAccuracyMeters != 600 {
		t.Errorf("max accuracy = %v, want 600", cfg.GPS.MaxAccuracyMeters)
	}
	if cfg.GPS.Region.South != -18.5 {
		t.Errorf("region south = %v, want Peru bounds", cfg.GPS.Region.South)
	}
	if cfg.Timezone.String() != "America/Lima" {
		t.Errorf("timezone = %s, want America/Lima", cfg.Timezone)
	}
	if cfg.LockWait != 5*time.Second {
		t.Errorf("lock wait = %v, want 5s", cfg.LockWait)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_KEY", "")
	if _, err := Load(); err == nil {
		t.Error("expected an error without DATABASE_URL")
	}

	t.Setenv("DATABASE_URL", "dsn")
	if _, err := Load(); err == nil {
		t.Error("expected an error without JWT_KEY")
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("MAX_GPS_DISTANCE", "250")
	t.Setenv("MAX_GPS_ACCURACY", "100")
	t.Setenv("GPS_REGION_CHECK", "false")
	t.Setenv("LOCK_WAIT_TIMEOUT", "2s")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.GPS.ToleranceMeters != 250 || cfg.GPS.MaxAccuracyMeters != 100 {
		t.Errorf("gps overrides not applied: %+v", cfg.GPS)
	}
	if (cfg.GPS.Region != location.Bounds{}) {
		t.Error("GPS_REGION_CHECK=false must disable the bounds")
	}
	if cfg.LockWait != 2*time.Second {
		t.Errorf("lock wait = %v, want 2s", cfg.LockWait)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[0] != "https://a.example" {
		t.Errorf("origins = %v", cfg.AllowedOrigins)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	setRequired(t)

	cases := map[string]string{
		"MAX_GPS_DISTANCE":  "not-a-number",
		"GPS_REGION_CHECK":  "maybe",
		"LOCK_WAIT_TIMEOUT": "-3s",
		"TIMEZONE":          "Mars/Olympus",
	}
	for name, value := range cases {
		t.Run(name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(name, value)
			if _, err := Load(); err == nil {
				t.Errorf("expected an error for %s=%q", name, value)
			}
		})
	}
}
