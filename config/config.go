package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/joho/godotenv"

	"github.com/juancarlosGilardi/flask-marcaciones/location"
)

// JWTClaims is the token payload issued at login and checked by the auth
// middleware.
type JWTClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type SMTP struct {
	Host     string
	Port     int
	From     string
	Password string
	To       string
}

// Enabled reports whether enough SMTP settings are present to send marking
// notifications at all.
func (s SMTP) Enabled() bool {
	return s.Host != "" && s.From != "" && s.To != ""
}

type Config struct {
	Port           string
	DatabaseURL    string
	JWTKey         []byte
	Timezone       *time.Location
	AllowedOrigins []string
	GPS            location.Config
	LockWait       time.Duration
	SMTP           SMTP
}

// Load reads the process environment (after godotenv, when a .env file is
// present) and applies the production defaults: 700m geofence tolerance,
// 600m worst acceptable accuracy, Peru region bounds, America/Lima clock.
func Load() (Config, error) {
	// A missing .env is fine in containers where the environment is real.
	_ = godotenv.Load()

	cfg := Config{
		Port:           "8080",
		GPS:            location.DefaultConfig(),
		LockWait:       5 * time.Second,
		AllowedOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
	}

	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		cfg.Port = port
	}

	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL must be set")
	}

	key := strings.TrimSpace(os.Getenv("JWT_KEY"))
	if key == "" {
		return Config{}, fmt.Errorf("JWT_KEY must be set")
	}
	cfg.JWTKey = []byte(key)

	tzName := strings.TrimSpace(os.Getenv("TIMEZONE"))
	if tzName == "" {
		tzName = "America/Lima"
	}
	tz, err := time.LoadLocation(tzName)
	if err != nil {
		return Config{}, fmt.Errorf("invalid TIMEZONE %q: %w", tzName, err)
	}
	cfg.Timezone = tz

	if origins := strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS")); origins != "" {
		cfg.AllowedOrigins = splitAndTrim(origins)
	}

	if v, err := floatEnv("MAX_GPS_DISTANCE"); err != nil {
		return Config{}, err
	} else if v != nil {
		cfg.GPS.ToleranceMeters = *v
	}
	if v, err := floatEnv("MAX_GPS_ACCURACY"); err != nil {
		return Config{}, err
	} else if v != nil {
		cfg.GPS.MaxAccuracyMeters = *v
	}

	// GPS_REGION_CHECK=false disables the bounding box entirely; every
	// coordinate then counts as inside. This is the documented permissive
	// default for deployments outside the default region.
	if raw := strings.TrimSpace(os.Getenv("GPS_REGION_CHECK")); raw != "" {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid GPS_REGION_CHECK %q", raw)
		}
		if !enabled {
			cfg.GPS.Region = location.Bounds{}
		}
	}

	if raw := strings.TrimSpace(os.Getenv("LOCK_WAIT_TIMEOUT")); raw != "" {
		wait, err := time.ParseDuration(raw)
		if err != nil || wait <= 0 {
			return Config{}, fmt.Errorf("invalid LOCK_WAIT_TIMEOUT %q", raw)
		}
		cfg.LockWait = wait
	}

	cfg.SMTP = SMTP{
		Host:     strings.TrimSpace(os.Getenv("SMTP_HOST")),
		Port:     587,
		From:     strings.TrimSpace(os.Getenv("SMTP_FROM")),
		Password: os.Getenv("SMTP_PASSWORD"),
		To:       strings.TrimSpace(os.Getenv("SMTP_TO")),
	}
	if raw := strings.TrimSpace(os.Getenv("SMTP_PORT")); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil || port <= 0 {
			return Config{}, fmt.Errorf("invalid SMTP_PORT %q", raw)
		}
		cfg.SMTP.Port = port
	}

	return cfg, nil
}

func floatEnv(name string) (*float64, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		return nil, fmt.Errorf("invalid %s %q", name, raw)
	}
	return &v, nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
