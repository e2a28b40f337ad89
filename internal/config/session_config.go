package config

import "time"

// Session lifetime defaults. The absolute TTL bounds how long a session can
// live regardless of activity; the idle TTL is a sliding window refreshed on
// each successful validation.
const (
	defaultAbsoluteTTL = 30 * 24 * time.Hour
	defaultIdleTTL     = 7 * 24 * time.Hour
	defaultTokenLength = 32
)

type SessionConfig interface {
	GetSessionAbsoluteTTL() time.Duration
	GetSessionIdleTTL() time.Duration
	GetSessionTokenLength() int
	GetSessionSecret() string
}

type Session struct{}

var _ SessionConfig = Session{}

func (Session) GetSessionAbsoluteTTL() time.Duration {
	return durationEnv("SESSION_ABSOLUTE_TTL", defaultAbsoluteTTL)
}

func (Session) GetSessionIdleTTL() time.Duration {
	return durationEnv("SESSION_IDLE_TTL", defaultIdleTTL)
}

func (Session) GetSessionTokenLength() int {
	return defaultTokenLength
}

// GetSessionSecret returns the HMAC secret used to sign the social login
// state token. Not used for session tokens themselves, which are opaque.
func (Session) GetSessionSecret() string {
	return GetEnv("SESSION_SECRET", "dev-secret-change-me")
}

func durationEnv(envVar string, defaultValue time.Duration) time.Duration {
	raw := GetEnv(envVar, "")
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return defaultValue
	}
	return d
}
