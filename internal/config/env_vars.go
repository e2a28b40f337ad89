package config

import (
	"fmt"
	"os"
)

const (
	portEnvVar      = "PORT"
	appNameVar      = "APP_NAME"
	baseURLVar      = "BASE_URL"
	dbPathVar       = "DATABASE_PATH"
	redisAddrVar    = "REDIS_ADDR"
	sessionStoreVar = "SESSION_STORE"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "8080")
	if port != "" || port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Quillbase")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

// GetBaseURL returns the externally visible base URL for the server, used to
// build the social login redirect URIs.
func (EnvVars) GetBaseURL() string {
	return GetEnv(baseURLVar, "http://localhost:8080")
}

func (EnvVars) GetDatabasePath() string {
	return GetEnv(dbPathVar, "./data/blog.db")
}

func (EnvVars) GetRedisAddr() string {
	return GetEnv(redisAddrVar, "localhost:6379")
}

// GetSessionStore selects the session repository backend: "memory", "sqlite"
// or "redis".
func (EnvVars) GetSessionStore() string {
	return GetEnv(sessionStoreVar, "sqlite")
}

// SecureCookies reports whether the Secure attribute should be set on
// session cookies. Production deployments serve over TLS.
func (e EnvVars) SecureCookies() bool {
	return e.GetEnv() == "PROD"
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
