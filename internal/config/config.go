package config

type Config interface {
	EnvConfig
	SessionConfig
	SocialConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetBaseURL() string
	GetDatabasePath() string
	GetRedisAddr() string
	GetSessionStore() string
	SecureCookies() bool
}

type mainConfig struct {
	EnvVars
	Session
	Social
}

func New() Config {
	return mainConfig{}
}
