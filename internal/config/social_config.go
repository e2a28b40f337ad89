package config

// SocialConfig exposes the OAuth2 credentials for the optional social login
// providers. A provider is enabled when its client ID is set.
type SocialConfig interface {
	GetGithubClientID() string
	GetGithubClientSecret() string
	GetGoogleClientID() string
	GetGoogleClientSecret() string
}

type Social struct{}

var _ SocialConfig = Social{}

func (Social) GetGithubClientID() string {
	return GetEnv("GITHUB_CLIENT_ID", "")
}

func (Social) GetGithubClientSecret() string {
	return GetEnv("GITHUB_CLIENT_SECRET", "")
}

func (Social) GetGoogleClientID() string {
	return GetEnv("GOOGLE_CLIENT_ID", "")
}

func (Social) GetGoogleClientSecret() string {
	return GetEnv("GOOGLE_CLIENT_SECRET", "")
}
