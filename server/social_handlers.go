package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/quillbase/go-blog-server/cookies"
	"github.com/quillbase/go-blog-server/roles"
	"github.com/quillbase/go-blog-server/sessions"
	"github.com/quillbase/go-blog-server/users"
	zlog "github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	githuboauth "golang.org/x/oauth2/github"
)

const (
	googleIssuer  = "https://accounts.google.com"
	stateLifetime = 10 * time.Minute
)

// socialProvider holds the OAuth2 configuration for one social login
// provider. The Google OIDC verifier is created lazily because provider
// discovery requires a network round trip.
type socialProvider struct {
	name  string
	oauth *oauth2.Config

	oidcOnce     sync.Once
	oidcVerifier *oidc.IDTokenVerifier
	oidcErr      error
}

func (s *Server) initSocialProviders() {
	s.social = make(map[string]*socialProvider)
	base := s.config.GetBaseURL()

	if id := s.config.GetGithubClientID(); id != "" {
		s.social["github"] = &socialProvider{
			name: "github",
			oauth: &oauth2.Config{
				ClientID:     id,
				ClientSecret: s.config.GetGithubClientSecret(),
				Endpoint:     githuboauth.Endpoint,
				RedirectURL:  base + "/auth/social/github/callback",
				Scopes:       []string{"read:user", "user:email"},
			},
		}
	}

	if id := s.config.GetGoogleClientID(); id != "" {
		s.social["google"] = &socialProvider{
			name: "google",
			oauth: &oauth2.Config{
				ClientID:     id,
				ClientSecret: s.config.GetGoogleClientSecret(),
				Endpoint:     oauth2.Endpoint{}, // filled in during OIDC discovery
				RedirectURL:  base + "/auth/social/google/callback",
				Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
			},
		}
	}
}

type stateClaims struct {
	Provider string `json:"provider"`
	Nonce    string `json:"nonce"`
	jwt.RegisteredClaims
}

// signState builds the self-validating OAuth state parameter: a short-lived
// signed token so the callback can verify the round trip without server-side
// state.
func (s *Server) signState(provider string) (string, error) {
	nonce, err := sessions.GenerateToken(16)
	if err != nil {
		return "", err
	}
	claims := stateClaims{
		Provider: provider,
		Nonce:    nonce,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(stateLifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.GetSessionSecret()))
}

func (s *Server) verifyState(provider, state string) error {
	var claims stateClaims
	_, err := jwt.ParseWithClaims(state, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.config.GetSessionSecret()), nil
	})
	if err != nil {
		return err
	}
	if claims.Provider != provider {
		return fmt.Errorf("state issued for provider %q", claims.Provider)
	}
	return nil
}

// SocialLoginHandler starts the provider flow
// (GET /auth/social/{provider}).
func (s *Server) SocialLoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("provider")
		provider, err := s.socialProviderFor(r.Context(), name)
		if err != nil {
			writeError(w, http.StatusNotFound, "unknown provider")
			return
		}

		state, err := s.signState(name)
		if err != nil {
			zlog.Err(err).Msg("Failed to sign oauth state")
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		http.Redirect(w, r, provider.oauth.AuthCodeURL(state), http.StatusSeeOther)
	}
}

// SocialCallbackHandler finishes the provider flow: verify state, exchange
// the code, resolve the external identity, then issue an ordinary session
// (GET /auth/social/{provider}/callback).
func (s *Server) SocialCallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("provider")
		provider, err := s.socialProviderFor(r.Context(), name)
		if err != nil {
			writeError(w, http.StatusNotFound, "unknown provider")
			return
		}

		if err := s.verifyState(name, r.URL.Query().Get("state")); err != nil {
			writeError(w, http.StatusBadRequest, "invalid state")
			return
		}

		token, err := provider.oauth.Exchange(r.Context(), r.URL.Query().Get("code"))
		if err != nil {
			zlog.Err(err).Str("provider", name).Msg("Failed to exchange oauth code")
			writeError(w, http.StatusBadGateway, "code exchange failed")
			return
		}

		email, displayName, err := provider.identity(r.Context(), token)
		if err != nil {
			zlog.Err(err).Str("provider", name).Msg("Failed to resolve social identity")
			writeError(w, http.StatusBadGateway, "identity lookup failed")
			return
		}

		user, err := s.findOrCreateUser(r.Context(), email, displayName)
		if err != nil {
			zlog.Err(err).Msg("Failed to resolve social user")
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		session, err := s.manager.Create(r.Context(), user.ID)
		if err != nil {
			zlog.Err(err).Msg("Failed to create session")
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		w.Header().Add("Set-Cookie", cookies.BuildSessionCookie(session.ID, session.ExpiresAt, s.secureCookies(r)))
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func (s *Server) socialProviderFor(ctx context.Context, name string) (*socialProvider, error) {
	provider, ok := s.social[name]
	if !ok {
		return nil, fmt.Errorf("provider %q not configured", name)
	}

	if name == "google" {
		provider.oidcOnce.Do(func() {
			p, err := oidc.NewProvider(ctx, googleIssuer)
			if err != nil {
				provider.oidcErr = err
				return
			}
			provider.oauth.Endpoint = p.Endpoint()
			provider.oidcVerifier = p.Verifier(&oidc.Config{ClientID: provider.oauth.ClientID})
		})
		if provider.oidcErr != nil {
			return nil, provider.oidcErr
		}
	}

	return provider, nil
}

// identity resolves the provider account's email and display name.
func (p *socialProvider) identity(ctx context.Context, token *oauth2.Token) (email, name string, err error) {
	switch p.name {
	case "google":
		rawIDToken, ok := token.Extra("id_token").(string)
		if !ok {
			return "", "", fmt.Errorf("no id_token in google response")
		}
		idToken, err := p.oidcVerifier.Verify(ctx, rawIDToken)
		if err != nil {
			return "", "", fmt.Errorf("verify id token: %w", err)
		}
		var claims struct {
			Email string `json:"email"`
			Name  string `json:"name"`
		}
		if err := idToken.Claims(&claims); err != nil {
			return "", "", err
		}
		return claims.Email, claims.Name, nil

	case "github":
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://api.github.com/user", nil)
		if err != nil {
			return "", "", err
		}
		req.Header.Set("Authorization", "Bearer "+token.AccessToken)
		req.Header.Set("Accept", "application/vnd.github+json")

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return "", "", err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return "", "", fmt.Errorf("github user endpoint returned %d", resp.StatusCode)
		}

		var ghUser struct {
			Login string `json:"login"`
			Name  string `json:"name"`
			Email string `json:"email"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&ghUser); err != nil {
			return "", "", err
		}
		if ghUser.Email == "" {
			// Private-email accounts still get a stable synthetic address.
			ghUser.Email = ghUser.Login + "@users.noreply.github.com"
		}
		if ghUser.Name == "" {
			ghUser.Name = ghUser.Login
		}
		return ghUser.Email, ghUser.Name, nil
	}

	return "", "", fmt.Errorf("unsupported provider %q", p.name)
}

// findOrCreateUser links the social identity to an account by email. New
// accounts get a random unusable password so the credential path stays
// closed until the user sets one.
func (s *Server) findOrCreateUser(ctx context.Context, email, name string) (*users.User, error) {
	if user, err := s.repos.Users.GetByEmail(ctx, email); err == nil {
		return user, nil
	}

	random, err := sessions.GenerateToken(32)
	if err != nil {
		return nil, err
	}
	hashed, err := users.HashPassword(random)
	if err != nil {
		return nil, err
	}

	user := &users.User{
		ID:             uuid.New(),
		Name:           name,
		Email:          email,
		HashedPassword: hashed,
		CreatedAt:      time.Now(),
	}
	if err := s.repos.Users.Upsert(ctx, user); err != nil {
		return nil, err
	}

	if err := s.repos.Roles.EnsureRole(ctx, roles.Role{Name: DefaultRoleName}); err != nil {
		zlog.Err(err).Msg("Failed to ensure default role")
	}
	if err := s.repos.Roles.Assign(ctx, user.ID, DefaultRoleName); err != nil {
		zlog.Err(err).Str("user_id", user.ID.String()).Msg("Failed to assign default role")
	}

	return user, nil
}
