package authz

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/quillbase/go-blog-server/cookies"
	apperrors "github.com/quillbase/go-blog-server/internal/errors"
	"github.com/quillbase/go-blog-server/roles"
	"github.com/quillbase/go-blog-server/sessions"
	"github.com/quillbase/go-blog-server/users"
	"github.com/rs/zerolog"
)

// Diagnostics receives context-resolution failures that were downgraded to
// an anonymous context. The downgrade is a deliberate availability-over-
// strictness choice, but it masks infrastructure failures as ordinary
// unauthenticated traffic, so every downgrade is reported here.
type Diagnostics interface {
	ContextResolutionFailed(r *http.Request, err error)
}

// LogDiagnostics is the default Diagnostics implementation, logging every
// downgraded failure.
type LogDiagnostics struct {
	Logger zerolog.Logger
}

func (d LogDiagnostics) ContextResolutionFailed(r *http.Request, err error) {
	d.Logger.Error().Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("auth context resolution failed, downgrading to anonymous")
}

// Resolver builds the per-request Context: it extracts the session token
// from the Cookie header, validates it, and resolves the user and role set.
// Any failure along the way degrades the request to an anonymous context
// rather than failing it.
type Resolver struct {
	manager *sessions.Manager
	users   users.Repo
	roles   *roles.Resolver
	diag    Diagnostics
}

// NewResolver wires a context resolver from its collaborators. diag may be
// nil, in which case downgrades go unreported (tests only).
func NewResolver(manager *sessions.Manager, userRepo users.Repo, roleResolver *roles.Resolver, diag Diagnostics) *Resolver {
	return &Resolver{
		manager: manager,
		users:   userRepo,
		roles:   roleResolver,
		diag:    diag,
	}
}

// Resolve never fails: it returns the authenticated context when the
// request carries a valid session cookie and a degraded anonymous context
// otherwise.
func (re *Resolver) Resolve(r *http.Request) Context {
	token, ok := sessionTokenFromRequest(r)
	if !ok {
		return Anonymous()
	}

	session, err := re.manager.Validate(r.Context(), token)
	if err != nil {
		// Absent and expired tokens are ordinary unauthenticated traffic;
		// anything else is an infrastructure failure worth surfacing.
		if !apperrors.Is(err, apperrors.ErrSessionNotFound) && !apperrors.Is(err, apperrors.ErrSessionExpired) {
			re.report(r, errors.Wrap(err, "validating session"))
		}
		return Anonymous()
	}

	user, err := re.users.GetByID(r.Context(), session.UserID)
	if err != nil {
		re.report(r, errors.Wrap(err, "resolving session user"))
		return Anonymous()
	}

	// The role resolver already degrades to the empty set on lookup
	// failure; an empty set here is a valid authenticated context.
	roleSet := re.roles.RolesFor(r.Context(), session.UserID)

	return Context{
		Session: session,
		User:    user,
		Roles:   roleSet,
	}
}

func (re *Resolver) report(r *http.Request, err error) {
	if re.diag != nil {
		re.diag.ContextResolutionFailed(r, err)
	}
}

func sessionTokenFromRequest(r *http.Request) (string, bool) {
	parsed := cookies.ParseCookies(r.Header.Get("Cookie"))
	token, ok := parsed[cookies.SessionCookieName]
	if !ok || token == "" {
		return "", false
	}
	return token, true
}
