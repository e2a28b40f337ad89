// Package authz composes authentication and role checks into reusable
// request guards. Guards are plain predicates over the resolved request
// context, so the transport layer decides how a rejection turns into a
// response and the predicates stay independently testable.
package authz

import (
	"github.com/quillbase/go-blog-server/internal/errors"
	"github.com/quillbase/go-blog-server/roles"
	"github.com/quillbase/go-blog-server/sessions"
	"github.com/quillbase/go-blog-server/users"
)

// Context is the per-request authentication context. The anonymous context
// has a nil session, nil user and empty role set; it is used both for
// requests with no (valid) session cookie and when context resolution fails
// outright.
type Context struct {
	Session *sessions.Session
	User    *users.User
	Roles   roles.Set
}

// Anonymous returns the degraded context used when no valid session exists.
func Anonymous() Context {
	return Context{Roles: roles.Set{}}
}

// Authenticated reports whether a user was resolved for this request.
func (c Context) Authenticated() bool {
	return c.User != nil
}

// Guard inspects a request context and either admits it (nil) or rejects it
// with ErrUnauthorized or ErrForbidden.
type Guard func(Context) error

// Public admits every request; operations marked public skip all remaining
// checks.
func Public() Guard {
	return func(Context) error { return nil }
}

// Authenticated requires a non-nil user in context.
func Authenticated() Guard {
	return func(c Context) error {
		if !c.Authenticated() {
			return errors.ErrUnauthorized
		}
		return nil
	}
}

// HasRole requires the caller's role set to intersect the required names
// (logical OR). It says nothing about authentication; compose it after
// Authenticated so an anonymous caller gets Unauthorized, not Forbidden.
func HasRole(names ...string) Guard {
	return func(c Context) error {
		if !c.Roles.ContainsAny(names...) {
			return errors.ErrForbidden
		}
		return nil
	}
}

// Compose runs guards in order, short-circuiting on the first rejection.
func Compose(guards ...Guard) Guard {
	return func(c Context) error {
		for _, g := range guards {
			if err := g(c); err != nil {
				return err
			}
		}
		return nil
	}
}

// Protected is the authenticated-only guard.
func Protected() Guard {
	return Authenticated()
}

// RoleProtected requires authentication plus at least one of the given
// roles.
func RoleProtected(names ...string) Guard {
	return Compose(Authenticated(), HasRole(names...))
}

// AdminRoleName is the role gating admin operations.
const AdminRoleName = "admin"

// Admin requires authentication plus the admin role.
func Admin() Guard {
	return RoleProtected(AdminRoleName)
}
