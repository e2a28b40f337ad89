// Package cookies serializes the session token to and from the HTTP cookie
// header. The codec deals in raw header strings rather than http.Cookie so
// the exact wire format stays under our control and testable.
package cookies

import (
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SessionCookieName is the name of the session cookie
const SessionCookieName = "session"

// BuildSessionCookie returns a Set-Cookie value carrying the session token.
// Expires is set to the session's absolute expiry, not the idle one: the
// cookie should outlive idle lapses so an expired-but-presented token can
// still be recognised and cleaned up server side. Secure is appended only
// when serving over TLS.
func BuildSessionCookie(token string, expiresAt time.Time, secure bool) string {
	attrs := []string{
		SessionCookieName + "=" + token,
		"HttpOnly",
		"SameSite=Lax",
		"Expires=" + expiresAt.UTC().Format(http.TimeFormat),
		"Path=/",
	}
	if secure {
		attrs = append(attrs, "Secure")
	}
	return strings.Join(attrs, "; ")
}

// DeleteSessionCookie returns a Set-Cookie value that forces immediate
// client-side removal of the session cookie (Max-Age=0), used on logout.
func DeleteSessionCookie(secure bool) string {
	attrs := []string{
		SessionCookieName + "=",
		"HttpOnly",
		"SameSite=Lax",
		"Max-Age=0",
		"Path=/",
	}
	if secure {
		attrs = append(attrs, "Secure")
	}
	return strings.Join(attrs, "; ")
}

// ParseCookies parses a raw Cookie header value into a name/value map.
// Segments are split on ';', pairs on the first '=' only (values may
// legitimately contain '='), and both sides are URL-decoded. Malformed
// segments (missing '=', empty name, undecodable) are silently skipped
// rather than failing the whole parse.
func ParseCookies(rawHeaderValue string) map[string]string {
	parsed := make(map[string]string)

	for _, segment := range strings.Split(rawHeaderValue, ";") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		name, value, found := strings.Cut(segment, "=")
		if !found || name == "" {
			continue
		}

		decodedName, err := url.QueryUnescape(name)
		if err != nil || decodedName == "" {
			continue
		}
		decodedValue, err := url.QueryUnescape(value)
		if err != nil {
			continue
		}

		parsed[decodedName] = decodedValue
	}

	return parsed
}
