package cookies_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/quillbase/go-blog-server/cookies"
)

var testExpiry = time.Date(2025, 7, 1, 15, 4, 5, 0, time.UTC)

func TestBuildSessionCookieWireFormat(t *testing.T) {
	got := cookies.BuildSessionCookie("abc123", testExpiry, false)

	require.Equal(t,
		"session=abc123; HttpOnly; SameSite=Lax; Expires=Tue, 01 Jul 2025 15:04:05 GMT; Path=/",
		got)
}

func TestBuildSessionCookieSecure(t *testing.T) {
	got := cookies.BuildSessionCookie("abc123", testExpiry, true)

	require.Equal(t,
		"session=abc123; HttpOnly; SameSite=Lax; Expires=Tue, 01 Jul 2025 15:04:05 GMT; Path=/; Secure",
		got)
}

func TestBuildSessionCookieNormalizesExpiryToUTC(t *testing.T) {
	offset := time.FixedZone("UTC+2", 2*60*60)
	localExpiry := testExpiry.In(offset)

	require.Equal(t,
		cookies.BuildSessionCookie("tok", testExpiry, false),
		cookies.BuildSessionCookie("tok", localExpiry, false))
}

func TestDeleteSessionCookieWireFormat(t *testing.T) {
	require.Equal(t,
		"session=; HttpOnly; SameSite=Lax; Max-Age=0; Path=/",
		cookies.DeleteSessionCookie(false))
	require.Equal(t,
		"session=; HttpOnly; SameSite=Lax; Max-Age=0; Path=/; Secure",
		cookies.DeleteSessionCookie(true))
}

func TestParseCookiesSingle(t *testing.T) {
	parsed := cookies.ParseCookies("session=tok123")

	require.Equal(t, map[string]string{"session": "tok123"}, parsed)
}

func TestParseCookiesMultiple(t *testing.T) {
	parsed := cookies.ParseCookies("theme=dark; session=tok123;lang=en")

	require.Equal(t, "dark", parsed["theme"])
	require.Equal(t, "tok123", parsed["session"])
	require.Equal(t, "en", parsed["lang"])
}

func TestParseCookiesValueContainingEquals(t *testing.T) {
	// Only the first '=' splits name from value
	parsed := cookies.ParseCookies("payload=a=b=c")

	require.Equal(t, "a=b=c", parsed["payload"])
}

func TestParseCookiesSkipsMalformedSegments(t *testing.T) {
	parsed := cookies.ParseCookies("noequals; =emptyname; session=tok; %zz=badname; bad=%zz")

	require.Equal(t, map[string]string{"session": "tok"}, parsed)
}

func TestParseCookiesURLDecodesBothSides(t *testing.T) {
	parsed := cookies.ParseCookies("my%20name=hello%20world")

	require.Equal(t, "hello world", parsed["my name"])
}

func TestParseCookiesEmptyHeader(t *testing.T) {
	require.Empty(t, cookies.ParseCookies(""))
	require.Empty(t, cookies.ParseCookies("  ;  ; "))
}

func TestSessionCookieRoundTrip(t *testing.T) {
	token := "x9_-AbC123"
	header := cookies.BuildSessionCookie(token, testExpiry, true)

	// A client echoing the cookie back sends only name=value, but the parser
	// also tolerates the full attribute string.
	parsed := cookies.ParseCookies(header)
	require.Equal(t, token, parsed[cookies.SessionCookieName])
}
