package server

// Route path constants
const (
	RouteAuthRegister = "/auth/register"
	RouteAuthLogin    = "/auth/login"
	RouteAuthLogout   = "/auth/logout"
	RouteAuthMe       = "/auth/me"

	RouteSocialLogin    = "/auth/social/{provider}"
	RouteSocialCallback = "/auth/social/{provider}/callback"

	RoutePublicPosts = "/posts"
	RouteAPIPosts    = "/api/posts"
	RouteAPIPost     = "/api/posts/{id}"

	RouteAdminUsers = "/admin/users"
	RouteAdminUser  = "/admin/users/{id}"
)
