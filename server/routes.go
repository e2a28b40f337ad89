package server

import "github.com/quillbase/go-blog-server/authz"

func (s *Server) initRoutes() {
	api := s.APIMiddleware()

	// AUTH
	s.RegisterRouteHandler("POST "+RouteAuthRegister, ChainMiddleware(s.RegisterHandler(), api...))
	s.RegisterRouteHandler("POST "+RouteAuthLogin, ChainMiddleware(s.LoginHandler(), api...))
	s.RegisterRouteHandler("POST "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), api...))
	s.RegisterRouteHandler("GET "+RouteAuthMe, ChainMiddleware(s.MeHandler(), api...))

	// Social login (optional, enabled per provider via env)
	s.RegisterRouteHandler("GET "+RouteSocialLogin, ChainMiddleware(s.SocialLoginHandler(), api...))
	s.RegisterRouteHandler("GET "+RouteSocialCallback, ChainMiddleware(s.SocialCallbackHandler(), api...))

	// POSTS
	s.RegisterRouteHandler("GET "+RoutePublicPosts, ChainMiddleware(s.PublicPostsHandler(), api...))
	s.RegisterRouteHandler("GET "+RouteAPIPosts,
		ChainMiddleware(s.PostsHandler(), append(api, s.Guarded(authz.Protected()))...))
	s.RegisterRouteHandler("POST "+RouteAPIPosts,
		ChainMiddleware(s.CreatePostHandler(), append(api, s.Guarded(authz.Protected()))...))
	s.RegisterRouteHandler("PUT "+RouteAPIPost,
		ChainMiddleware(s.UpdatePostHandler(), append(api, s.Guarded(authz.Protected()))...))
	s.RegisterRouteHandler("DELETE "+RouteAPIPost,
		ChainMiddleware(s.DeletePostHandler(), append(api, s.Guarded(authz.Protected()))...))

	// ADMIN
	s.RegisterRouteHandler("GET "+RouteAdminUsers,
		ChainMiddleware(s.AdminUsersListHandler(), append(api, s.Guarded(authz.Admin()))...))
	s.RegisterRouteHandler("DELETE "+RouteAdminUser,
		ChainMiddleware(s.AdminDeleteUserHandler(), append(api, s.Guarded(authz.Admin()))...))
}
