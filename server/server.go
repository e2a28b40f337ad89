package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/quillbase/go-blog-server/authz"
	"github.com/quillbase/go-blog-server/internal/config"
	"github.com/quillbase/go-blog-server/posts"
	"github.com/quillbase/go-blog-server/roles"
	"github.com/quillbase/go-blog-server/sessions"
	"github.com/quillbase/go-blog-server/users"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// Repos holds all repository dependencies for the Server
type Repos struct {
	Users users.Repo
	Roles roles.Repo
	Posts posts.Repo
}

type Server struct {
	env          string // Environment (e.g., "DEV", "PROD")
	mux          *http.ServeMux
	routes       []string
	config       config.Config
	repos        Repos
	manager      *sessions.Manager
	roleResolver *roles.Resolver
	ctxResolver  *authz.Resolver
	social       map[string]*socialProvider
}

func New(cfg config.Config, repos Repos, manager *sessions.Manager) (*Server, error) {
	if repos.Users == nil {
		return nil, fmt.Errorf("[Server New] Users repo is required")
	}
	if repos.Roles == nil {
		return nil, fmt.Errorf("[Server New] Roles repo is required")
	}
	if repos.Posts == nil {
		return nil, fmt.Errorf("[Server New] Posts repo is required")
	}
	if manager == nil {
		return nil, fmt.Errorf("[Server New] session manager is required")
	}

	roleResolver := roles.NewResolver(repos.Roles, zlog.Logger)

	s := &Server{
		mux:          http.NewServeMux(),
		config:       cfg,
		repos:        repos,
		manager:      manager,
		roleResolver: roleResolver,
		ctxResolver: authz.NewResolver(manager, repos.Users, roleResolver,
			authz.LogDiagnostics{Logger: zlog.Logger}),
	}
	s.env = cfg.GetEnv()
	s.initSocialProviders()

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

// Logger returns the zerolog logger used by handlers.
func (s *Server) Logger() zerolog.Logger {
	return zlog.Logger
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
