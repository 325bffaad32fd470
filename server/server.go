// Package server provides an HTTP REST server that interprets player commands
// against a glossary and keeps a history of them per session.
//
//	POST   /api/v1/sessions       - create a new session and get a token for it.
//	GET    /api/v1/sessions/{id}  - get info on a session (it must be yours).
//	POST   /api/v1/tokens         - refresh the token of the current session.
//	POST   /api/v1/commands       - interpret a line of input in the current session.
//	GET    /api/v1/commands       - get the command history of the current session.
//	GET    /api/v1/commands/{id}  - get a single command from history.
//	GET    /api/v1/glossary       - get every definition the server understands.
//	GET    /api/v1/info           - get version info on the server and interpreter.
package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/dekarrin/tqinterp/server/api"
	"github.com/dekarrin/tqinterp/server/dao"
	"github.com/dekarrin/tqinterp/server/middle"
	"github.com/dekarrin/tqinterp/server/result"
	"github.com/dekarrin/tqinterp/server/tunas"
	"github.com/go-chi/chi/v5"
)

// Server is an HTTP REST server that provides command interpretation and
// associated resources. The zero-value of a Server should not be used directly;
// call New() to get one ready for use.
type Server struct {
	router chi.Router
	db     dao.Store
	api    api.API
}

// New creates a new Server from the given config. Unset values of cfg are
// filled with their defaults before it is validated.
func New(cfg Config) (*Server, error) {
	cfg = cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	db, err := cfg.DB.Connect()
	if err != nil {
		return nil, fmt.Errorf("connect DB: %w", err)
	}

	svc, err := tunas.New(db, cfg.Glossary.Load)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init service: %w", err)
	}

	log.Printf("INFO  Using %s DB with %s", cfg.DB, cfg.Glossary)

	srv := &Server{
		db: db,
		api: api.API{
			Backend:     svc,
			UnauthDelay: cfg.UnauthDelay(),
			Secret:      cfg.TokenSecret,
		},
	}
	srv.router = newRouter(srv.api)

	return srv, nil
}

// Handler returns the http.Handler that routes all requests to the server.
func (srv *Server) Handler() http.Handler {
	return srv.router
}

// Close closes the connection to the server's persistence layer.
func (srv *Server) Close() error {
	return srv.db.Close()
}

// ServeForever begins listening on the given address and port for HTTP REST
// client requests. If address is kept as "", it will default to "localhost". If
// port is less than 1, it will default to 8080.
func (srv *Server) ServeForever(address string, port int) {
	if address == "" {
		address = "localhost"
	}
	if port < 1 {
		port = 8080
	}

	listenAddress := fmt.Sprintf("%s:%d", address, port)
	log.Printf("INFO  Listening on %s", listenAddress)
	log.Fatalf("FATAL %v", http.ListenAndServe(listenAddress, srv.router))
}

func newRouter(a api.API) chi.Router {
	r := chi.NewRouter()

	r.Mount(api.PathPrefix, newAPIRouter(a))

	return r
}

func newAPIRouter(a api.API) chi.Router {
	sessions := a.Backend.DB.Sessions()
	reqAuth := middle.RequireAuth(sessions, a.Secret, a.UnauthDelay)
	optAuth := middle.OptionalAuth(sessions, a.Secret, a.UnauthDelay)

	r := chi.NewRouter()

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", a.HTTPCreateSession())
		r.With(reqAuth).Get("/{id}", a.HTTPGetSession())
	})

	r.With(reqAuth).Post("/tokens", a.HTTPCreateToken())

	r.Route("/commands", func(r chi.Router) {
		r.Use(reqAuth)
		r.Post("/", a.HTTPCreateCommand())
		r.Get("/", a.HTTPGetAllCommands())
		r.Get("/{id}", a.HTTPGetCommand())
	})

	r.Get("/glossary", a.HTTPGetGlossary())
	r.With(optAuth).Get("/info", a.HTTPGetInfo())

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		res := result.NotFound("no route for %s", req.URL.Path)
		result.Log("INFO", req, res.Status, res.InternalMsg)
		res.WriteResponse(w)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		res := result.MethodNotAllowed(strings.ToUpper(req.Method))
		result.Log("INFO", req, res.Status, res.InternalMsg)
		res.WriteResponse(w)
	})

	return r
}
