// Package server provides an HTTP REST server that converts grammars and keeps
// the resulting automata.
package server

import (
	"fmt"
	"log"
	"net/http"

	"github.com/dekarrin/rg2nfa"
	"github.com/dekarrin/rg2nfa/server/api"
	"github.com/dekarrin/rg2nfa/server/dao"
	"github.com/dekarrin/rg2nfa/server/rgsvc"
	"github.com/go-chi/chi/v5"
)

// server:
//   - POST   /conversions            - convert a grammar and store the result
//   - GET    /conversions            - get all stored conversions
//   - GET    /conversions/{id}       - get a stored conversion
//   - DELETE /conversions/{id}       - delete a stored conversion
//   - GET    /conversions/{id}/table - get the table of a conversion as text
//   - GET    /info                   - get version info on the server

// Server is an HTTP REST server that converts grammars into automata. The
// zero-value of a Server should not be used directly; call New() to get one
// ready for use.
type Server struct {
	router chi.Router
	db     dao.Store
	api    api.API
}

// New creates a new Server using the given config. Unset values in cfg are
// given their defaults before it is validated.
func New(cfg Config) (Server, error) {
	cfg = cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		return Server{}, fmt.Errorf("config: %w", err)
	}

	conv, err := rg2nfa.New(cfg.Converter)
	if err != nil {
		return Server{}, err
	}

	db, err := cfg.DB.Connect()
	if err != nil {
		return Server{}, err
	}

	s := Server{
		db: db,
		api: api.API{
			Backend: rgsvc.Service{
				DB:        db,
				Converter: conv,
			},
			UnauthDelay: cfg.UnauthDelay(),
		},
	}
	s.router = newRouter(s.api, cfg.MaxBodyBytes)

	return s, nil
}

// ServeHTTP routes the request to the matching API endpoint.
func (s Server) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	s.router.ServeHTTP(w, req)
}

// Service returns the backend service used by the API.
func (s Server) Service() rgsvc.Service {
	return s.api.Backend
}

// ServeForever begins listening on the given address for HTTP REST client
// requests. It only returns if the listener fails, in which case the program
// is ended.
func (s Server) ServeForever(listenAddress string) {
	log.Printf("INFO  Listening on %s", listenAddress)
	log.Fatalf("FATAL %v", http.ListenAndServe(listenAddress, s.router))
}

// Close closes the persistence layer of the server.
func (s Server) Close() error {
	return s.db.Close()
}
