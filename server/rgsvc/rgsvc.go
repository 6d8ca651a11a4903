// Package rgsvc has services for interacting with the rg2nfa server backend
// decoupled from the API that accesses it.
package rgsvc

import (
	"github.com/dekarrin/rg2nfa"
	"github.com/dekarrin/rg2nfa/server/dao"
)

// Service is a service for converting grammars and keeping the results. It
// performs the actions requested and makes calls to server persistence to
// preserve the backend state.
//
// The zero-value of Service is not ready to be used; assign a valid DAO store
// to DB and a Converter created with rg2nfa.New to Converter before attempting
// to use it.
type Service struct {

	// DB is the persistence store of the service.
	DB dao.Store

	// Converter performs the conversions.
	Converter rg2nfa.Converter
}
