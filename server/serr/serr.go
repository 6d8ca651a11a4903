// Package serr holds the error values used across the rg2nfa server. Errors
// created here are rgerr.Error values, so calling errors.Is() on one with any
// of the errors it has as a cause will return true.
package serr

import (
	"errors"

	"github.com/dekarrin/rg2nfa/internal/rgerr"
)

var (
	ErrNotFound      = errors.New("the requested entity could not be found")
	ErrAlreadyExists = errors.New("resource with same identifying information already exists")
	ErrDB            = errors.New("an error occurred with the DB")
	ErrBadArgument   = errors.New("one or more of the arguments is invalid")
	ErrBodyUnmarshal = errors.New("malformed data in request")
	ErrConversion    = errors.New("the grammar could not be converted")
)

// WrapDB creates a new error that wraps the given error as a cause and
// automatically adds ErrDB as another cause. A user-set message may be provided
// if desired with msg, but it may be left as "".
func WrapDB(msg string, err error) error {
	return rgerr.New(msg, err, ErrDB)
}

// New creates a new error with the given message, along with any errors it
// should wrap as its causes. Providing cause errors is not required, but will
// cause it to return true when it is checked against that error via a call to
// errors.Is.
func New(msg string, causes ...error) error {
	return rgerr.New(msg, causes...)
}
