// Package rgerr holds the error values used across rg2nfa. Notably, it
// contains the Error type, which can be created with one or more 'cause'
// errors. Calling errors.Is() on an Error with an argument consisting of any of
// the errors it has as a cause will return true.
//
// This package also holds the global error constants that make up the
// conversion error taxonomy, each created via errors.New().
package rgerr

import (
	"errors"
	"fmt"
)

var (
	// ErrInputAccess is the cause of errors where the grammar input could not
	// be opened or read.
	ErrInputAccess = errors.New("grammar input could not be read")

	// ErrMalformedRule is the cause of errors where a logical rule line
	// matches neither the left-linear nor the right-linear rule shape.
	ErrMalformedRule = errors.New("invalid rule format")

	// ErrInconsistentGrammarType is the cause of errors where a rule's shape
	// contradicts the linearity already established by other rules.
	ErrInconsistentGrammarType = errors.New("rule shape contradicts grammar type")

	// ErrUnknownGrammarType is the cause of errors where the end of input is
	// reached without any rule having been classified.
	ErrUnknownGrammarType = errors.New("could not determine grammar type from rules")

	// ErrOutputAccess is the cause of errors where the output table could not
	// be created or written.
	ErrOutputAccess = errors.New("output could not be written")

	// ErrUndeclaredNonTerminal is the cause of errors where a production
	// refers to a non-terminal that never appears on a left-hand side and the
	// reject policy is in effect.
	ErrUndeclaredNonTerminal = errors.New("reference to undeclared non-terminal")

	// ErrDelimiterInField is the cause of errors where a value that would be
	// written to the output table contains the field delimiter.
	ErrDelimiterInField = errors.New("field contains the output delimiter")
)

// Error is a typed error returned by functions in rg2nfa. It contains both a
// message explaining what happened as well as one or more error values it
// considers to be its causes. Calling errors.Is on some Error value err along
// with any value of error it holds as one of its causes will return true.
//
// If Error has at least one cause defined, the result of calling Error.Error()
// will be its primary message with the result of calling Error() on its first
// cause appended to it.
//
// Error should not be used directly; call New or Newf to create one.
type Error struct {
	msg   string
	cause []error
}

// Error returns the message defined for the Error, concatenated with the result
// of calling Error() on its first cause if one is defined. If no message was
// given but a cause was, only the cause's message is returned.
func (e Error) Error() string {
	if e.msg == "" && e.cause != nil {
		return e.cause[0].Error()
	}

	if e.cause != nil {
		return e.msg + ": " + e.cause[0].Error()
	}

	return e.msg
}

// Unwrap returns the causes of Error. The return value will be nil if no causes
// were defined for it.
func (e Error) Unwrap() []error {
	if len(e.cause) > 0 {
		return e.cause
	}
	return nil
}

// Is returns whether Error either Is itself the given target error, or one of
// its causes is.
//
// This function is for interaction with the errors API. Causes that themselves
// wrap other errors are checked with errors.Is.
func (e Error) Is(target error) bool {
	if errTarget, ok := target.(Error); ok {
		if e.msg == errTarget.msg && len(e.cause) == len(errTarget.cause) {
			allCausesEqual := true
			for i := range e.cause {
				if !errors.Is(e.cause[i], errTarget.cause[i]) {
					allCausesEqual = false
					break
				}
			}
			if allCausesEqual {
				return true
			}
		}
	}

	for i := range e.cause {
		if errors.Is(e.cause[i], target) {
			return true
		}
	}
	return false
}

// New creates a new Error with the given message, along with any errors it
// should wrap as its causes.
func New(msg string, causes ...error) Error {
	err := Error{msg: msg}
	if len(causes) > 0 {
		err.cause = make([]error, len(causes))
		copy(err.cause, causes)
	}
	return err
}

// Newf is like New but builds the message from a format string. The causes
// must be given before the format.
func Newf(causes []error, format string, a ...interface{}) Error {
	return New(fmt.Sprintf(format, a...), causes...)
}

// Input returns an Error caused by ErrInputAccess that wraps err, naming the
// input it occurred for.
func Input(name string, err error) Error {
	return New(name, ErrInputAccess, err)
}

// Output returns an Error caused by ErrOutputAccess that wraps err, naming the
// output it occurred for.
func Output(name string, err error) Error {
	return New(name, ErrOutputAccess, err)
}

// Detail returns the most specific message for err. For an Error whose first
// cause is one of the taxonomy sentinels and a second cause holds the
// underlying failure, that underlying failure is included as well.
func Detail(err error) string {
	rgErr, ok := err.(Error)
	if !ok {
		return err.Error()
	}

	msg := rgErr.Error()
	if len(rgErr.cause) > 1 {
		msg += " (" + rgErr.cause[1].Error() + ")"
	}
	return msg
}
