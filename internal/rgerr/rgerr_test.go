package rgerr

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Error_Is(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		target error
		expect bool
	}{
		{
			name:   "direct cause",
			err:    New("line 3", ErrMalformedRule),
			target: ErrMalformedRule,
			expect: true,
		},
		{
			name:   "second cause",
			err:    New("out.csv", ErrOutputAccess, os.ErrPermission),
			target: os.ErrPermission,
			expect: true,
		},
		{
			name:   "cause wraps target",
			err:    Input("in.txt", fmt.Errorf("open: %w", os.ErrNotExist)),
			target: os.ErrNotExist,
			expect: true,
		},
		{
			name:   "unrelated sentinel",
			err:    New("line 3", ErrMalformedRule),
			target: ErrUnknownGrammarType,
			expect: false,
		},
		{
			name:   "wrapped by fmt",
			err:    fmt.Errorf("convert: %w", New("", ErrUnknownGrammarType)),
			target: ErrUnknownGrammarType,
			expect: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual := errors.Is(tc.err, tc.target)

			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_Error_Error(t *testing.T) {
	testCases := []struct {
		name   string
		err    Error
		expect string
	}{
		{
			name:   "message only",
			err:    New("bad"),
			expect: "bad",
		},
		{
			name:   "cause only",
			err:    New("", ErrUnknownGrammarType),
			expect: "could not determine grammar type from rules",
		},
		{
			name:   "message and cause",
			err:    Newf([]error{ErrMalformedRule}, "line %d: %q", 2, "<S> ->"),
			expect: `line 2: "<S> ->": invalid rule format`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			assert.Equal(tc.expect, tc.err.Error())
		})
	}
}

func Test_Detail(t *testing.T) {
	assert := assert.New(t)

	err := Output("out.csv", errors.New("disk full"))

	assert.Equal("out.csv: output could not be written (disk full)", Detail(err))
	assert.Equal("plain", Detail(errors.New("plain")))
}
