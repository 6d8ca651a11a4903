package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_newErrorPrefix(t *testing.T) {
	testCases := []struct {
		name    string
		colored bool
		expect  string
	}{
		{
			name:    "not a terminal",
			colored: false,
			expect:  "ERROR:",
		},
		{
			name:    "terminal",
			colored: true,
			expect:  "\x1b[31;1mERROR:\x1b[0m",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual := newErrorPrefix(tc.colored)

			assert.Equal(tc.expect, actual)
		})
	}
}
