package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dekarrin/rg2nfa/internal/automaton"
	"github.com/dekarrin/rg2nfa/internal/grammar"
	"github.com/dekarrin/rg2nfa/internal/nfatable"
	"github.com/stretchr/testify/assert"
)

func Test_Parse(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expect    Config
		expectErr bool
	}{
		{
			name:   "empty file gives defaults",
			input:  "",
			expect: Default(),
		},
		{
			name: "every setting",
			input: `format = "RG2NFA"
type = "CONFIG"

[grammar]
dual = "right"

[automaton]
state_prefix = "s"
undeclared = "reject"

[output]
delimiter = "\t"
accept_marker = "ACC"
target_separator = " "
width = 120

[server]
listen = ":9000"
database = "sqlite:/tmp/data"
`,
			expect: Config{
				Dual:        grammar.DualAsRight,
				StatePrefix: "s",
				Undeclared:  automaton.UndeclaredReject,
				Format:      nfatable.Format{Delimiter: "\t", AcceptMarker: "ACC", TargetSeparator: " "},
				Width:       120,
				Listen:      ":9000",
				Database:    "sqlite:/tmp/data",
			},
		},
		{
			name: "partial output section",
			input: `[output]
delimiter = "|"
`,
			expect: Config{
				StatePrefix: "q",
				Format:      nfatable.Format{Delimiter: "|", AcceptMarker: "F", TargetSeparator: ","},
				Width:       80,
				Listen:      "localhost:8080",
				Database:    "inmem",
			},
		},
		{
			name:      "wrong format",
			input:     `format = "SOMETHING-ELSE"`,
			expectErr: true,
		},
		{
			name:      "wrong type",
			input:     `type = "DATA"`,
			expectErr: true,
		},
		{
			name:      "bad dual policy",
			input:     "[grammar]\ndual = \"both\"",
			expectErr: true,
		},
		{
			name:      "bad undeclared policy",
			input:     "[automaton]\nundeclared = \"keep\"",
			expectErr: true,
		},
		{
			name:      "state prefix with delimiter",
			input:     "[automaton]\nstate_prefix = \"q;\"",
			expectErr: true,
		},
		{
			name:      "delimiter same as target separator",
			input:     "[output]\ndelimiter = \",\"",
			expectErr: true,
		},
		{
			name:      "invalid toml",
			input:     "[output\ndelimiter = ",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual, err := Parse([]byte(tc.input))

			if tc.expectErr {
				assert.Error(err)
				return
			}
			if !assert.NoError(err) {
				return
			}
			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_Load(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "rg2nfa.toml")
	err := os.WriteFile(path, []byte("[automaton]\nstate_prefix = \"p\"\n"), 0644)
	if !assert.NoError(err) {
		return
	}

	actual, err := Load(path)
	if !assert.NoError(err) {
		return
	}

	assert.Equal("p", actual.StatePrefix)
	assert.Equal(automaton.Options{StatePrefix: "p"}, actual.AutomatonOptions())
}

func Test_Load_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))

	assert.Error(t, err)
}

func Test_Default_IsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
	assert.Error(t, Config{}.Validate())
}
