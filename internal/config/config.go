// Package config loads rg2nfa settings from TOML files. A config file is
// optional; every setting has a default that is used when it is left out.
//
// A config file looks like this:
//
//	format = "RG2NFA"
//	type = "CONFIG"
//
//	[grammar]
//	dual = "reject"
//
//	[automaton]
//	state_prefix = "q"
//	undeclared = "drop"
//
//	[output]
//	delimiter = ";"
//	accept_marker = "F"
//	target_separator = ","
//	width = 80
//
//	[server]
//	listen = "localhost:8080"
//	database = "inmem"
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/rg2nfa/internal/automaton"
	"github.com/dekarrin/rg2nfa/internal/grammar"
	"github.com/dekarrin/rg2nfa/internal/nfatable"
)

const (
	FileFormat = "RG2NFA"
	FileType   = "CONFIG"

	DefaultWidth         = 80
	DefaultListenAddress = "localhost:8080"
	DefaultDatabase      = "inmem"
)

// Config holds every setting of rg2nfa.
type Config struct {
	Dual        grammar.DualPolicy
	StatePrefix string
	Undeclared  automaton.UndeclaredPolicy
	Format      nfatable.Format

	// Width is the number of columns used when rendering text for a console.
	Width int

	// Listen is the address the server listens on, as ADDRESS:PORT.
	Listen string

	// Database is the connection string of the server's persistence layer,
	// such as "inmem" or "sqlite:/path/to/dir".
	Database string
}

// Default returns a Config with every setting at its default.
func Default() Config {
	return Config{}.FillDefaults()
}

// FillDefaults returns a new Config identical to cfg but with unset values
// set to their defaults. The policies have no unset value; their zero values
// are the defaults.
func (cfg Config) FillDefaults() Config {
	newCFG := cfg

	if newCFG.StatePrefix == "" {
		newCFG.StatePrefix = automaton.DefaultStatePrefix
	}
	newCFG.Format = newCFG.Format.FillDefaults()
	if newCFG.Width == 0 {
		newCFG.Width = DefaultWidth
	}
	if newCFG.Listen == "" {
		newCFG.Listen = DefaultListenAddress
	}
	if newCFG.Database == "" {
		newCFG.Database = DefaultDatabase
	}

	return newCFG
}

// Validate returns an error if the Config has invalid field values set. Empty
// and unset values are considered invalid; if defaults are intended to be used,
// call Validate on the return value of FillDefaults.
func (cfg Config) Validate() error {
	if cfg.StatePrefix == "" {
		return fmt.Errorf("state prefix: must not be empty")
	}
	if strings.ContainsAny(cfg.StatePrefix, " \t\r\n<>|") {
		return fmt.Errorf("state prefix: must not contain whitespace, '<', '>', or '|'")
	}
	if strings.Contains(cfg.StatePrefix, cfg.Format.Delimiter) {
		return fmt.Errorf("state prefix: must not contain delimiter %q", cfg.Format.Delimiter)
	}
	if err := cfg.Format.Validate(); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	if cfg.Width < 2 {
		return fmt.Errorf("width: must be at least 2, but is %d", cfg.Width)
	}
	if cfg.Listen == "" {
		return fmt.Errorf("listen: must not be empty")
	}
	if cfg.Database == "" {
		return fmt.Errorf("database: must not be empty")
	}

	return nil
}

// AutomatonOptions returns the options for building an automaton with the
// settings in cfg.
func (cfg Config) AutomatonOptions() automaton.Options {
	return automaton.Options{
		StatePrefix: cfg.StatePrefix,
		Undeclared:  cfg.Undeclared,
	}
}

// Load reads the config file at path. Settings not given in the file are set
// to their defaults, and the result is validated.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Parse reads a config from the TOML in data. Settings not given are set to
// their defaults, and the result is validated.
func Parse(data []byte) (Config, error) {
	var raw topLevelConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Config{}, err
	}

	if raw.Format != "" && strings.ToUpper(raw.Format) != FileFormat {
		return Config{}, fmt.Errorf("format: must be %q or left out, but is %q", FileFormat, raw.Format)
	}
	if raw.Type != "" && strings.ToUpper(raw.Type) != FileType {
		return Config{}, fmt.Errorf("type: must be %q or left out, but is %q", FileType, raw.Type)
	}

	cfg := Config{
		StatePrefix: raw.Automaton.StatePrefix,
		Format: nfatable.Format{
			Delimiter:       raw.Output.Delimiter,
			AcceptMarker:    raw.Output.AcceptMarker,
			TargetSeparator: raw.Output.TargetSeparator,
		},
		Width:    raw.Output.Width,
		Listen:   raw.Server.Listen,
		Database: raw.Server.Database,
	}

	var err error
	if raw.Grammar.Dual != "" {
		cfg.Dual, err = grammar.ParseDualPolicy(raw.Grammar.Dual)
		if err != nil {
			return Config{}, fmt.Errorf("grammar: %w", err)
		}
	}
	if raw.Automaton.Undeclared != "" {
		cfg.Undeclared, err = automaton.ParseUndeclaredPolicy(raw.Automaton.Undeclared)
		if err != nil {
			return Config{}, fmt.Errorf("automaton: %w", err)
		}
	}

	cfg = cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
