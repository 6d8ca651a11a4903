package config

// topLevelConfig is the top-level structure containing all keys in a complete
// config file.
type topLevelConfig struct {
	Format    string          `toml:"format"`
	Type      string          `toml:"type"`
	Grammar   grammarConfig   `toml:"grammar"`
	Automaton automatonConfig `toml:"automaton"`
	Output    outputConfig    `toml:"output"`
	Server    serverConfig    `toml:"server"`
}

type grammarConfig struct {
	Dual string `toml:"dual"`
}

type automatonConfig struct {
	StatePrefix string `toml:"state_prefix"`
	Undeclared  string `toml:"undeclared"`
}

type outputConfig struct {
	Delimiter       string `toml:"delimiter"`
	AcceptMarker    string `toml:"accept_marker"`
	TargetSeparator string `toml:"target_separator"`
	Width           int    `toml:"width"`
}

type serverConfig struct {
	Listen   string `toml:"listen"`
	Database string `toml:"database"`
}
