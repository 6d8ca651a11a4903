package server

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dekarrin/rg2nfa/internal/config"
	"github.com/dekarrin/rg2nfa/server/dao"
	"github.com/dekarrin/rg2nfa/server/dao/inmem"
	"github.com/dekarrin/rg2nfa/server/dao/sqlite"
	"github.com/dekarrin/rg2nfa/server/middle"
	"github.com/dekarrin/rg2nfa/server/serr"
)

// DBType is the storage engine a Database uses. The zero value means no
// engine was chosen.
type DBType string

func (dbt DBType) String() string {
	return string(dbt)
}

const (
	DatabaseSQLite   DBType = "sqlite"
	DatabaseInMemory DBType = "inmem"
)

// ParseDBType gives the DBType named by s, ignoring case.
func ParseDBType(s string) (DBType, error) {
	switch DBType(strings.ToLower(s)) {
	case DatabaseSQLite:
		return DatabaseSQLite, nil
	case DatabaseInMemory:
		return DatabaseInMemory, nil
	default:
		return "", serr.New(fmt.Sprintf("unknown DB engine %q; must be one of 'sqlite' or 'inmem'", s), serr.ErrBadArgument)
	}
}

// Database says where the server keeps its conversions.
type Database struct {
	Type DBType

	// DataDir is the directory the SQLite database file is kept in. It is
	// unused for other engines.
	DataDir string
}

// String gives the connection string for db. Passing it to
// ParseDBConnString gives back db.
func (db Database) String() string {
	if db.Type == DatabaseSQLite {
		return db.Type.String() + ":" + db.DataDir
	}
	return db.Type.String()
}

// Connect opens the store db describes. For SQLite the data directory is
// created if it does not yet exist. Errors from opening the store match
// serr.ErrDB, and errors from db itself being invalid match
// serr.ErrBadArgument.
func (db Database) Connect() (dao.Store, error) {
	if err := db.Validate(); err != nil {
		return nil, err
	}

	if db.Type == DatabaseInMemory {
		return inmem.NewDatastore(), nil
	}

	if err := os.MkdirAll(db.DataDir, 0770); err != nil {
		return nil, serr.WrapDB("create data dir "+db.DataDir, err)
	}
	store, err := sqlite.NewDatastore(db.DataDir)
	if err != nil {
		return nil, serr.WrapDB("open sqlite store in "+db.DataDir, err)
	}
	return store, nil
}

// Validate returns an error matching serr.ErrBadArgument if db names no
// known engine or lacks a setting its engine needs.
func (db Database) Validate() error {
	switch db.Type {
	case DatabaseInMemory:
		return nil
	case DatabaseSQLite:
		if db.DataDir == "" {
			return serr.New("sqlite needs a data directory", serr.ErrBadArgument)
		}
		return nil
	case "":
		return serr.New("no DB engine set", serr.ErrBadArgument)
	default:
		return serr.New(fmt.Sprintf("unknown DB engine %q", db.Type.String()), serr.ErrBadArgument)
	}
}

// ParseDBConnString parses a connection string of the form ENGINE or
// ENGINE:PARAMS into a Database. "inmem" takes no params, and "sqlite" takes
// the path of its data directory, as in "sqlite:/var/lib/rg2nfa". Errors
// match serr.ErrBadArgument.
func ParseDBConnString(s string) (Database, error) {
	engine, params, hasParams := strings.Cut(s, ":")
	params = strings.TrimSpace(params)

	dbt, err := ParseDBType(strings.TrimSpace(engine))
	if err != nil {
		return Database{}, err
	}

	db := Database{Type: dbt}
	switch dbt {
	case DatabaseInMemory:
		if hasParams && params != "" {
			return Database{}, serr.New(fmt.Sprintf("inmem takes no params, got %q", params), serr.ErrBadArgument)
		}
	case DatabaseSQLite:
		db.DataDir = params
	}

	if err := db.Validate(); err != nil {
		return Database{}, err
	}
	return db, nil
}

// Config is a configuration for a server. It contains all parameters that can
// be used to configure the operation of a Server.
type Config struct {

	// Database is the configuration to use for connecting to the database. If
	// not provided, it will be set to a configuration for using an in-memory
	// persistence layer.
	DB Database

	// UnauthDelayMillis is the amount of additional time to wait
	// (in milliseconds) before sending a response that indicates an internal
	// error or a disallowed method. This is something of an "anti-flood"
	// measure for naive clients. If not set it will default to 1 second
	// (1000ms). Set this to any negative number to disable the delay.
	UnauthDelayMillis int

	// MaxBodyBytes is the largest request body that will be accepted. If not
	// set it will default to middle.DefaultMaxBodySize.
	MaxBodyBytes int64

	// Converter holds the settings used for every conversion the server
	// performs.
	Converter config.Config
}

// UnauthDelay returns the configured time for the UnauthDelay as a
// time.Duration. If cfg.UnauthDelayMillis is set to a number less than 1, this
// will return a zero-valued time.Duration.
func (cfg Config) UnauthDelay() time.Duration {
	if cfg.UnauthDelayMillis < 1 {
		var dur time.Duration
		return dur
	}
	return time.Millisecond * time.Duration(cfg.UnauthDelayMillis)
}

// FillDefaults returns a new Config identical to cfg but with unset values
// set to their defaults.
func (cfg Config) FillDefaults() Config {
	newCFG := cfg

	if newCFG.DB.Type == "" {
		newCFG.DB = Database{Type: DatabaseInMemory}
	}
	if newCFG.UnauthDelayMillis == 0 {
		newCFG.UnauthDelayMillis = 1000
	}
	if newCFG.MaxBodyBytes == 0 {
		newCFG.MaxBodyBytes = middle.DefaultMaxBodySize
	}
	newCFG.Converter = newCFG.Converter.FillDefaults()

	return newCFG
}

// Validate returns an error if the Config has invalid field values set. Empty
// and unset values are considered invalid; if defaults are intended to be used,
// call Validate on the return value of FillDefaults.
func (cfg Config) Validate() error {
	if err := cfg.DB.Validate(); err != nil {
		return fmt.Errorf("db: %w", err)
	}
	if cfg.MaxBodyBytes < 1 {
		return fmt.Errorf("max body size: must be at least 1 byte, but is %d", cfg.MaxBodyBytes)
	}
	if err := cfg.Converter.Validate(); err != nil {
		return fmt.Errorf("converter: %w", err)
	}

	// all possible values for UnauthDelayMillis are valid, so no need to check it

	return nil
}
