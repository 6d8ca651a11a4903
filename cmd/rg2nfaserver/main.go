/*
Rg2nfaserver starts an rg2nfa server and begins listening for new connections.

Usage:

	rg2nfaserver [flags]
	rg2nfaserver [flags] -l [[ADDRESS]:PORT]

Once started, the server will listen for HTTP requests and respond to them
using REST protocol. Clients send grammars to be converted and get back the
transition tables of the resulting automata. By default, it will listen on
localhost:8080. This can be changed with the --listen/-l flag (or config via
environment var). The flag argument must be either a full address with port,
such as "192.168.0.2:6001", or just the port preceded by a colon, such as
":6001".

The flags are:

	-v, --version
		Give the current version of the rg2nfa server and then exit.

	-l, --listen LISTEN_ADDRESS
		Listen on the given address. Must be in BIND_ADDRESS:PORT or :PORT
		format. If not given, will default to the value of environment variable
		RG2NFA_LISTEN_ADDRESS, and if that is not given, will default to the
		address in the config file or localhost:8080.

	--db DRIVER[:PARAMS]
		Use the given DB connection string. DRIVER must be one of the following:
		inmem, sqlite. inmem has no further params. sqlite needs the path to the
		data directory such as sqlite:path/to/db_dir. If not given, will default
		to the value of environment variable RG2NFA_DATABASE, and if that is not
		given, to the database in the config file. If none is specified, an
		in-memory database is automatically selected.

	-c, --config FILE
		Load settings from the given TOML config file. The conversion settings
		in it are used for every grammar the server converts.
*/
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dekarrin/rg2nfa/internal/config"
	"github.com/dekarrin/rg2nfa/internal/version"
	"github.com/dekarrin/rg2nfa/server"
	"github.com/spf13/pflag"
)

const (
	EnvListen = "RG2NFA_LISTEN_ADDRESS"
	EnvDB     = "RG2NFA_DATABASE"
)

var (
	flagVersion = pflag.BoolP("version", "v", false, "Give the current version of the rg2nfa server and then exit.")
	flagListen  = pflag.StringP("listen", "l", "", "Listen on the given address.")
	flagDB      = pflag.String("db", "", "Use the given DB connection string.")
	flagConfig  = pflag.StringP("config", "c", "", "Load settings from the given TOML config file.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s (rg2nfa v%s)\n", version.ServerCurrent, version.Current)
		return
	}

	args := pflag.Args()

	if len(args) > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		os.Exit(1)
	}

	convCfg := config.Default()
	if *flagConfig != "" {
		var err error
		convCfg, err = config.Load(*flagConfig)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not load config: %s\n", err.Error())
			os.Exit(1)
		}
	}

	// get address info
	listenAddr := convCfg.Listen
	if envListen := os.Getenv(EnvListen); envListen != "" {
		listenAddr = envListen
	}
	if pflag.Lookup("listen").Changed {
		listenAddr = *flagListen
	}
	if !strings.Contains(listenAddr, ":") {
		fmt.Fprintf(os.Stderr, "Listen address is not in ADDRESS:PORT or :PORT format.\nDo -h for help.\n")
		os.Exit(1)
	}

	// look at db connection string
	dbConnStr := convCfg.Database
	if envDB := os.Getenv(EnvDB); envDB != "" {
		dbConnStr = envDB
	}
	if pflag.Lookup("db").Changed {
		dbConnStr = *flagDB
	}

	// assemble a server config
	cfg := server.Config{Converter: convCfg}
	if dbConnStr != "" {
		db, err := server.ParseDBConnString(dbConnStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Not a valid DB string: %s\nDo -h for help.\n", err.Error())
			os.Exit(1)
		}
		cfg.DB = db
	}

	// configuration complete, initialize the server
	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("FATAL could not start server: %s", err.Error())
	}
	defer srv.Close()
	log.Printf("DEBUG Server initialized with DB %s", cfg.FillDefaults().DB)

	// okay, now actually launch it
	log.Printf("INFO  Starting rg2nfa server %s...", version.ServerCurrent)
	srv.ServeForever(listenAddr)
}
