/*
Rg2nfa converts a regular grammar in linear form into the transition table of
an equivalent non-deterministic finite automaton.

It reads the grammar from GRAMMAR_FILE, decides whether it is left-linear or
right-linear, builds the automaton, and writes its transition table to
OUTPUT_FILE as delimited text. The output file is only written once the whole
conversion has succeeded; on failure no output file is left behind.

Usage:

	rg2nfa [flags] GRAMMAR_FILE OUTPUT_FILE
	rg2nfa [flags] -i OUTPUT_FILE

Each line of the grammar file holds one rule, such as:

	<S> -> a <A> | b
	<A> -> a <A> |
	       b

A line ending with '|' is continued on the next line. The marker 'ε' gives the
empty alternative.

The flags are:

	-v, --version
		Give the current version of rg2nfa and then exit.

	-c, --config FILE
		Load settings from the given TOML config file. Flags given on the
		command line take precedence over the file.

	-d, --delimiter DELIM
		Separate the fields of the output with DELIM instead of ';'.

	--dual POLICY
		What to do with a grammar that mixes left- and right-linear rules.
		POLICY is one of 'reject' (the default), 'right', or 'left'. With
		'right' or 'left', the grammar is built with that construction and
		rules that do not fit it are dropped.

	--undeclared POLICY
		What to do with a reference to a non-terminal that has no rule.
		POLICY is one of 'drop' (the default), which leaves the transition out
		of the table, or 'reject', which fails the conversion.

	-p, --print
		Print the grammar, its symbol sets, and the transition table to stdout
		after converting.

	-i, --interactive
		Read the grammar from stdin instead of a file. Rules are entered one
		per line and a blank line ends entry.

	--direct
		Force reading directly from the console as opposed to using GNU
		readline based routines in interactive mode.

The exit status is 0 on success and 1 on any error, in which case a message is
printed to stderr.
*/
package main

import (
	"fmt"
	"os"

	"github.com/dekarrin/rg2nfa"
	"github.com/dekarrin/rg2nfa/internal/automaton"
	"github.com/dekarrin/rg2nfa/internal/config"
	"github.com/dekarrin/rg2nfa/internal/grammar"
	"github.com/dekarrin/rg2nfa/internal/rgerr"
	"github.com/dekarrin/rg2nfa/internal/version"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitError indicates an unsuccessful program execution.
	ExitError
)

var (
	returnCode int = ExitSuccess

	flagVersion     = pflag.BoolP("version", "v", false, "Give the current version of rg2nfa and then exit.")
	flagConfig      = pflag.StringP("config", "c", "", "Load settings from the given TOML config file.")
	flagDelimiter   = pflag.StringP("delimiter", "d", "", "Separate output fields with the given delimiter.")
	flagDual        = pflag.String("dual", "", "Policy for grammars mixing left- and right-linear rules: reject, right, or left.")
	flagUndeclared  = pflag.String("undeclared", "", "Policy for references to non-terminals with no rule: drop or reject.")
	flagPrint       = pflag.BoolP("print", "p", false, "Print the grammar, its symbol sets, and the transition table.")
	flagInteractive = pflag.BoolP("interactive", "i", false, "Read the grammar from stdin instead of a file.")
	flagDirect      = pflag.Bool("direct", false, "Force reading directly from stdin instead of going through GNU readline.")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	args := pflag.Args()
	wantArgs := 2
	if *flagInteractive {
		wantArgs = 1
	}
	if len(args) != wantArgs {
		if *flagInteractive {
			errorf("expected OUTPUT_FILE\nDo -h for help.")
		} else {
			errorf("expected GRAMMAR_FILE and OUTPUT_FILE\nDo -h for help.")
		}
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		errorf("%s", err.Error())
		return
	}

	conv, err := rg2nfa.New(cfg)
	if err != nil {
		errorf("%s", err.Error())
		return
	}

	if *flagInteractive {
		sess, err := rg2nfa.NewSession(conv, os.Stdin, os.Stdout, *flagDirect)
		if err != nil {
			errorf("%s", err.Error())
			return
		}
		defer sess.Close()

		if err := sess.Run(args[0]); err != nil {
			errorf("%s", rgerr.Detail(err))
		}
		return
	}

	res, err := conv.ConvertFile(args[0], args[1])
	if err != nil {
		errorf("%s", rgerr.Detail(err))
		return
	}

	if *flagPrint {
		fmt.Println(conv.Describe(res))
	}
}

// loadConfig gives the settings from the config file, if one was given, with
// any settings given as flags applied over it.
func loadConfig() (config.Config, error) {
	cfg := config.Default()

	if *flagConfig != "" {
		var err error
		cfg, err = config.Load(*flagConfig)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
	}

	if pflag.Lookup("delimiter").Changed {
		cfg.Format.Delimiter = *flagDelimiter
	}
	if pflag.Lookup("dual").Changed {
		dual, err := grammar.ParseDualPolicy(*flagDual)
		if err != nil {
			return cfg, err
		}
		cfg.Dual = dual
	}
	if pflag.Lookup("undeclared").Changed {
		undecl, err := automaton.ParseUndeclaredPolicy(*flagUndeclared)
		if err != nil {
			return cfg, err
		}
		cfg.Undeclared = undecl
	}

	return cfg, nil
}

// errorPrefix is colored only when stderr is a terminal.
var errorPrefix = newErrorPrefix(isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()))

func newErrorPrefix(colored bool) string {
	c := color.New(color.FgRed, color.Bold)
	if colored {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint("ERROR:")
}

func errorf(format string, a ...interface{}) {
	fmt.Fprintf(os.Stderr, errorPrefix+" "+format+"\n", a...)
	returnCode = ExitError
}
