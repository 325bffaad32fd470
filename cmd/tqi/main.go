/*
Tqi starts an interactive command interpreter session.

It reads in a glossary file and then reads player input from stdin, printing
what each line does to stdout, until input ends or the "QUIT" command is given.

Usage:

	tqi [flags]

The flags are:

	-v, --version
		Give the current version of the interpreter and then exit.

	-g, --glossary FILE
		Use the provided TUNA glossary or manifest file for the words the
		interpreter understands. If not given, will default to the value of
		environment variable TQINTERP_GLOSSARY, and if that is not given, the
		built-in glossary is used.

	-d, --direct
		Force reading directly from the console as opposed to using GNU readline
		based routines for reading input even if launched in a tty with stdin
		and stdout.

Once a session has started, type "HELP" for a list of the verbs and commands
that the glossary defines. To exit the interpreter, type "QUIT".
*/
package main

import (
	"fmt"
	"os"

	"github.com/dekarrin/tqinterp"
	"github.com/dekarrin/tqinterp/internal/version"
	"github.com/spf13/pflag"
)

const (

	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitSessionError indicates an unsuccessful program execution due to a
	// problem during the session.
	ExitSessionError

	// ExitInitError indicates an unsuccessful program execution due to an issue
	// initializing the engine.
	ExitInitError
)

const EnvGlossary = "TQINTERP_GLOSSARY"

var (
	returnCode   int = ExitSuccess
	flagVersion      = pflag.BoolP("version", "v", false, "Give the current version of the interpreter and then exit.")
	flagGlossary     = pflag.StringP("glossary", "g", "", "The TUNA glossary or manifest file that defines the words the interpreter understands.")
	flagDirect       = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of going through GNU readline where possible.")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			// we are panicking, make sure we dont lose the panic just because
			// we checked
			panic(panicErr)
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	if len(pflag.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		returnCode = ExitInitError
		return
	}

	glossaryFile := os.Getenv(EnvGlossary)
	if pflag.Lookup("glossary").Changed {
		glossaryFile = *flagGlossary
	}

	eng, initErr := tqinterp.New(os.Stdin, os.Stdout, glossaryFile, *flagDirect)
	if initErr != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", initErr.Error())
		returnCode = ExitInitError
		return
	}
	defer eng.Close()

	err := eng.RunUntilQuit()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitSessionError
		return
	}
}
