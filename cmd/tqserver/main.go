/*
Tqserver starts an interpreter server and begins listening for new connections.

Usage:

	tqserver [flags]
	tqserver [flags] -l [[ADDRESS]:PORT]

Once started, the server will listen for HTTP requests and respond to them using
REST protocol. By default, it will listen on localhost:8080. This can be changed
with the --listen/-l flag (or config via environment var). The flag argument
must be either a full address with port, such as "192.168.0.2:6001", or just the
IP address preceeded by a colon, such as ":6001".

If a JWT token secret is not given, one will be automatically generated. As a
consequence, in this mode of operation all tokens are rendered invalid as soon
as the server shuts down. This is suitable for testing, but must be given via
either CLI flags or environment variable if running in production.

The flags are:

	-v, --version
		Give the current version of the server and then exit.

	-l, --listen LISTEN_ADDRESS
		Listen on the given address. Must be in BIND_ADDRESS:PORT or :PORT
		format. If not given, will default to the value of environment variable
		TQINTERP_LISTEN_ADDRESS, and if that is not given, will default to
		localhost:8080.

	-s, --secret TOKEN_SECRET
		Use the provided secret for signing JWT tokens. If there are less than
		32 bytes in the secret, it will be repeated until it is. The maximum
		size is 64 bytes. If not given, will default to the value of environment
		variable TQINTERP_TOKEN_SECRET. If no secret is specified or an empty
		secret is given, a random secret will be automatically generated.

	--db DRIVER[:PARAMS]
		Use the given DB connection string. DRIVER must be one of the following:
		inmem, sqlite. inmem has no further params. sqlite needs the path to the
		data directory such as sqlite:path/to/db_dir. If not given, will default
		to the value of environment variable TQINTERP_DATABASE. If no DB driver
		is specified, an in-memory database is automatically selected.

	-g, --glossary FILE
		Interpret commands with the glossary in the given TUNA file, which may
		be a GLOSSARY or a MANIFEST. If not given, will default to the value of
		environment variable TQINTERP_GLOSSARY, and if that is not given, the
		built-in glossary is used.
*/
package main

import (
	"crypto/rand"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/dekarrin/tqinterp/internal/version"
	"github.com/dekarrin/tqinterp/server"
	"github.com/spf13/pflag"
)

const (
	EnvListen   = "TQINTERP_LISTEN_ADDRESS"
	EnvSecret   = "TQINTERP_TOKEN_SECRET"
	EnvDB       = "TQINTERP_DATABASE"
	EnvGlossary = "TQINTERP_GLOSSARY"
)

var (
	flagVersion  = pflag.BoolP("version", "v", false, "Give the current version of the server and then exit.")
	flagListen   = pflag.StringP("listen", "l", "", "Listen on the given address.")
	flagSecret   = pflag.StringP("secret", "s", "", "Use the given secret for token generation.")
	flagDB       = pflag.String("db", "", "Use the given DB connection string.")
	flagGlossary = pflag.StringP("glossary", "g", "", "Interpret commands with the glossary in the given TUNA file.")
)

// flagOrEnv gives the value of the named flag if it was set on the command
// line, or the value of the environment variable otherwise.
func flagOrEnv(name string, val *string, env string) string {
	if pflag.Lookup(name).Changed {
		return *val
	}
	return os.Getenv(env)
}

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s (tqinterp v%s)\n", version.ServerCurrent, version.Current)
		return
	}

	if len(pflag.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		os.Exit(1)
	}

	// get address info
	port := 0
	addr := ""
	if listenAddr := flagOrEnv("listen", flagListen, EnvListen); listenAddr != "" {
		bindParts := strings.SplitN(listenAddr, ":", 2)
		if len(bindParts) != 2 {
			fmt.Fprintf(os.Stderr, "Listen address is not in ADDRESS:PORT or :PORT format.\nDo -h for help.\n")
			os.Exit(1)
		}

		var err error

		addr = bindParts[0]
		port, err = strconv.Atoi(bindParts[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "%q is not a valid port number.\nDo -h for help.\n", bindParts[1])
			os.Exit(1)
		}
	}

	// assemble a server config
	var cfg server.Config

	if dbConnStr := flagOrEnv("db", flagDB, EnvDB); dbConnStr != "" {
		db, err := server.ParseDBConnString(dbConnStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Not a valid DB string: %s\nDo -h for help.\n", err)
			os.Exit(1)
		}
		cfg.DB = db
	}

	cfg.Glossary = server.Glossary{Path: flagOrEnv("glossary", flagGlossary, EnvGlossary)}

	// get token secret
	if tokSecStr := flagOrEnv("secret", flagSecret, EnvSecret); tokSecStr != "" {
		tokSecret, err := server.ParseTokenSecret(tokSecStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s\nDo -h for help.\n", err)
			os.Exit(1)
		}
		cfg.TokenSecret = tokSecret
	} else {
		// use all 64 possible bytes if doing a generated secret
		cfg.TokenSecret = make([]byte, server.MaxSecretSize)
		_, err := rand.Read(cfg.TokenSecret)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not generate token secret: %s\n", err.Error())
			os.Exit(1)
		}

		// yell at the user bc they should know their secret might be bad
		log.Printf("WARN  Using generated token secret; all tokens issued will become invalid at shutdown")
	}

	// configuration complete, initialize the server
	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("FATAL could not start server: %s", err.Error())
	}
	defer srv.Close()
	log.Printf("DEBUG Server initialized")

	log.Printf("INFO  Starting tqinterp server %s...", version.ServerCurrent)
	srv.ServeForever(addr, port)
}
