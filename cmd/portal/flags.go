package main

import (
	"flag"
	"io"
)

type globalFlags struct {
	host string
	rest []string
}

func parseGlobal(args []string, stderr io.Writer) (globalFlags, error) {
	fs := flag.NewFlagSet("portal", flag.ContinueOnError)
	fs.SetOutput(stderr)
	host := fs.String("host", "localhost", "hostname the tab is served from; loopback hosts use the local relay")
	if err := fs.Parse(args); err != nil {
		return globalFlags{}, err
	}
	return globalFlags{host: *host, rest: fs.Args()}, nil
}

type loginFlags struct {
	email    string
	password string
}

func parseLogin(args []string, stderr io.Writer, getenv func(string) string) (loginFlags, error) {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(stderr)
	email := fs.String("email", "", "account e-mail")
	password := fs.String("password", "", "account password (defaults to $PORTAL_PASSWORD)")
	if err := fs.Parse(args); err != nil {
		return loginFlags{}, err
	}
	if *password == "" {
		*password = getenv("PORTAL_PASSWORD")
	}
	return loginFlags{email: *email, password: *password}, nil
}

func parseLogout(args []string, stderr io.Writer) (yes bool, err error) {
	fs := flag.NewFlagSet("logout", flag.ContinueOnError)
	fs.SetOutput(stderr)
	assume := fs.Bool("yes", false, "do not ask for confirmation")
	if err := fs.Parse(args); err != nil {
		return false, err
	}
	return *assume, nil
}
