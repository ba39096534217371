// Command portal drives the client core from a terminal: sign in against the
// backend, inspect the stored session and run the page guard.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/jrsteele09/afterschool-portal/internal/bootstrap"
	"github.com/jrsteele09/afterschool-portal/internal/config"
	"github.com/rs/zerolog/log"
)

const usage = `usage: portal [-host name] <command> [flags]

commands:
  login -email address [-password secret]   sign in and store the session
  whoami                                    show the stored session
  check <login|index|admin|teacher|student> run the page guard for a page
  logout [-yes]                             drop the stored session
`

// errRedirected is returned by check when the guard moved the tab.
var errRedirected = errors.New("redirected")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	switch {
	case err == nil:
	case errors.Is(err, errRedirected):
		os.Exit(2)
	default:
		fmt.Fprintln(os.Stderr, "portal:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := config.New()
	if err != nil {
		return err
	}
	bootstrap.ConfigureLogging(cfg, stderr)

	global, err := parseGlobal(args, stderr)
	if err != nil {
		return err
	}
	if len(global.rest) == 0 {
		fmt.Fprint(stderr, usage)
		return errors.New("missing command")
	}

	kv, closeStore, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Err(err).Msg("Failed to close storage")
		}
	}()

	a := &app{cfg: cfg, kv: kv, host: global.host, in: stdin, out: stdout, errOut: stderr}
	command, rest := global.rest[0], global.rest[1:]
	switch command {
	case "login":
		return a.login(ctx, rest)
	case "whoami":
		return a.whoami(ctx)
	case "check":
		return a.check(ctx, rest)
	case "logout":
		return a.logout(ctx, rest)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return nil
	}
	fmt.Fprint(stderr, usage)
	return fmt.Errorf("unknown command %q", command)
}
