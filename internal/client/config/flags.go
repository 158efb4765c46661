package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/eventportal/internal/flagx"
)

// ValueFlags lists the flags that consume a value; the CLI uses it to find
// its positional command arguments.
var ValueFlags = []string{"-a", "-p", "-t", "-c", "-config"}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the portal server
//	-p string   path of the local profile database
//	-t int      request timeout in seconds
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-p", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the portal server")
	fs.StringVar(&cfg.ProfilePath, "p", cfg.ProfilePath, "local profile database")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
