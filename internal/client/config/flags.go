package config

import (
	"flag"
	"os"
	"time"

	"github.com/confsync/confsync/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-u string   base URL of the conference API (default from Config)
//	-d string   path of the local cache database
//	-f string   API family, "current" or "legacy"
//	-r int      retry attempts for transport errors
//	-t int      fetch timeout in seconds
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with subcommand flags.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-u", "-d", "-f", "-r", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BaseURL, "u", cfg.BaseURL, "base URL of the conference API")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local cache database")
	fs.StringVar(&cfg.APIFamily, "f", cfg.APIFamily, "API family: current or legacy")
	fs.IntVar(&cfg.FetchRetries, "r", cfg.FetchRetries, "retry attempts for transport errors")
	fetchTimeout := fs.Int("t", int(cfg.FetchTimeout.Seconds()), "fetch timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.FetchTimeout = time.Duration(*fetchTimeout) * time.Second
}
