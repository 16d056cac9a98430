package config

import (
	"flag"
	"os"
	"time"

	"github.com/CloudTigerx/password-manager/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-d string   path to the vault database file (default from Config)
//	-t int      session inactivity timeout in minutes (default from Config)
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "path to the vault database file")
	timeoutMinutes := fs.Int("t", int(cfg.SessionTimeout.Minutes()), "session inactivity timeout (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.SessionTimeout = time.Duration(*timeoutMinutes) * time.Minute
}
