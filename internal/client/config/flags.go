package config

import (
	"flag"
	"os"
	"time"

	"github.com/salesfield/fieldsync/internal/flagx"
)

// parseFlags overlays command-line flags onto config. Only this package's
// flags are parsed; the config-file flags are handled separately by flagx.
//
//	-a string   base URL of the ERP REST backend
//	-d string   path of the local database file
//	-i int      online status check interval (seconds)
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-i"})

	fs := flag.NewFlagSet("config", flag.PanicOnError)

	baseURL := fs.String("a", config.APIBaseURL, "base URL of the ERP REST backend")
	dbPath := fs.String("d", config.DatabasePath, "path of the local database file")
	interval := fs.Int("i", int(config.OnlineCheckInterval/time.Second), "online status check interval (seconds)")

	_ = fs.Parse(args)

	config.APIBaseURL = *baseURL
	config.DatabasePath = *dbPath
	config.OnlineCheckInterval = time.Duration(*interval) * time.Second
}
