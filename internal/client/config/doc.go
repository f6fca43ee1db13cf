// Package config loads runtime configuration for the fieldsync companion
// client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the ERP REST backend
//	-d string   path of the local database file
//	-i int      online status check interval (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be
// either strings like "3s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://erp.example.com/api",
//	  "database_path": "fieldsync.db",
//	  "online_check_interval": "3s"
//	}
//
// An empty APIBaseURL is resolved at startup through ResolveBaseURL's
// deployment chain (emulator loopback alias, localhost, hostname).
package config
