package config

import (
	"fmt"
	"os"
)

const (
	// emulatorLoopback is the loopback alias a mobile emulator exposes for
	// the host machine.
	emulatorLoopback = "10.0.2.2"

	developmentPort = 8080
	productionPort  = 3000
)

// ResolveBaseURL resolves the API base address by a fixed priority order:
// the explicitly configured URL, else the emulator loopback alias when
// running inside an emulator, else localhost on a developer machine, else
// the machine's hostname on the production port. This is a deployment
// concern; everything past the first branch only matters for unconfigured
// environments.
func ResolveBaseURL(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if os.Getenv("FIELDSYNC_EMULATOR") != "" {
		return fmt.Sprintf("http://%s:%d", emulatorLoopback, developmentPort)
	}
	if os.Getenv("FIELDSYNC_DEV") != "" {
		return fmt.Sprintf("http://localhost:%d", developmentPort)
	}
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "localhost"
	}
	return fmt.Sprintf("http://%s:%d", host, productionPort)
}
