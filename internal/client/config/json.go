package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/salesfield/fieldsync/internal/flagx"
	"github.com/salesfield/fieldsync/internal/timex"
)

// JsonConfig is the intermediate DTO for reading JSON configuration files.
// It uses timex.Duration for interval fields, which allows parsing both
// string values such as "3s" and integer nanoseconds.
type JsonConfig struct {
	APIBaseURL          string         `json:"api_base_url"`
	DatabasePath        string         `json:"database_path"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
}

// parseJson loads configuration values from the JSON file named by the
// -c or -config flags, if any. If the file cannot be read or contains
// invalid JSON, the function panics: a present-but-broken config file is a
// deployment error, not a runtime condition to degrade around.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.APIBaseURL != "" {
		config.APIBaseURL = c.APIBaseURL
	}
	if c.DatabasePath != "" {
		config.DatabasePath = c.DatabasePath
	}
	if c.OnlineCheckInterval.Duration != 0 {
		config.OnlineCheckInterval = time.Duration(c.OnlineCheckInterval.Duration)
	}
}
