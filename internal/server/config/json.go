package config

import (
	"encoding/json"
	"os"

	"github.com/natekim416/tuckserver/internal/flagx"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It is an intermediate DTO used only for reading JSON
// configuration files; after unmarshalling, its fields are copied into the
// runtime Config struct.
type JsonConfig struct {
	EndpointAddrHTTP string `json:"endpoint_addr_http"`
	DatabaseDSN      string `json:"database_dsn"`
	SecretKey        string `json:"secret_key"`
	OpenAIAPIKey     string `json:"openai_api_key"`
	OpenAIBaseURL    string `json:"openai_base_url"`
	OpenAIModel      string `json:"openai_model"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The JSON file path is taken from the -c or -config command-line flags.
// If neither is set, no JSON file is loaded. If the file cannot be read or
// contains invalid JSON, the function panics: a half-applied config file is
// worse than an early crash.
//
// Only non-empty values from the file override the target Config, so the
// overlay composes with defaults and later flag/env passes.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(data, c); err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.OpenAIAPIKey != "" {
		config.OpenAIAPIKey = c.OpenAIAPIKey
	}
	if c.OpenAIBaseURL != "" {
		config.OpenAIBaseURL = c.OpenAIBaseURL
	}
	if c.OpenAIModel != "" {
		config.OpenAIModel = c.OpenAIModel
	}
}
