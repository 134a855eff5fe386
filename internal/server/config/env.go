package config

import "os"

// parseEnv overlays environment variables onto the Config. Environment wins
// over flags and the JSON file so that deployment environments can override
// anything baked into images or unit files.
func parseEnv(config *Config) {
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		config.EndpointAddrHTTP = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		config.SecretKey = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		config.OpenAIAPIKey = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		config.OpenAIBaseURL = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		config.OpenAIModel = v
	}
}
