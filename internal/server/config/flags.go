package config

import (
	"flag"
	"os"

	"github.com/natekim416/tuckserver/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-k string   classification provider API key
//	-e string   classification provider base URL
//	-m string   classification provider model name
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with the -c/-config flags handled by
// the JSON overlay.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-k", "-e", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.OpenAIAPIKey, "k", config.OpenAIAPIKey, "classification provider API key")
	fs.StringVar(&config.OpenAIBaseURL, "e", config.OpenAIBaseURL, "classification provider base URL")
	fs.StringVar(&config.OpenAIModel, "m", config.OpenAIModel, "classification provider model")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
