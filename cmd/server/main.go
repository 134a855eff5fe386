package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/natekim416/tuckserver/internal/server"
	"github.com/natekim416/tuckserver/internal/server/config"
)

func main() {

	// A missing .env file is fine, the environment itself still applies.
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
