package main

import (
	"context"
	"log"

	"github.com/dkotelnikov/invoicehub/internal/cli"
	"github.com/dkotelnikov/invoicehub/internal/server/config"
)

// The admin CLI creates user accounts directly against the configured
// store, bypassing the web signup form. It accepts the same -d/-c
// configuration as the server.
func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := cli.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.CreateUser(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
