package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/useraccounts/internal/credential"
	"github.com/dmitrijs2005/useraccounts/internal/credential/config"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := credential.NewApp(cfg, os.Stdout)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		os.Exit(1)
	}
}
