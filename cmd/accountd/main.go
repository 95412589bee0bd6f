package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/useraccounts/internal/account"
	"github.com/dmitrijs2005/useraccounts/internal/account/config"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := account.NewApp(cfg, os.Stdout)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		os.Exit(1)
	}
}
