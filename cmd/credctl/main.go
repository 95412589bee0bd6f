package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/useraccounts/internal/account/credclient"
	"github.com/dmitrijs2005/useraccounts/internal/credctl"
	"github.com/dmitrijs2005/useraccounts/internal/logging"
)

func main() {
	opts, err := credctl.ParseOptions(os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(2)
	}

	client, err := credclient.New(opts.Addr, opts.Timeout, logging.Nop())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	err = credctl.NewApp(client, os.Stdout).Run(context.Background(), opts.Args)
	_ = client.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
