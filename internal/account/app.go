// Package account assembles the user account service: the in-memory user
// registry, the credential service client and the HTTP user resource.
package account

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/useraccounts/internal/account/api"
	"github.com/dmitrijs2005/useraccounts/internal/account/config"
	"github.com/dmitrijs2005/useraccounts/internal/account/credclient"
	"github.com/dmitrijs2005/useraccounts/internal/account/registry"
	"github.com/dmitrijs2005/useraccounts/internal/account/users"
	"github.com/dmitrijs2005/useraccounts/internal/logging"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	registry    *registry.Registry
	credentials *credclient.Client
	users       *users.Service
	server      *api.Server
}

// NewApp wires the service together. Logs go to w. Nothing is contacted
// until Run.
func NewApp(c *config.Config, w io.Writer) (*App, error) {
	logger, err := logging.NewJSONLogger(w, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	creds, err := credclient.New(c.CredentialServiceAddr, c.RPCTimeout, logger)
	if err != nil {
		return nil, fmt.Errorf("credential client init error: %w", err)
	}

	reg := registry.New(logger)
	svc := users.NewService(reg, creds, c.SecretKey, c.AccessTokenValidityDuration, logger)

	return &App{
		config:      c,
		logger:      logger,
		registry:    reg,
		credentials: creds,
		users:       svc,
		server:      api.NewServer(c.EndpointAddrHTTP, svc, c.ShutdownTimeout, logger),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// closes the registry and the credential client.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	defer app.registry.Close()
	defer func() {
		if err := app.credentials.Close(); err != nil {
			app.logger.Warn(ctx, "credential client close", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting account service...", "credential_service", app.config.CredentialServiceAddr)

	app.initSignalHandler(cancelFunc)

	if app.config.SeedUsers {
		// a credential service that is still starting should not keep the
		// HTTP resource down
		if err := app.users.Seed(ctx, users.DefaultSeedUsers); err != nil {
			app.logger.Error(ctx, "Seeding users failed", "error", err)
		}
	}

	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		return err
	}
	return nil
}
