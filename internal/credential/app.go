// Package credential assembles the credential service: it hashes and
// verifies passwords for the account service over gRPC and keeps no state
// between calls.
package credential

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/useraccounts/internal/credential/config"
	gs "github.com/dmitrijs2005/useraccounts/internal/credential/grpc"
	"github.com/dmitrijs2005/useraccounts/internal/credential/hasher"
	"github.com/dmitrijs2005/useraccounts/internal/logging"
)

type App struct {
	config *config.Config
	logger logging.Logger
	server *gs.GRPCServer
}

// NewApp validates cfg and builds the service. Logs go to w.
func NewApp(c *config.Config, w io.Writer) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	logger, err := logging.NewJSONLogger(w, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	kdf, err := hasher.NewKDF(c.HasherParams())
	if err != nil {
		return nil, fmt.Errorf("hasher init error: %w", err)
	}
	svc := hasher.NewService(kdf, c.SaltSize)

	logger.Info(context.Background(), "Password hashing configured", "algorithm", svc.Algorithm(), "salt_size", c.SaltSize)

	return &App{
		config: c,
		logger: logger,
		server: gs.NewGRPCServer(c.EndpointAddrGRPC, logger, svc),
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

// Run serves until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting credential service...")

	app.initSignalHandler(cancelFunc)

	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		return err
	}
	return nil
}
