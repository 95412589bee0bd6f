package config

import (
	"flag"

	"github.com/dmitrijs2005/useraccounts/internal/flagx"
)

// parseFlags overlays Config fields from command-line flags.
//
//	-a string     HTTP bind address (e.g. ":8080")
//	-g string     credential service address
//	-r duration   per-call RPC timeout
//	-s string     JWT secret
//	-t duration   session token validity
//	-w duration   shutdown grace period
//	-l string     log level
//	-seed         create the demo users at startup
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-g", "-r", "-s", "-t", "-w", "-l", "-seed"}, "-seed")

	fs := flag.NewFlagSet("accountd", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.CredentialServiceAddr, "g", config.CredentialServiceAddr, "credential service address")
	fs.DurationVar(&config.RPCTimeout, "r", config.RPCTimeout, "credential service call timeout")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key for session tokens")
	fs.DurationVar(&config.AccessTokenValidityDuration, "t", config.AccessTokenValidityDuration, "session token validity")
	fs.DurationVar(&config.ShutdownTimeout, "w", config.ShutdownTimeout, "shutdown grace period")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.BoolVar(&config.SeedUsers, "seed", config.SeedUsers, "create demo users at startup")

	return fs.Parse(args)
}
