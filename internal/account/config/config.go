// Package config handles configuration for the account service, including
// defaults, an optional JSON overlay, and command-line flags.
package config

import (
	"time"

	"github.com/dmitrijs2005/useraccounts/internal/account/credclient"
)

// Config holds runtime settings for the account service.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the HTTP user resource.
//   - CredentialServiceAddr: gRPC address of the credential service.
//   - RPCTimeout: deadline applied to each credential service call.
//   - SecretKey: HMAC secret for signing session JWTs (HS256). Do not use the
//     default outside development.
//   - AccessTokenValidityDuration: session token lifetime.
//   - ShutdownTimeout: grace period for in-flight HTTP requests on shutdown.
//   - SeedUsers: create the demo users at startup.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	EndpointAddrHTTP            string
	CredentialServiceAddr       string
	RPCTimeout                  time.Duration
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	ShutdownTimeout             time.Duration
	SeedUsers                   bool
	LogLevel                    string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.CredentialServiceAddr = "localhost:50551"
	c.RPCTimeout = credclient.DefaultTimeout
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 15 * time.Minute
	c.ShutdownTimeout = 10 * time.Second
	c.SeedUsers = false
	c.LogLevel = "info"
}

// LoadConfig builds a Config from defaults, then the JSON file named by
// -c/-config (if any), then the remaining flags in args.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
