// Package config handles configuration for the credential service: defaults,
// an optional JSON file overlay, then command-line flags.
package config

import (
	"fmt"
	"math"

	"github.com/dmitrijs2005/useraccounts/internal/common"
	"github.com/dmitrijs2005/useraccounts/internal/credential/hasher"
)

// Config holds runtime settings for the credential service.
//
// Fields:
//   - EndpointAddrGRPC: bind address for the gRPC endpoint.
//   - Algorithm: password KDF, "argon2id" or "pbkdf2".
//   - SaltSize: random salt length in bytes, generated per Hash call.
//   - KeyLength: derived hash length in bytes.
//   - Argon2Time / Argon2MemoryKiB / Argon2Threads: argon2id cost parameters.
//   - PBKDF2Iterations: iteration count for pbkdf2.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	EndpointAddrGRPC string
	Algorithm        string
	SaltSize         int
	KeyLength        uint
	Argon2Time       uint
	Argon2MemoryKiB  uint
	Argon2Threads    uint
	PBKDF2Iterations int
	LogLevel         string
}

const (
	maxSaltSize  = 1024
	maxKeyLength = 1024
)

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":50551"
	c.Algorithm = hasher.AlgorithmArgon2id
	c.SaltSize = common.DefaultSaltSize
	c.KeyLength = 32
	c.Argon2Time = 1
	c.Argon2MemoryKiB = 64 * 1024
	c.Argon2Threads = 4
	c.PBKDF2Iterations = 600000
	c.LogLevel = "info"
}

// HasherParams converts the KDF settings for the hasher package.
func (c *Config) HasherParams() hasher.Params {
	return hasher.Params{
		Algorithm:        c.Algorithm,
		KeyLength:        uint32(c.KeyLength),
		SaltSize:         c.SaltSize,
		Argon2Time:       uint32(c.Argon2Time),
		Argon2MemoryKiB:  uint32(c.Argon2MemoryKiB),
		Argon2Threads:    uint8(c.Argon2Threads),
		PBKDF2Iterations: c.PBKDF2Iterations,
	}
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
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values that do not fit the hasher's parameter types.
func (c *Config) Validate() error {
	switch {
	case c.SaltSize < 1 || c.SaltSize > maxSaltSize:
		return fmt.Errorf("salt size must be in [1, %d], got %d", maxSaltSize, c.SaltSize)
	case c.KeyLength < 1 || c.KeyLength > maxKeyLength:
		return fmt.Errorf("key length must be in [1, %d], got %d", maxKeyLength, c.KeyLength)
	case c.Argon2Time > math.MaxUint32:
		return fmt.Errorf("argon2 time must be at most %d, got %d", uint64(math.MaxUint32), c.Argon2Time)
	case c.Argon2MemoryKiB > math.MaxUint32:
		return fmt.Errorf("argon2 memory must be at most %d KiB, got %d", uint64(math.MaxUint32), c.Argon2MemoryKiB)
	case c.Argon2Threads > math.MaxUint8:
		return fmt.Errorf("argon2 threads must be at most %d, got %d", math.MaxUint8, c.Argon2Threads)
	case c.PBKDF2Iterations < 0:
		return fmt.Errorf("pbkdf2 iterations must not be negative, got %d", c.PBKDF2Iterations)
	}
	return nil
}
