package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/useraccounts/internal/flagx"
)

// JsonConfig mirrors Config for JSON files. Pointer fields tell an absent
// key apart from a zero value, so a partial file only overrides what it names.
type JsonConfig struct {
	EndpointAddrGRPC *string `json:"endpoint_addr_grpc"`
	Algorithm        *string `json:"algorithm"`
	SaltSize         *int    `json:"salt_size"`
	KeyLength        *uint   `json:"key_length"`
	Argon2Time       *uint   `json:"argon2_time"`
	Argon2MemoryKiB  *uint   `json:"argon2_memory_kib"`
	Argon2Threads    *uint   `json:"argon2_threads"`
	PBKDF2Iterations *int    `json:"pbkdf2_iterations"`
	LogLevel         *string `json:"log_level"`
}

// parseJSON loads the file named by -c/-config into config. No flag, no file.
func parseJSON(config *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	set(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	set(&config.Algorithm, c.Algorithm)
	set(&config.SaltSize, c.SaltSize)
	set(&config.KeyLength, c.KeyLength)
	set(&config.Argon2Time, c.Argon2Time)
	set(&config.Argon2MemoryKiB, c.Argon2MemoryKiB)
	set(&config.Argon2Threads, c.Argon2Threads)
	set(&config.PBKDF2Iterations, c.PBKDF2Iterations)
	set(&config.LogLevel, c.LogLevel)

	return nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
