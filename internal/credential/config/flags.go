package config

import (
	"flag"

	"github.com/dmitrijs2005/useraccounts/internal/flagx"
)

// parseFlags overlays Config fields from command-line flags.
//
//	-a string   gRPC bind address (e.g. ":50551")
//	-h string   hashing algorithm: argon2id | pbkdf2
//	-s int      salt size, bytes
//	-k uint     derived key length, bytes
//	-t uint     argon2id time cost
//	-m uint     argon2id memory cost, KiB
//	-p uint     argon2id parallelism
//	-i int      pbkdf2 iterations
//	-l string   log level
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-h", "-s", "-k", "-t", "-m", "-p", "-i", "-l"})

	fs := flag.NewFlagSet("credentiald", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.Algorithm, "h", config.Algorithm, "hashing algorithm (argon2id, pbkdf2)")
	fs.IntVar(&config.SaltSize, "s", config.SaltSize, "salt size in bytes")
	fs.UintVar(&config.KeyLength, "k", config.KeyLength, "derived key length in bytes")
	fs.UintVar(&config.Argon2Time, "t", config.Argon2Time, "argon2id time cost")
	fs.UintVar(&config.Argon2MemoryKiB, "m", config.Argon2MemoryKiB, "argon2id memory cost (KiB)")
	fs.UintVar(&config.Argon2Threads, "p", config.Argon2Threads, "argon2id parallelism")
	fs.IntVar(&config.PBKDF2Iterations, "i", config.PBKDF2Iterations, "pbkdf2 iterations")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	return fs.Parse(args)
}
