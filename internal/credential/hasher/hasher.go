// Package hasher implements the password hashing behind the credential
// service: a random salt per Hash call, a configurable key derivation
// function, and constant-time verification.
package hasher

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/useraccounts/internal/common"
)

const (
	AlgorithmArgon2id = "argon2id"
	AlgorithmPBKDF2   = "pbkdf2"
)

var ErrUnknownAlgorithm = errors.New("unknown hashing algorithm")

// KDF derives a fixed-length key from a password and a salt.
type KDF interface {
	Name() string
	Derive(password, salt []byte) []byte
}

// Params selects and tunes the KDF.
type Params struct {
	Algorithm        string
	KeyLength        uint32
	SaltSize         int
	Argon2Time       uint32
	Argon2MemoryKiB  uint32
	Argon2Threads    uint8
	PBKDF2Iterations int
}

// NewKDF builds the KDF named by p.Algorithm.
func NewKDF(p Params) (KDF, error) {
	if p.KeyLength == 0 {
		return nil, fmt.Errorf("key length must be positive")
	}
	switch p.Algorithm {
	case AlgorithmArgon2id:
		if p.Argon2Time == 0 || p.Argon2MemoryKiB == 0 || p.Argon2Threads == 0 {
			return nil, fmt.Errorf("argon2id: time, memory and threads must be positive")
		}
		return &Argon2id{Time: p.Argon2Time, MemoryKiB: p.Argon2MemoryKiB, Threads: p.Argon2Threads, KeyLength: p.KeyLength}, nil
	case AlgorithmPBKDF2:
		if p.PBKDF2Iterations <= 0 {
			return nil, fmt.Errorf("pbkdf2: iterations must be positive")
		}
		return &PBKDF2{Iterations: p.PBKDF2Iterations, KeyLength: int(p.KeyLength)}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, p.Algorithm)
}

// Service hashes and verifies passwords. It is safe for concurrent use.
type Service struct {
	kdf      KDF
	saltSize int
}

// NewService returns a Service salting with saltSize random bytes; zero
// selects common.DefaultSaltSize.
func NewService(kdf KDF, saltSize int) *Service {
	if saltSize <= 0 {
		saltSize = common.DefaultSaltSize
	}
	return &Service{kdf: kdf, saltSize: saltSize}
}

// Algorithm reports the name of the underlying KDF.
func (s *Service) Algorithm() string {
	return s.kdf.Name()
}

// Hash derives a hash of password under a freshly generated salt.
func (s *Service) Hash(password []byte) (hash, salt []byte, err error) {
	if len(password) == 0 {
		return nil, nil, common.ErrorValidation
	}
	salt = common.GenerateRandByteArray(s.saltSize)
	return s.kdf.Derive(password, salt), salt, nil
}

// Validate reports whether password hashes to expected under salt.
func (s *Service) Validate(password, expected, salt []byte) bool {
	if len(expected) == 0 || len(salt) == 0 {
		return false
	}
	candidate := s.kdf.Derive(password, salt)
	return subtle.ConstantTimeCompare(candidate, expected) == 1
}
