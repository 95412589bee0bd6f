package hasher

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"
)

// PBKDF2 is PBKDF2-HMAC-SHA256.
type PBKDF2 struct {
	Iterations int
	KeyLength  int
}

func (p *PBKDF2) Name() string { return AlgorithmPBKDF2 }

func (p *PBKDF2) Derive(password, salt []byte) []byte {
	return pbkdf2.Key(password, salt, p.Iterations, p.KeyLength, sha256.New)
}
