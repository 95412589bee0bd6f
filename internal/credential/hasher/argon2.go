package hasher

import "golang.org/x/crypto/argon2"

// Argon2id is the default KDF.
type Argon2id struct {
	Time      uint32
	MemoryKiB uint32
	Threads   uint8
	KeyLength uint32
}

func (a *Argon2id) Name() string { return AlgorithmArgon2id }

func (a *Argon2id) Derive(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, a.Time, a.MemoryKiB, a.Threads, a.KeyLength)
}
