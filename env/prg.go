//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package env

import (
	"sync"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/chacha20"
)

// PRG implements a deterministic pseudo random generator. Its output
// is the ChaCha20 keystream under a key derived from the seed. PRG is
// safe for concurrent use.
type PRG struct {
	m      sync.Mutex
	cipher *chacha20.Cipher
}

// NewPRG creates a new PRG for the seed.
func NewPRG(seed []byte) (*PRG, error) {
	key := blake2b.Sum256(seed)
	var nonce [chacha20.NonceSize]byte

	cipher, err := chacha20.NewUnauthenticatedCipher(key[:], nonce[:])
	if err != nil {
		return nil, err
	}
	return &PRG{
		cipher: cipher,
	}, nil
}

// Read implements io.Reader.
func (prg *PRG) Read(p []byte) (int, error) {
	prg.m.Lock()
	defer prg.m.Unlock()

	clear(p)
	prg.cipher.XORKeyStream(p, p)
	return len(p), nil
}
