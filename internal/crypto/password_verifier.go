// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

// argon2Verifier is the private implementation of [PasswordVerifier].
type argon2Verifier struct {
	// Argon2id tuning parameters. Stored in the struct so tests can use
	// cheaper settings.
	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8
	argonKeyLen  uint32

	salt []byte
	hash []byte
	open bool
}

// NewPasswordVerifier hashes password with Argon2id using the parameters
// recommended by OWASP (2024):
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
//   - key length:  32 bytes (256 bits)
//
// An empty password builds a verifier that accepts everything.
func NewPasswordVerifier(password string) (PasswordVerifier, error) {
	return newArgon2Verifier(password, 1, 64*1024, 4, 32)
}

func newArgon2Verifier(password string, time, memory uint32, threads uint8, keyLen uint32) (*argon2Verifier, error) {
	v := &argon2Verifier{
		argonTime:    time,
		argonMemory:  memory,
		argonThreads: threads,
		argonKeyLen:  keyLen,
	}

	if password == "" {
		v.open = true
		return v, nil
	}

	salt, err := generateSalt()
	if err != nil {
		return nil, fmt.Errorf("generate password salt: %w", err)
	}
	v.salt = salt
	v.hash = v.derive(password)

	return v, nil
}

// Verify implements [PasswordVerifier]. The comparison takes the same time
// whatever the candidate, so the password cannot be guessed byte by byte.
func (v *argon2Verifier) Verify(candidate string) bool {
	if v.open {
		return true
	}
	return subtle.ConstantTimeCompare(v.derive(candidate), v.hash) == 1
}

func (v *argon2Verifier) Open() bool {
	return v.open
}

func (v *argon2Verifier) derive(password string) []byte {
	return argon2.IDKey(
		[]byte(password),
		v.salt,
		v.argonTime,
		v.argonMemory,
		v.argonThreads,
		v.argonKeyLen,
	)
}

// generateSalt reads 16 random bytes from the OS CSPRNG.
func generateSalt() ([]byte, error) {
	salt := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	return salt, nil
}
