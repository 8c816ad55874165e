// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/crypto/pbkdf2"

	"github.com/jeranaias/deepchat-tui/internal/util"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// sessionKeySize is the AES-256 key size.
	sessionKeySize = 32

	// sessionSeedSize is the size of the random seed the key is derived from.
	sessionSeedSize = 32

	// sessionSaltSize is the size of the derivation salt.
	sessionSaltSize = 32

	// sessionKDFIterations is the PBKDF2-SHA-256 iteration count.
	sessionKDFIterations = 600000
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrNoSession indicates no persisted session exists.
	ErrNoSession = errors.New("no persisted session")

	// ErrSessionCorrupt indicates the session file failed to decrypt.
	// The stored session is useless; the user has to log in again.
	ErrSessionCorrupt = errors.New("persisted session is corrupt")
)

// =============================================================================
// SESSION STORE
// =============================================================================

// SessionStore persists the backend session token encrypted at rest so
// restarting the client does not force a new login.
//
// Layout under the base directory:
//   - session.seed: random seed + salt the encryption key is derived
//     from (0600)
//   - session.enc: AES-256-GCM sealed token, nonce prepended (0600)
//
// The token is only as protected as the seed file's permissions; the
// encryption keeps the token out of accidental plaintext exposure
// (backups, grep) rather than defending against an attacker with full
// file access.
type SessionStore struct {
	dir string
}

// NewSessionStore creates a session store rooted at the given directory.
func NewSessionStore(dir string) *SessionStore {
	return &SessionStore{dir: dir}
}

// NewDefaultSessionStore creates a session store in the deepchat config
// directory.
func NewDefaultSessionStore() (*SessionStore, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("could not determine home directory: %w", err)
	}
	return NewSessionStore(filepath.Join(home, ".deepchat")), nil
}

func (s *SessionStore) seedPath() string  { return filepath.Join(s.dir, "session.seed") }
func (s *SessionStore) tokenPath() string { return filepath.Join(s.dir, "session.enc") }

// Save encrypts and persists the session token.
func (s *SessionStore) Save(token string) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	key, err := s.loadOrCreateKey()
	if err != nil {
		return err
	}
	defer zeroBytes(key)

	aead, err := newAEAD(key)
	if err != nil {
		return err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := aead.Seal(nonce, nonce, []byte(token), nil)

	// RELIABILITY: Atomic write with fsync prevents data loss on crash
	if err := util.AtomicWriteFile(s.tokenPath(), sealed, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Load decrypts and returns the persisted session token. Returns
// ErrNoSession when nothing is stored and ErrSessionCorrupt when the
// stored data fails to decrypt.
func (s *SessionStore) Load() (string, error) {
	sealed, err := os.ReadFile(s.tokenPath())
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoSession
		}
		return "", fmt.Errorf("failed to read session file: %w", err)
	}

	key, err := s.loadKey()
	if err != nil {
		if errors.Is(err, ErrNoSession) {
			return "", ErrSessionCorrupt
		}
		return "", err
	}
	defer zeroBytes(key)

	aead, err := newAEAD(key)
	if err != nil {
		return "", err
	}

	if len(sealed) < aead.NonceSize() {
		return "", ErrSessionCorrupt
	}
	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]

	token, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", ErrSessionCorrupt
	}
	return string(token), nil
}

// Clear removes the persisted session. Clearing an absent session is
// not an error.
func (s *SessionStore) Clear() error {
	if err := os.Remove(s.tokenPath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	if err := os.Remove(s.seedPath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session seed: %w", err)
	}
	return nil
}

// =============================================================================
// KEY MANAGEMENT
// =============================================================================

// loadOrCreateKey returns the derived encryption key, generating fresh
// seed material on first use.
func (s *SessionStore) loadOrCreateKey() ([]byte, error) {
	key, err := s.loadKey()
	if err == nil {
		return key, nil
	}
	if !errors.Is(err, ErrNoSession) {
		return nil, err
	}

	material := make([]byte, sessionSeedSize+sessionSaltSize)
	if _, err := io.ReadFull(rand.Reader, material); err != nil {
		return nil, fmt.Errorf("failed to generate session seed: %w", err)
	}

	if err := util.AtomicWriteFile(s.seedPath(), material, 0600); err != nil {
		return nil, fmt.Errorf("failed to write session seed: %w", err)
	}
	return deriveSessionKey(material), nil
}

// loadKey derives the encryption key from the stored seed material.
func (s *SessionStore) loadKey() ([]byte, error) {
	material, err := os.ReadFile(s.seedPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("failed to read session seed: %w", err)
	}
	if len(material) != sessionSeedSize+sessionSaltSize {
		return nil, ErrSessionCorrupt
	}
	return deriveSessionKey(material), nil
}

// deriveSessionKey derives the AES key from seed material with
// PBKDF2-SHA-256.
func deriveSessionKey(material []byte) []byte {
	seed, salt := material[:sessionSeedSize], material[sessionSeedSize:]
	return pbkdf2.Key(seed, salt, sessionKDFIterations, sessionKeySize, sha256.New)
}

// newAEAD constructs the AES-256-GCM cipher.
func newAEAD(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create AEAD: %w", err)
	}
	return aead, nil
}

// zeroBytes securely zeros sensitive byte slices.
// SECURITY: Zero key material to prevent memory disclosure via crash dumps.
func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
