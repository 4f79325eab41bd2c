package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/99designs/keyring"
)

const (
	keyringService  = "syntra"
	apiTokenAccount = "api_token"
)

// SecretStore holds values that must not be written to the config file.
type SecretStore interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error
}

// ErrSecretNotFound is returned by SecretStore.Get for missing keys.
var ErrSecretNotFound = errors.New("secret not found")

// Keyring is a SecretStore backed by the system keyring, falling back to an
// encrypted file under the data directory where no keyring daemon exists.
type Keyring struct {
	cfg keyring.Config
}

// NewKeychain returns the platform secret store.
func NewKeychain() *Keyring {
	return &Keyring{cfg: keyring.Config{
		ServiceName: keyringService,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  filepath.Join(defaultDataDir(), "credentials"),
		FilePasswordFunc:         keyring.FixedStringPrompt("syntra-file-key"),
		KeychainTrustApplication: true,
	}}
}

func (k *Keyring) open() (keyring.Keyring, error) {
	ring, err := keyring.Open(k.cfg)
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

func (k *Keyring) Get(key string) (string, error) {
	ring, err := k.open()
	if err != nil {
		return "", err
	}
	item, err := ring.Get(key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", ErrSecretNotFound
	}
	if err != nil {
		return "", fmt.Errorf("getting secret %q: %w", key, err)
	}
	return string(item.Data), nil
}

func (k *Keyring) Set(key, value string) error {
	ring, err := k.open()
	if err != nil {
		return err
	}
	if err := ring.Set(keyring.Item{Key: key, Data: []byte(value)}); err != nil {
		return fmt.Errorf("setting secret %q: %w", key, err)
	}
	return nil
}

func (k *Keyring) Remove(key string) error {
	ring, err := k.open()
	if err != nil {
		return err
	}
	if err := ring.Remove(key); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("removing secret %q: %w", key, err)
	}
	return nil
}

// GetAPIToken returns the bearer token guarding the local API. SYNTRA_API_TOKEN
// wins; otherwise the token is read from the secret store and generated on
// first use.
func GetAPIToken(s SecretStore) (string, error) {
	if tok := os.Getenv("SYNTRA_API_TOKEN"); tok != "" {
		return tok, nil
	}

	tok, err := s.Get(apiTokenAccount)
	if err == nil && tok != "" {
		return tok, nil
	}
	if err != nil && !errors.Is(err, ErrSecretNotFound) {
		return "", err
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}
	tok = hex.EncodeToString(buf)
	if err := s.Set(apiTokenAccount, tok); err != nil {
		return "", err
	}
	return tok, nil
}

// RotateAPIToken discards the stored token; the next GetAPIToken generates
// a fresh one.
func RotateAPIToken(s SecretStore) error {
	return s.Remove(apiTokenAccount)
}
