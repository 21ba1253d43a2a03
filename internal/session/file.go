package session

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"

	"wisata/internal/sentinel"
)

const (
	sealedPrefix = "v1:"
	saltSize     = 16
	nonceSize    = 24
	keySize      = 32
)

// FileStore persists the session to a single file on disk, the durable
// analogue of a browser's origin-scoped storage. With a non-empty key the
// record is sealed with secretbox under a scrypt-derived key; without one
// it is stored as plain JSON (dev only).
//
// Any record that fails to decode, unseal, or deserialize is treated as
// "no session": the file is cleared and ErrCorrupt returned, so callers
// silently proceed as logged out.
type FileStore struct {
	mu   sync.Mutex
	path string
	key  string
}

// NewFile constructs a file-backed store at path. key is the sealing
// passphrase; empty disables sealing.
func NewFile(path, key string) *FileStore {
	return &FileStore{path: path, key: key}
}

func (s *FileStore) Write(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("serialize session: %w", err)
	}
	if s.key != "" {
		sealed, err := seal(payload, s.key)
		if err != nil {
			return fmt.Errorf("seal session: %w", err)
		}
		payload = sealed
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}
	// Write-then-rename so a crash never leaves a half-written pair.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("commit session file: %w", err)
	}
	return nil
}

func (s *FileStore) Read() (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Record{}, fmt.Errorf("no session file: %w", sentinel.ErrNoSession)
	}
	if err != nil {
		return Record{}, fmt.Errorf("read session file: %w", err)
	}
	if len(raw) == 0 {
		return Record{}, fmt.Errorf("empty session file: %w", sentinel.ErrNoSession)
	}

	payload := raw
	if s.key != "" {
		payload, err = open(raw, s.key)
		if err != nil {
			return s.recover("unseal session", err)
		}
	}

	var rec Record
	if err := json.Unmarshal(payload, &rec); err != nil {
		return s.recover("decode session", err)
	}
	if rec.Token == "" || len(rec.User) == 0 {
		return s.recover("incomplete session pair", nil)
	}
	return rec, nil
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearLocked()
}

func (s *FileStore) clearLocked() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear session file: %w", err)
	}
	return nil
}

// recover clears the stored record and reports it as corrupt.
func (s *FileStore) recover(reason string, cause error) (Record, error) {
	_ = s.clearLocked()
	if cause != nil {
		return Record{}, fmt.Errorf("%s: %v: %w", reason, cause, sentinel.ErrCorrupt)
	}
	return Record{}, fmt.Errorf("%s: %w", reason, sentinel.ErrCorrupt)
}

func seal(payload []byte, passphrase string) ([]byte, error) {
	var salt [saltSize]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return nil, err
	}
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, err
	}
	key, err := deriveKey(passphrase, salt[:])
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, saltSize+nonceSize+len(payload)+secretbox.Overhead)
	out = append(out, salt[:]...)
	out = append(out, nonce[:]...)
	out = secretbox.Seal(out, payload, &nonce, key)
	return []byte(sealedPrefix + base64.RawStdEncoding.EncodeToString(out)), nil
}

func open(raw []byte, passphrase string) ([]byte, error) {
	body, ok := strings.CutPrefix(string(raw), sealedPrefix)
	if !ok {
		return nil, errors.New("missing seal header")
	}
	blob, err := base64.RawStdEncoding.DecodeString(body)
	if err != nil {
		return nil, err
	}
	if len(blob) < saltSize+nonceSize+secretbox.Overhead {
		return nil, errors.New("sealed record truncated")
	}

	key, err := deriveKey(passphrase, blob[:saltSize])
	if err != nil {
		return nil, err
	}
	var nonce [nonceSize]byte
	copy(nonce[:], blob[saltSize:saltSize+nonceSize])

	payload, ok := secretbox.Open(nil, blob[saltSize+nonceSize:], &nonce, key)
	if !ok {
		return nil, errors.New("seal verification failed")
	}
	return payload, nil
}

func deriveKey(passphrase string, salt []byte) (*[keySize]byte, error) {
	derived, err := scrypt.Key([]byte(passphrase), salt, 1<<15, 8, 1, keySize)
	if err != nil {
		return nil, err
	}
	var key [keySize]byte
	copy(key[:], derived)
	return &key, nil
}
