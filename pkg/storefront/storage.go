package storefront

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Local keys shared with the web storefront.
const (
	KeyToken             = "token"
	KeyUser              = "user"
	KeyGuestCart         = "guestCart"
	KeyCookieConsent     = "cookieConsent"
	KeyCookieConsentDate = "cookieConsentDate"
)

// Storage is the client-local key-value store. Get reports false for a
// missing key.
type Storage interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

type MemoryStorage struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string]string)}
}

func (m *MemoryStorage) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryStorage) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryStorage) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// FileStorage keeps all keys in one JSON object on disk so a CLI session
// survives restarts.
type FileStorage struct {
	mu   sync.Mutex
	path string
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (f *FileStorage) read() (map[string]string, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	data := map[string]string{}
	if len(raw) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.path, err)
	}
	return data, nil
}

// write replaces the file atomically.
func (f *FileStorage) write(data map[string]string) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

func (f *FileStorage) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := f.read()
	if err != nil {
		return "", false, err
	}
	v, ok := data[key]
	return v, ok, nil
}

func (f *FileStorage) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := f.read()
	if err != nil {
		return err
	}
	data[key] = value
	return f.write(data)
}

func (f *FileStorage) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := f.read()
	if err != nil {
		return err
	}
	if _, ok := data[key]; !ok {
		return nil
	}
	delete(data, key)
	return f.write(data)
}

// SetCookieConsent records the visitor's choice with a timestamp.
func SetCookieConsent(s Storage, accepted bool, at time.Time) error {
	v := "declined"
	if accepted {
		v = "accepted"
	}
	if err := s.Set(KeyCookieConsent, v); err != nil {
		return err
	}
	return s.Set(KeyCookieConsentDate, at.UTC().Format(time.RFC3339))
}

// CookieConsent returns the stored choice; ok is false when none was made.
func CookieConsent(s Storage) (accepted bool, at time.Time, ok bool) {
	v, found, err := s.Get(KeyCookieConsent)
	if err != nil || !found {
		return false, time.Time{}, false
	}
	if raw, found, err := s.Get(KeyCookieConsentDate); err == nil && found {
		at, _ = time.Parse(time.RFC3339, raw)
	}
	return v == "accepted", at, true
}
