package storage

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"syscall"

	"gopkg.in/yaml.v3"
)

// YAMLStore keeps all keys in a single flat YAML file. Every operation
// re-reads the file under an flock so writes from other processes are
// picked up, and writes go through a temp file and rename.
type YAMLStore struct {
	mu   sync.Mutex
	path string
}

// NewYAMLStore creates a YAMLStore at path. The file is created on the
// first Set; a missing file reads as an empty store.
func NewYAMLStore(path string) (*YAMLStore, error) {
	s := &YAMLStore{path: path}
	// Fail early on an unreadable or malformed file.
	if _, err := s.read(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *YAMLStore) Get(key string) (string, bool, error) {
	var (
		v  string
		ok bool
	)
	err := s.withLock(syscall.LOCK_SH, func(data map[string]string) bool {
		v, ok = data[key]
		return false
	})
	return v, ok, err
}

func (s *YAMLStore) Set(key, value string) error {
	return s.withLock(syscall.LOCK_EX, func(data map[string]string) bool {
		data[key] = value
		return true
	})
}

func (s *YAMLStore) Delete(key string) error {
	found := true
	err := s.withLock(syscall.LOCK_EX, func(data map[string]string) bool {
		if _, found = data[key]; !found {
			return false
		}
		delete(data, key)
		return true
	})
	if err != nil {
		return err
	}
	if !found {
		return ErrKeyNotFound
	}
	return nil
}

func (s *YAMLStore) lockPath() string {
	return s.path + ".lock"
}

// withLock takes the file lock, loads the file and hands the data to fn.
// When fn returns true the data is written back.
func (s *YAMLStore) withLock(how int, fn func(map[string]string) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating store directory: %w", err)
	}

	f, err := os.OpenFile(s.lockPath(), os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("opening store lock: %w", err)
	}
	defer f.Close()

	if err := syscall.Flock(int(f.Fd()), how); err != nil {
		return fmt.Errorf("acquiring store lock: %w", err)
	}
	defer syscall.Flock(int(f.Fd()), syscall.LOCK_UN) // nolint

	data, err := s.read()
	if err != nil {
		return err
	}

	if !fn(data) {
		return nil
	}

	raw, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("encoding store file: %w", err)
	}

	return atomicWrite(s.path, raw)
}

func (s *YAMLStore) read() (map[string]string, error) {
	data := make(map[string]string)

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return data, nil
		}
		return nil, fmt.Errorf("reading store file: %w", err)
	}

	if len(raw) == 0 {
		return data, nil
	}

	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parsing store file: %w", err)
	}
	if data == nil {
		data = make(map[string]string)
	}
	return data, nil
}

func atomicWrite(path string, data []byte) error {
	randBytes := make([]byte, 8)
	if _, err := rand.Read(randBytes); err != nil {
		return fmt.Errorf("generating random suffix: %w", err)
	}
	tmp := path + ".tmp." + hex.EncodeToString(randBytes)

	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp) // nolint
		return err
	}
	return nil
}
