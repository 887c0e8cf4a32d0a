package storage

import "sync"

// LocalStore is an in-memory Store, mainly for testing purposes and for
// runs where nothing needs to survive a restart.
type LocalStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewLocalStore() *LocalStore {
	return &LocalStore{data: make(map[string]string)}
}

func (s *LocalStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *LocalStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *LocalStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; !ok {
		return ErrKeyNotFound
	}
	delete(s.data, key)
	return nil
}
