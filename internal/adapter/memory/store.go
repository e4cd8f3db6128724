package memory

import (
	"encoding/json"
	"fmt"
	"sync"

	"docassist/internal/domain"
)

// Store keeps saved sessions in process memory. Conversations are stored in
// their JSON form so a loaded session never aliases the one that was saved.
type Store struct {
	mu       sync.Mutex
	order    []string
	sessions map[string][]byte
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[string][]byte),
	}
}

func (s *Store) Save(name string, conv *domain.Conversation) (string, error) {
	name, err := domain.NormalizeSessionName(name)
	if err != nil {
		return "", err
	}
	data, err := json.Marshal(conv)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sessions[name]; !exists {
		s.order = append(s.order, name)
	}
	s.sessions[name] = data
	return name, nil
}

func (s *Store) List() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.order...), nil
}

func (s *Store) Load(name string) (*domain.Conversation, error) {
	name, err := domain.NormalizeSessionName(name)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	data, ok := s.sessions[name]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, name)
	}

	var conv domain.Conversation
	if err := json.Unmarshal(data, &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}
