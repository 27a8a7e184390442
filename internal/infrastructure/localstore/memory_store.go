package localstore

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/AlexanderChic/abarroteria-192/internal/domain/repository"
)

var _ repository.SessionStore = (*MemoryStore)(nil)

// MemoryStore implementación en memoria del SessionStore. Serializa a JSON igual
// que FileStore para que los tests ejerciten el mismo round-trip de codificación.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string][]byte
}

// NewMemoryStore construye un store vacío.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte)}
}

// Get decodifica el valor de key en out; false si la clave no existe.
func (s *MemoryStore) Get(key string, out any) (bool, error) {
	s.mu.Lock()
	data, ok := s.values[key]
	s.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("decodificar clave de sesión %s: %w", key, err)
	}
	return true, nil
}

// Put serializa value y lo guarda bajo key.
func (s *MemoryStore) Put(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("serializar clave de sesión %s: %w", key, err)
	}
	s.mu.Lock()
	s.values[key] = data
	s.mu.Unlock()
	return nil
}

// Delete elimina la clave; no-op si no existe.
func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()
	return nil
}
