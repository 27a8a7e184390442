package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/AlexanderChic/abarroteria-192/internal/domain/repository"
)

var _ repository.SessionStore = (*FileStore)(nil)

// FileStore almacenamiento de sesión respaldado en disco: un archivo JSON por
// clave dentro de un directorio. Es el análogo del localStorage del navegador:
// sin expiración, los valores sobreviven reinicios del proceso.
type FileStore struct {
	dir string
}

// NewFileStore crea (si hace falta) el directorio de sesión y devuelve el store.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de sesión %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get decodifica el valor de key en out; false si la clave no existe.
func (s *FileStore) Get(key string, out any) (bool, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("leer clave de sesión %s: %w", key, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("decodificar clave de sesión %s: %w", key, err)
	}
	return true, nil
}

// Put serializa value y lo escribe de forma atómica (archivo temporal + rename)
// para no dejar un JSON truncado si el proceso muere a mitad de escritura.
func (s *FileStore) Put(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("serializar clave de sesión %s: %w", key, err)
	}
	tmp, err := os.CreateTemp(s.dir, key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("archivo temporal para %s: %w", key, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("escribir clave de sesión %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("cerrar archivo temporal de %s: %w", key, err)
	}
	if err := os.Rename(tmpName, s.path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("publicar clave de sesión %s: %w", key, err)
	}
	return nil
}

// Delete elimina la clave; no-op si no existe.
func (s *FileStore) Delete(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("eliminar clave de sesión %s: %w", key, err)
	}
	return nil
}
