// Package jsonstore реализует хранение коллекций в виде плоских JSON файлов.
// Каждая коллекция читается и перезаписывается целиком; частичных обновлений нет.
package jsonstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// Имена коллекций хранилища
const (
	CollectionUsers = "users"
	CollectionTasks = "tasks"
)

// Store представляет файловое документное хранилище.
// Мутекс на коллекцию сериализует циклы чтение-изменение-запись внутри
// процесса; межпроцессная согласованность не обеспечивается.
type Store struct {
	dir   string
	locks map[string]*sync.Mutex
}

// NewStore создает хранилище в указанной директории
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create data directory")
	}

	return &Store{
		dir: dir,
		locks: map[string]*sync.Mutex{
			CollectionUsers: {},
			CollectionTasks: {},
		},
	}, nil
}

// Guard возвращает мутекс коллекции. Репозиторий обязан держать его
// на протяжении всего цикла чтение-изменение-запись.
func (s *Store) Guard(collection string) *sync.Mutex {
	return s.locks[collection]
}

// Load читает коллекцию целиком в out. Отсутствующий файл не является
// ошибкой: out остается пустым.
func (s *Store) Load(collection string, out any) error {
	data, err := os.ReadFile(s.path(collection))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "read collection %q", collection)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrapf(err, "decode collection %q", collection)
	}

	return nil
}

// Save перезаписывает коллекцию целиком. Запись идет во временный файл
// с последующим переименованием, чтобы не оставить коллекцию обрезанной.
func (s *Store) Save(collection string, docs any) error {
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "encode collection %q", collection)
	}

	tmp := s.path(collection) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrapf(err, "write collection %q", collection)
	}

	if err := os.Rename(tmp, s.path(collection)); err != nil {
		return errors.Wrapf(err, "replace collection %q", collection)
	}

	return nil
}

func (s *Store) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}
