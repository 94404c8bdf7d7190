// Package filestore keeps one JSON document per snapshot key inside a data
// directory.
package filestore

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/Ithalolp/JW-STORE/pkg/domain/service"
)

var _ service.SnapshotStore = (*Store)(nil)

type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(err, "create snapshot directory")
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Load(key string, out any) (bool, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, "read snapshot %q", key)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, errors.Wrapf(err, "decode snapshot %q", key)
	}
	return true, nil
}

func (s *Store) Save(key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "encode snapshot %q", key)
	}
	return errors.Wrapf(os.WriteFile(s.path(key), data, 0666), "write snapshot %q", key)
}

func (s *Store) Delete(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "delete snapshot %q", key)
	}
	return nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
