// Package sqlstore keeps snapshots as JSON documents in a MySQL key-value
// table, for deployments where the data directory is not durable.
package sqlstore

import (
	"database/sql"
	"embed"
	"encoding/json"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	_ "github.com/go-sql-driver/mysql"

	"github.com/Ithalolp/JW-STORE/pkg/domain/service"
)

//go:embed migrations/*.sql
var migrations embed.FS

var _ service.SnapshotStore = (*Store)(nil)

type Store struct {
	db *sqlx.DB
}

func New(dsn string) (*Store, error) {
	db, err := sqlx.Connect("mysql", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "connect to snapshot database")
	}
	if err := applyMigrations(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func applyMigrations(db *sqlx.DB) error {
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return errors.Wrap(err, "open embedded migrations")
	}
	driver, err := mysql.WithInstance(db.DB, &mysql.Config{})
	if err != nil {
		return errors.Wrap(err, "prepare migration driver")
	}
	m, err := migrate.NewWithInstance("iofs", source, "mysql", driver)
	if err != nil {
		return errors.Wrap(err, "prepare migrations")
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return errors.Wrap(err, "apply migrations")
	}
	return nil
}

func (s *Store) Load(key string, out any) (bool, error) {
	var document []byte
	err := s.db.Get(&document, "SELECT document FROM snapshots WHERE snapshot_key = ?", key)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "read snapshot %q", key)
	}
	if err := json.Unmarshal(document, out); err != nil {
		return false, errors.Wrapf(err, "decode snapshot %q", key)
	}
	return true, nil
}

func (s *Store) Save(key string, v any) error {
	document, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encode snapshot %q", key)
	}
	_, err = s.db.Exec(
		"INSERT INTO snapshots (snapshot_key, document) VALUES (?, ?) ON DUPLICATE KEY UPDATE document = VALUES(document)",
		key, document,
	)
	return errors.Wrapf(err, "write snapshot %q", key)
}

func (s *Store) Delete(key string) error {
	_, err := s.db.Exec("DELETE FROM snapshots WHERE snapshot_key = ?", key)
	return errors.Wrapf(err, "delete snapshot %q", key)
}

func (s *Store) Close() error {
	return s.db.Close()
}
