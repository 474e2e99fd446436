package kvstore

import (
	"fmt"
	"path/filepath"

	"github.com/nspcc-dev/neofs-dataset/pkg/util"
	"go.etcd.io/bbolt"
	"go.uber.org/zap"
)

// Open opens BoltDB instance at configured path with configured
// permissions. The database file is created if it does not exist.
func (s *Store) Open(readOnly bool) error {
	if !readOnly {
		err := util.MkdirAllX(filepath.Dir(s.path), s.perm)
		if err != nil {
			return fmt.Errorf("can't create dir %s for kvstore: %w", s.path, err)
		}

		s.log.Debug("created directory for KVStore", zap.String("path", s.path))
	}

	opts := *s.boltOptions
	opts.ReadOnly = readOnly

	db, err := bbolt.Open(s.path, s.perm, &opts)
	if err != nil {
		return fmt.Errorf("can't open boltDB database: %w", err)
	}

	db.NoSync = s.noSync
	s.boltDB = db
	s.readOnly = readOnly

	s.log.Debug("opened boltDB instance for KVStore",
		zap.String("path", s.path),
		zap.Bool("read-only", readOnly),
	)

	return nil
}

// Init creates static buckets. Does nothing if the database is already
// initialized or opened in read-only mode.
func (s *Store) Init() error {
	if s.readOnly {
		return s.boltDB.View(func(tx *bbolt.Tx) error {
			if tx.Bucket(containersBucketName) == nil {
				return fmt.Errorf("database %s is not initialized", s.path)
			}
			return nil
		})
	}

	return s.boltDB.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(containersBucketName)
		if err != nil {
			return fmt.Errorf("could not create static bucket %s: %w", containersBucketName, err)
		}
		return nil
	})
}

// Close closes BoltDB instance.
func (s *Store) Close() error {
	if s.boltDB == nil {
		return nil
	}

	s.log.Debug("closing BoltDB", zap.String("path", s.path))

	return s.boltDB.Close()
}
