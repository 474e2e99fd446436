// Package badgerstore implements kv.Store on top of BadgerDB.
//
// All the data is kept in flat keys:
//
//	0x01 | container                                  -> (empty)
//	0x02 | container | object                         -> rank (BE32) | class
//	0x03 | container | object | dkey | akey | 0x00    -> value kind
//	0x03 | container | object | dkey | akey | 0x01    -> single value
//	0x03 | container | object | dkey | akey | 0x02 | index (BE64) -> extent
//
// dkey and akey are escaped so that key order follows the order of the
// original strings.
package badgerstore

import (
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/nspcc-dev/neofs-dataset/pkg/core/kv"
	"github.com/nspcc-dev/neofs-dataset/pkg/util"
	"go.uber.org/zap"
)

// Type is the storage type used in logs and metrics.
const Type = "badger"

// Store represents kv.Store on BadgerDB.
type Store struct {
	*cfg

	readOnly bool
	db       *badger.DB
}

// Option is an option of Store's constructor.
type Option func(*cfg)

// MetricRegister collects storage operation metrics.
type MetricRegister interface {
	AddStorageOp(typ, op string, d time.Duration, err error)
}

type cfg struct {
	path       string
	inMemory   bool
	syncWrites bool
	vlogSize   int64

	log     *zap.Logger
	metrics MetricRegister
}

type noopMetrics struct{}

func (noopMetrics) AddStorageOp(string, string, time.Duration, error) {}

const defaultValueLogFileSize = 100 << 20

func defaultCfg() *cfg {
	return &cfg{
		vlogSize: defaultValueLogFileSize,
		log:      zap.L(),
		metrics:  noopMetrics{},
	}
}

var _ kv.Store = (*Store)(nil)

// New creates and returns new Store instance. Store MUST be opened before
// use.
func New(opts ...Option) *Store {
	c := defaultCfg()

	for i := range opts {
		opts[i](c)
	}

	return &Store{cfg: c}
}

// WithPath returns option to set database directory.
func WithPath(path string) Option {
	return func(c *cfg) {
		c.path = path
	}
}

// WithInMemory returns option to keep all the data in memory. Path is
// ignored then.
func WithInMemory(inMemory bool) Option {
	return func(c *cfg) {
		c.inMemory = inMemory
	}
}

// WithSyncWrites returns option to sync each write to disk.
func WithSyncWrites(sync bool) Option {
	return func(c *cfg) {
		c.syncWrites = sync
	}
}

// WithValueLogFileSize returns option to set maximum size of a single value
// log file.
func WithValueLogFileSize(sz int64) Option {
	return func(c *cfg) {
		if sz > 0 {
			c.vlogSize = sz
		}
	}
}

// WithLogger returns option to specify Store's logger. The logger also
// receives messages of BadgerDB itself.
func WithLogger(l *zap.Logger) Option {
	return func(c *cfg) {
		c.log = l.With(zap.String("component", "BadgerStore"))
	}
}

// WithMetrics returns option to specify metrics register.
func WithMetrics(m MetricRegister) Option {
	return func(c *cfg) {
		if m != nil {
			c.metrics = m
		}
	}
}

// badgerLogger passes BadgerDB messages to zap.
type badgerLogger struct {
	*zap.SugaredLogger
}

func (l badgerLogger) Warningf(format string, args ...any) {
	l.Warnf(format, args...)
}

// Open opens BadgerDB instance. The directory is created if it does not
// exist.
func (s *Store) Open(readOnly bool) error {
	opts := badger.DefaultOptions(s.path).
		WithInMemory(s.inMemory).
		WithReadOnly(readOnly).
		WithSyncWrites(s.syncWrites).
		WithValueLogFileSize(s.vlogSize).
		WithLogger(badgerLogger{s.log.Sugar()})

	if s.inMemory {
		opts = opts.WithDir("").WithValueDir("")
	} else if !readOnly {
		err := util.MkdirAllX(s.path, 0o700)
		if err != nil {
			return fmt.Errorf("can't create dir %s for badgerstore: %w", s.path, err)
		}
	}

	db, err := badger.Open(opts)
	if err != nil {
		return fmt.Errorf("can't open BadgerDB: %w", err)
	}

	s.db = db
	s.readOnly = readOnly

	s.log.Debug("opened BadgerDB instance",
		zap.String("path", s.path),
		zap.Bool("in-memory", s.inMemory),
		zap.Bool("read-only", readOnly),
	)

	return nil
}

// Close closes BadgerDB instance.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}

	s.log.Debug("closing BadgerDB", zap.String("path", s.path))

	return s.db.Close()
}

// Path returns database directory.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) observe(op string, start time.Time, err error) {
	s.metrics.AddStorageOp(Type, op, time.Since(start), err)
}

// Container implements kv.Store.
func (s *Store) Container(id uuid.UUID) kv.ContainerOpener {
	return containerRef{s: s, id: id}
}

type containerRef struct {
	s  *Store
	id uuid.UUID
}

// OpenContainer implements kv.ContainerOpener.
func (r containerRef) OpenContainer() (kv.Container, error) {
	err := r.s.db.View(func(txn *badger.Txn) error {
		return checkContainer(txn, r.id)
	})
	if err != nil {
		return nil, err
	}

	return &containerHandle{s: r.s, id: r.id}, nil
}
