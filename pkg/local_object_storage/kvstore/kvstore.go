package kvstore

import (
	"io/fs"
	"time"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neofs-dataset/pkg/core/kv"
	"go.etcd.io/bbolt"
	"go.uber.org/zap"
)

// Type is the storage type used in logs and metrics.
const Type = "bbolt"

// Store represents kv.Store on BoltDB.
type Store struct {
	*cfg

	readOnly bool
	boltDB   *bbolt.DB
}

// Option is an option of Store's constructor.
type Option func(*cfg)

// MetricRegister collects storage operation metrics.
type MetricRegister interface {
	AddStorageOp(typ, op string, d time.Duration, err error)
}

type cfg struct {
	path string
	perm fs.FileMode

	noSync      bool
	boltOptions *bbolt.Options

	log     *zap.Logger
	metrics MetricRegister
}

type noopMetrics struct{}

func (noopMetrics) AddStorageOp(string, string, time.Duration, error) {}

func defaultCfg() *cfg {
	return &cfg{
		perm: 0o640,
		boltOptions: &bbolt.Options{
			Timeout: 100 * time.Millisecond,
		},
		log:     zap.L(),
		metrics: noopMetrics{},
	}
}

var _ kv.Store = (*Store)(nil)

// New creates and returns new Store instance. Store MUST be opened and
// initialized before use.
func New(opts ...Option) *Store {
	c := defaultCfg()

	for i := range opts {
		opts[i](c)
	}

	return &Store{cfg: c}
}

// WithPath returns option to set system path to the database file.
func WithPath(path string) Option {
	return func(c *cfg) {
		c.path = path
	}
}

// WithPermissions returns option to specify permission bits of the database
// file.
func WithPermissions(perm fs.FileMode) Option {
	return func(c *cfg) {
		c.perm = perm
	}
}

// WithNoSync returns option to disable fsync after each commit.
func WithNoSync(noSync bool) Option {
	return func(c *cfg) {
		c.noSync = noSync
	}
}

// WithLogger returns option to specify Store's logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *cfg) {
		c.log = l.With(zap.String("component", "KVStore"))
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

// Path returns system path to the database file.
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
	err := r.s.boltDB.View(func(tx *bbolt.Tx) error {
		_, err := containerBucket(tx, r.id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &containerHandle{s: r.s, id: r.id}, nil
}
