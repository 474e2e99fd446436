package datamover

import (
	"errors"
	"fmt"
	"sync"

	"github.com/nspcc-dev/neofs-dataset/pkg/core/kv"
	"github.com/nspcc-dev/neofs-dataset/pkg/util"
	"go.uber.org/zap"
)

// ErrNotSupported is returned when container can not be dumped or restored.
var ErrNotSupported = errors.New("container does not support data moving")

// Option is an option of the data mover operations.
type Option func(*cfg)

type cfg struct {
	log      *zap.Logger
	workers  int
	compress bool
	progress func(records int)
}

func defaultCfg() *cfg {
	return &cfg{
		log:      zap.NewNop(),
		workers:  1,
		compress: true,
		progress: func(int) {},
	}
}

func newCfg(opts []Option) *cfg {
	c := defaultCfg()
	for i := range opts {
		opts[i](c)
	}

	return c
}

// WithLogger returns option to set logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *cfg) {
		if l != nil {
			c.log = l.With(zap.String("component", "datamover"))
		}
	}
}

// WithWorkers returns option to set number of pairs copied at once by
// CopyAll.
func WithWorkers(n int) Option {
	return func(c *cfg) {
		c.workers = n
	}
}

// WithCompression returns option to enable zstd compression of the archive
// body. Enabled by default.
func WithCompression(enabled bool) Option {
	return func(c *cfg) {
		c.compress = enabled
	}
}

// WithProgress returns option to set callback called after each moved record
// with the number of records moved so far.
func WithProgress(f func(records int)) Option {
	return func(c *cfg) {
		if f != nil {
			c.progress = f
		}
	}
}

func openDumper(cnr kv.ContainerOpener) (kv.Dumper, error) {
	c, err := cnr.OpenContainer()
	if err != nil {
		return nil, fmt.Errorf("open source container: %w", err)
	}

	d, ok := c.(kv.Dumper)
	if !ok {
		_ = c.Close()
		return nil, fmt.Errorf("source: %w", ErrNotSupported)
	}

	return d, nil
}

func openRestorer(cnr kv.ContainerOpener) (kv.Restorer, error) {
	c, err := cnr.OpenContainer()
	if err != nil {
		return nil, fmt.Errorf("open destination container: %w", err)
	}

	r, ok := c.(kv.Restorer)
	if !ok {
		_ = c.Close()
		return nil, fmt.Errorf("destination: %w", ErrNotSupported)
	}

	return r, nil
}

func closeContainer(c kv.Container, err *error) {
	if cErr := c.Close(); cErr != nil {
		*err = errors.Join(*err, fmt.Errorf("close container: %w", cErr))
	}
}

// Copy copies all records of the src container to the dst one. Returns
// number of copied records.
func Copy(src, dst kv.ContainerOpener, opts ...Option) (n int, err error) {
	c := newCfg(opts)

	d, err := openDumper(src)
	if err != nil {
		return 0, err
	}
	defer closeContainer(d, &err)

	r, err := openRestorer(dst)
	if err != nil {
		return 0, err
	}
	defer closeContainer(r, &err)

	err = d.Iterate(func(rec kv.Record) error {
		if err := r.Restore(rec); err != nil {
			return fmt.Errorf("restore %s record of object %s: %w", rec.Kind, rec.Object, err)
		}

		n++
		c.progress(n)

		return nil
	})
	if err != nil {
		c.log.Error("container copy failed", zap.Int("records", n), zap.Error(err))
		return n, err
	}

	c.log.Info("container copied", zap.Int("records", n))

	return n, nil
}

// Pair is a source and destination of one copy.
type Pair struct {
	Src, Dst kv.ContainerOpener
}

// CopyAll copies all the pairs using WithWorkers routines. Errors of the
// separate pairs are joined and returned after all the copies are finished.
// Progress callback is not used.
func CopyAll(pairs []Pair, opts ...Option) error {
	c := newCfg(opts)

	pool, err := util.NewWorkerPool(c.workers)
	if err != nil {
		return err
	}
	defer pool.Release()

	var (
		wg   sync.WaitGroup
		errs = make([]error, len(pairs))
	)

	copyOpts := append(opts[:len(opts):len(opts)], WithProgress(func(int) {}))

	for i := range pairs {
		i := i

		wg.Add(1)

		err := pool.Submit(func() {
			defer wg.Done()

			_, err := Copy(pairs[i].Src, pairs[i].Dst, copyOpts...)
			if err != nil {
				errs[i] = fmt.Errorf("pair #%d: %w", i, err)
			}
		})
		if err != nil {
			wg.Done()
			errs[i] = fmt.Errorf("pair #%d: submit copy: %w", i, err)
		}
	}

	wg.Wait()

	return errors.Join(errs...)
}
