package httputil

import (
	"fmt"
	"net"
	"net/http"
	"time"
)

// HTTPSrvPrm groups the required parameters of the Server's constructor.
//
// All values must comply with the requirements imposed on them.
// Passing incorrect parameter values will result in constructor
// failure (error or panic depending on the implementation).
type HTTPSrvPrm struct {
	// TCP address for the server to listen on.
	//
	// Must be a valid TCP address.
	Address string

	// Must not be nil.
	Handler http.Handler
}

// Server represents a wrapper over http.Server
// that provides an interface to start and stop
// listening routine.
type Server struct {
	shutdownTimeout time.Duration

	srv *http.Server
	ln  net.Listener
}

// Option is an option of the Server's constructor.
type Option func(*cfg)

type cfg struct {
	shutdownTimeout time.Duration
}

// DefaultShutdownTimeout is the default time given to the Server to finish
// active requests on Shutdown.
const DefaultShutdownTimeout = 30 * time.Second

func defaultCfg() *cfg {
	return &cfg{
		shutdownTimeout: DefaultShutdownTimeout,
	}
}

// WithShutdownTimeout returns option to set the shutdown timeout.
func WithShutdownTimeout(t time.Duration) Option {
	return func(c *cfg) {
		c.shutdownTimeout = t
	}
}

const invalidValFmt = "invalid %s %s (%T): %v"

func panicOnValue(t, n string, v any) {
	panic(fmt.Sprintf(invalidValFmt, t, n, v, v))
}

// New creates a new instance of the Server.
//
// Panics if address is empty, handler is nil or shutdown timeout is
// non-positive.
func New(prm HTTPSrvPrm, opts ...Option) *Server {
	switch {
	case prm.Address == "":
		panicOnValue("parameter", "Address", prm.Address)
	case prm.Handler == nil:
		panicOnValue("parameter", "Handler", prm.Handler)
	}

	c := defaultCfg()

	for _, o := range opts {
		o(c)
	}

	if c.shutdownTimeout <= 0 {
		panicOnValue("option", "shutdown timeout", c.shutdownTimeout)
	}

	return &Server{
		shutdownTimeout: c.shutdownTimeout,
		srv: &http.Server{
			Addr:              prm.Address,
			Handler:           prm.Handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}
