package httputil

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// Listen binds the configured address. After Listen, Addr returns the real
// address which is useful for ports selected by the system.
func (x *Server) Listen() error {
	ln, err := net.Listen("tcp", x.srv.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", x.srv.Addr, err)
	}

	x.ln = ln

	return nil
}

// Addr returns listened address or the configured one if Listen has not been
// called yet.
func (x *Server) Addr() string {
	if x.ln != nil {
		return x.ln.Addr().String()
	}

	return x.srv.Addr
}

// Serve serves HTTP requests calling Listen first if needed. Blocks until
// Shutdown.
//
// Returns any error returned by internal server
// except http.ErrServerClosed.
func (x *Server) Serve() error {
	if x.ln == nil {
		if err := x.Listen(); err != nil {
			return err
		}
	}

	err := x.srv.Serve(x.ln)
	if errors.Is(err, http.ErrServerClosed) {
		err = nil
	}

	return err
}

// Shutdown gracefully shuts down internal HTTP server.
//
// Shutdown is called with context which expires after
// configured timeout.
func (x *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), x.shutdownTimeout)
	defer cancel()

	return x.srv.Shutdown(ctx)
}
