package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"greeter/utils"

	"go.uber.org/zap"
)

type State int

const (
	Starting State = iota
	Serving
)

func (s State) String() string {
	switch s {
	case Starting:
		return "starting"
	case Serving:
		return "serving"
	default:
		return "unknown"
	}
}

var ErrAlreadyListening = errors.New("server is already listening")

// BindError reports that the listener could not be bound.
type BindError struct {
	Port int
	Err  error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("bind port %d: %v", e.Port, e.Err)
}

func (e *BindError) Unwrap() error {
	return e.Err
}

// Server owns the single listener for the lifetime of the process.
type Server struct {
	config   utils.Config
	banner   io.Writer
	srv      *http.Server
	mux      sync.Mutex
	state    State
	listener net.Listener
}

// New prepares a server in the starting state. Nothing is bound until Listen.
func New(config utils.Config, h http.Handler, banner io.Writer) *Server {
	return &Server{
		config: config,
		banner: banner,
		srv:    &http.Server{Handler: h},
		state:  Starting,
	}
}

// BindAddr is the address the listener binds: every interface, the
// configured port. The configured host is display-only.
func (s *Server) BindAddr() string {
	return net.JoinHostPort("", strconv.Itoa(s.config.Port))
}

// Banner is the line printed once the listener is bound.
func Banner(host string, port int) string {
	return fmt.Sprintf("Server running at http://%s:%d/", host, port)
}

// Listen binds the listener and prints the startup banner.
// On failure no banner is printed and the server stays in the starting state.
// A banner that cannot be written releases the listener and is returned as an error.
func (s *Server) Listen() error {
	s.mux.Lock()
	defer s.mux.Unlock()

	if s.state != Starting {
		return ErrAlreadyListening
	}

	ln, err := net.Listen("tcp", s.BindAddr())
	if err != nil {
		return &BindError{Port: s.config.Port, Err: err}
	}

	if _, err := fmt.Fprintln(s.banner, Banner(s.config.Host, s.config.Port)); err != nil {
		ln.Close()
		return fmt.Errorf("write banner: %w", err)
	}

	s.listener = ln
	s.state = Serving

	utils.Logger.Debug("listener bound", zap.String("addr", ln.Addr().String()))

	return nil
}

func (s *Server) State() State {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.state
}

// Addr returns the bound address, or nil before Listen succeeds.
func (s *Server) Addr() net.Addr {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Serve accepts connections until ctx is cancelled, then shuts the HTTP
// server down within the configured shutdown timeout.
func (s *Server) Serve(ctx context.Context) error {
	s.mux.Lock()
	ln := s.listener
	s.mux.Unlock()

	if ln == nil {
		return errors.New("serve called before listen")
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	utils.Logger.Debug("shutting down", zap.String("addr", ln.Addr().String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*time.Duration(s.config.ShutdownTimeout))
	defer cancel()

	// Connections that never sent a request are not idle for Shutdown until
	// they age out, so force them closed once the timeout passes.
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		if !errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("shutdown: %w", err)
		}
		utils.Logger.Warn("shutdown timed out, closing open connections", zap.Int("timeout", s.config.ShutdownTimeout))
		if err := s.srv.Close(); err != nil {
			return fmt.Errorf("close: %w", err)
		}
	}

	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// Run binds and serves until ctx is done.
func Run(ctx context.Context, config utils.Config, h http.Handler, banner io.Writer) error {
	s := New(config, h, banner)
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve(ctx)
}
