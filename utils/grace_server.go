package utils

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultReadTimeout     = 60 * time.Second
	DefaultWriteTimeout    = DefaultReadTimeout
	DefaultShutdownTimeout = 30 * time.Second

	gracefulEnvKey     = "IS_GRACEFUL"
	gracefulEnvValue   = gracefulEnvKey + "=1"
	gracefulListenerFD = 3
)

// Server wraps http.Server with signal driven shutdown and zero-downtime restart.
// SIGINT and SIGTERM drain in-flight requests; SIGUSR2 hands the listener to a new process first.
type Server struct {
	*http.Server

	log          *zap.Logger
	listener     net.Listener
	inherited    bool
	signals      chan os.Signal
	shutdownDone chan struct{}
}

// NewServer creates a Server with timeouts and handler.
func NewServer(addr string, handler http.Handler, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		Server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadTimeout:       DefaultReadTimeout,
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      DefaultWriteTimeout,
		},
		log:          log,
		inherited:    os.Getenv(gracefulEnvKey) != "",
		signals:      make(chan os.Signal, 1),
		shutdownDone: make(chan struct{}),
	}
}

// ListenAndServe blocks until the server has been shut down by a signal.
func (srv *Server) ListenAndServe() error {
	ln, err := srv.listen()
	if err != nil {
		return err
	}
	srv.listener = ln

	signal.Notify(srv.signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGUSR2)
	go srv.handleSignals()

	srv.log.Info("http server listening", zap.String("addr", ln.Addr().String()), zap.Bool("inherited", srv.inherited))
	err = srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		<-srv.shutdownDone
		return nil
	}
	return err
}

func (srv *Server) listen() (net.Listener, error) {
	if srv.inherited {
		ln, err := net.FileListener(os.NewFile(gracefulListenerFD, ""))
		if err != nil {
			return nil, fmt.Errorf("inherit listener: %w", err)
		}
		return ln, nil
	}
	addr := srv.Addr
	if addr == "" {
		addr = ":http"
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}
	return ln, nil
}

func (srv *Server) handleSignals() {
	for sig := range srv.signals {
		switch sig {
		case syscall.SIGINT, syscall.SIGTERM:
			srv.log.Info("shutting down http server", zap.String("signal", sig.String()))
			srv.shutdown()
			return
		case syscall.SIGUSR2:
			pid, err := srv.forkWithListener()
			if err != nil {
				srv.log.Error("restart failed, continue serving", zap.Error(err))
				continue
			}
			srv.log.Info("new process started, draining old server", zap.Int("pid", pid))
			srv.shutdown()
			return
		}
	}
}

func (srv *Server) shutdown() {
	signal.Stop(srv.signals)
	ctx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		srv.log.Error("http server shutdown", zap.Error(err))
	}
	close(srv.shutdownDone)
}

// forkWithListener re-executes the binary, passing the listening socket as fd 3.
func (srv *Server) forkWithListener() (int, error) {
	tcpLn, ok := srv.listener.(*net.TCPListener)
	if !ok {
		return 0, fmt.Errorf("listener is %T, not *net.TCPListener", srv.listener)
	}
	file, err := tcpLn.File()
	if err != nil {
		return 0, fmt.Errorf("listener file: %w", err)
	}
	defer file.Close()

	env := make([]string, 0, len(os.Environ())+1)
	for _, e := range os.Environ() {
		if e != gracefulEnvValue {
			env = append(env, e)
		}
	}
	env = append(env, gracefulEnvValue)

	pid, err := syscall.ForkExec(os.Args[0], os.Args, &syscall.ProcAttr{
		Env:   env,
		Files: []uintptr{os.Stdin.Fd(), os.Stdout.Fd(), os.Stderr.Fd(), file.Fd()},
	})
	if err != nil {
		return 0, fmt.Errorf("forkexec: %w", err)
	}
	return pid, nil
}

// GraceServer starts an HTTP server with graceful capabilities.
func GraceServer(addr string, handler http.Handler) error {
	return NewServer(addr, handler, Logger).ListenAndServe()
}
