package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/correctme/correctme/internal/discovery"
	"github.com/correctme/correctme/internal/logging"
)

const (
	DefaultHost = "127.0.0.1"
	DefaultPort = 8000
	DefaultPath = "/spellcheck"

	shutdownTimeout = 10 * time.Second
)

// Config holds the server configuration
type Config struct {
	Host string
	Port int // 0 picks a free port
	Path string

	Delay  time.Duration // added before every correction response
	Status int           // non-zero forces this status on correction requests

	Advertise bool   // announce over mDNS
	Instance  string // mDNS instance name
}

// Server is the stub correction service
type Server struct {
	config     *Config
	httpServer *http.Server

	mu       sync.Mutex
	listener net.Listener
	advert   *discovery.Advertisement
}

// New creates a server after validating config
func New(config *Config) (*Server, error) {
	if config.Port < 0 || config.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d", config.Port)
	}
	if config.Delay < 0 {
		return nil, fmt.Errorf("invalid delay %s", config.Delay)
	}
	if config.Status != 0 && (config.Status < 100 || config.Status > 599) {
		return nil, fmt.Errorf("invalid status code %d", config.Status)
	}
	if config.Path == "" {
		config.Path = DefaultPath
	}
	if config.Path[0] != '/' {
		config.Path = "/" + config.Path
	}
	if config.Instance == "" {
		host, _ := os.Hostname()
		config.Instance = "correctme-stub on " + host
	}

	s := &Server{config: config}
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Start serves until SIGINT or SIGTERM, then shuts down gracefully
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return s.Run(ctx)
}

// Run serves until ctx is done or the listener fails
func (s *Server) Run(ctx context.Context) error {
	addr := net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	logging.Info("Stub correction service listening",
		zap.String("addr", listener.Addr().String()),
		zap.String("path", s.config.Path),
		zap.Duration("delay", s.config.Delay),
		zap.Int("forced_status", s.config.Status),
	)

	if s.config.Advertise {
		port := listener.Addr().(*net.TCPAddr).Port
		advert, err := discovery.Advertise(s.config.Instance, port, s.config.Path)
		if err != nil {
			// Serving still works without discovery
			logging.Warn("mDNS advertisement failed", zap.Error(err))
		} else {
			s.mu.Lock()
			s.advert = advert
			s.mu.Unlock()
			logging.Info("Advertising over mDNS",
				zap.String("instance", s.config.Instance),
				zap.String("type", discovery.ServiceType),
			)
		}
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.httpServer.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		logging.Info("Shutdown signal received, stopping server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	case err := <-errChan:
		s.withdraw()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// Addr returns the listening address, or "" before Run
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down server...")

	s.withdraw()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		logging.Warn("Shutdown timeout, forcing close", zap.Error(err))
		_ = s.httpServer.Close()
	} else {
		logging.Info("All requests completed")
	}

	logging.Sync()
	return nil
}

func (s *Server) withdraw() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.advert != nil {
		s.advert.Shutdown()
		s.advert = nil
	}
}
