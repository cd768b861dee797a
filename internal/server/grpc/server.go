// Package grpc serves the A.I.VOICE Editor over gRPC.
package grpc

import (
	"fmt"
	"net"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"

	"github.com/emmett/aivoice/internal/logging"
	"github.com/emmett/aivoice/internal/session"
	"github.com/emmett/aivoice/internal/tts"
)

// Server wraps the gRPC server and services
type Server struct {
	grpcServer *grpc.Server
	engine     tts.Engine
	addr       string
	log        *logrus.Entry
}

// Config holds server configuration
type Config struct {
	Host string
	Port int
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, fmt.Sprint(c.Port))
}

// NewServer creates a new gRPC server. engine may be nil, in which case
// the TTS service is not registered.
func NewServer(cfg Config, sess *session.Session, engine tts.Engine) *Server {
	s := &Server{
		grpcServer: grpc.NewServer(),
		engine:     engine,
		addr:       cfg.Addr(),
		log:        logging.Component("grpc"),
	}

	RegisterEditorServer(s.grpcServer, NewEditorService(sess))
	if engine != nil {
		RegisterTTSServer(s.grpcServer, NewTTSService(engine))
	}

	return s
}

// Start listens on the configured address and serves until Stop
func (s *Server) Start() error {
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	return s.Serve(lis)
}

// Serve serves on an existing listener
func (s *Server) Serve(lis net.Listener) error {
	s.log.WithField("addr", lis.Addr().String()).Info("gRPC server listening")
	return s.grpcServer.Serve(lis)
}

// Stop gracefully stops the server
func (s *Server) Stop() {
	s.grpcServer.GracefulStop()
	if s.engine != nil {
		s.engine.Close()
	}
}
