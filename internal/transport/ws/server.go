package ws

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/kiryu-dev/battleship-tournament/internal/domain"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// StrategyFactory creates a fresh strategy instance by name.
type StrategyFactory func(name string) (domain.Strategy, error)

// server hosts strategies for remote tournaments. Every connection drives
// its own strategy instance.
type server struct {
	srv      *http.Server
	factory  StrategyFactory
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

func New(addr string, factory StrategyFactory, logger *zap.Logger) *server {
	s := &server{
		factory: factory,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		logger: logger,
	}
	s.srv = &http.Server{Addr: addr, Handler: s.Handler()}
	return s
}

func (s *server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /strategy/{name}", s.serveStrategy)
	mux.HandleFunc("GET /health", s.healthCheck)
	return mux
}

func (s *server) ListenAndServe() error {
	s.logger.Info("starting listening address: " + s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.WithMessage(err, "listen and serve")
	}
	return nil
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
