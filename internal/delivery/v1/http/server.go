package http

import (
	"context"
	"net/http"

	"github.com/robosite/storefront/internal/cfg"
)

// Server — тонкая обёртка над http.Server с таймаутами из конфига.
type Server struct {
	srv *http.Server
}

func NewServer(handler http.Handler, cfg *cfg.HTTPConfig) *Server {
	return &Server{
		srv: &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
	}
}

// Run блокирует до остановки сервера.
func (s *Server) Run() error {
	return s.srv.ListenAndServe()
}

// Stop выполняет graceful shutdown с дедлайном из контекста.
func (s *Server) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
