package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/land-deals/backend/internal/config"
	"github.com/land-deals/backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// HTTPService serves the API with graceful shutdown.
type HTTPService struct {
	cfg    config.ServerConfig
	engine *gin.Engine
}

// NewHTTPService creates the HTTP service.
func NewHTTPService(cfg config.ServerConfig, engine *gin.Engine) *HTTPService {
	return &HTTPService{cfg: cfg, engine: engine}
}

// Name implements Service.
func (s *HTTPService) Name() string {
	return "http"
}

// Run implements Service.
func (s *HTTPService) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              net.JoinHostPort(s.cfg.Host, s.cfg.Port),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		logger.Infow("http_listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
