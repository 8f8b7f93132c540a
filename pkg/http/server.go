package http

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	http_router "github.com/lintang-b-s/navigatorx-mld/pkg/http/router"
	"github.com/lintang-b-s/navigatorx-mld/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/navigatorx-mld/pkg/http/server"
	"github.com/lintang-b-s/navigatorx-mld/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	Log *zap.Logger
	g   errgroup.Group
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log}
}

// Use. start the api in the background, it stops when ctx is canceled.
func (s *Server) Use(
	ctx context.Context,
	useRateLimit bool,
	routingService controllers.RoutingService,
	reg *prometheus.Registry,
	m *metrics.Metrics,
) *Server {
	config := http_server.Config{
		Port:         viper.GetInt("API_PORT"),
		Timeout:      viper.GetDuration("API_TIMEOUT"),
		ReadTimeout:  viper.GetDuration("API_READ_TIMEOUT"),
		WriteTimeout: viper.GetDuration("API_WRITE_TIMEOUT"),
		IdleTimeout:  viper.GetDuration("API_IDLE_TIMEOUT"),
	}

	server := http_router.NewAPI(s.Log)

	s.g.Go(func() error {
		return server.Run(ctx, config, useRateLimit, routingService, reg, m)
	})

	return s
}

// Wait. blocks until the api stopped.
func (s *Server) Wait() error {
	return s.g.Wait()
}

// GracefulShutdown. blocks until SIGINT or SIGTERM.
func GracefulShutdown() os.Signal {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	return <-quit
}
