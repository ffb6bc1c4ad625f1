package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type metricsServer struct {
	srv  *http.Server
	log  *zap.Logger
	done chan struct{}
}

// serveMetrics exposes the default registry on addr/metrics.
func serveMetrics(addr string, log *zap.Logger) *metricsServer {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	m := &metricsServer{
		srv: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		log:  log.With(zap.String("addr", addr)),
		done: make(chan struct{}),
	}

	go func() {
		defer close(m.done)
		m.log.Info("starting metrics server")
		switch err := m.srv.ListenAndServe(); {
		case err == nil, errors.Is(err, http.ErrServerClosed):
			m.log.Info("stopping metrics server")
		default:
			m.log.Warn("metrics server stopped", zap.Error(err))
		}
	}()
	return m
}

func (m *metricsServer) close() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := m.srv.Shutdown(ctx); err != nil {
		m.log.Warn("shutting down the metrics server failed", zap.Error(err))
	}
	<-m.done
}
