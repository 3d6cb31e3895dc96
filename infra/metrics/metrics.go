package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"seedsynth/infra/utils/logger"
)

const (
	metricsPath     = "/metrics"
	shutdownTimeout = 5 * time.Second
)

func newServer(addr string) *http.Server {
	router := mux.NewRouter()
	router.Path(metricsPath).Handler(promhttp.Handler())
	srv := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       time.Second,
		IdleTimeout:       2 * time.Minute,
		Addr:              addr,
		Handler:           router,
	}
	srv.SetKeepAlivesEnabled(true)
	return srv
}

// Serve - отдает /metrics до отмены ctx. Пустой адрес - сервер не нужен
func Serve(ctx context.Context, addr string) error {
	if addr == "" {
		return nil
	}
	srv := newServer(addr)

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("serving metrics on %s%s", addr, metricsPath)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return errors.Wrapf(err, "metrics server on %s", addr)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "failed to stop metrics server")
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "metrics server")
	}
	return nil
}
