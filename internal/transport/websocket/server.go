package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/matryer/way"
)

// NewHandler routes the spectator endpoints to hub.
func NewHandler(hub *Hub) http.Handler {
	router := way.NewRouter()
	router.HandleFunc("GET", "/ws", hub.ServeWS)
	router.HandleFunc("GET", "/state", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(hub.Latest()); err != nil {
			hub.logger.Error("cannot write state", "error", err)
		}
	})
	return router
}

// Serve runs hub and an HTTP server for it on addr until ctx is done.
func Serve(ctx context.Context, addr string, hub *Hub) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewHandler(hub),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go hub.Run(ctx)

	errCh := make(chan error, 1)
	go func() {
		hub.logger.Info("watch server listening", "address", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
