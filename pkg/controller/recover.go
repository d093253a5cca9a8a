package controller

import (
	"linkcleaner/pkg/logger"
	"net/http"

	"go.uber.org/zap"
)

// WithRecover returns a middleware that turns a panicking handler into a 500
// response and an error log instead of a dropped connection.
func WithRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				if p == http.ErrAbortHandler { //nolint: errorlint
					panic(p)
				}
				logger.Error(r.Context(), "captured panic in handler", zap.Any("panic", p), zap.Stack("stack"))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"code":"INTERNAL","message":"internal error"}`))
			}
		}()

		next.ServeHTTP(w, r)
	})
}
