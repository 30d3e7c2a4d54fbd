package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"buglog/internal/dto"
	"buglog/internal/httpx"
)

// Recover turns a panic into the generic failure envelope. http.ErrAbortHandler
// is re-raised so net/http can drop the connection.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			slog.Default().ErrorContext(r.Context(), "panic recovered",
				"request_id", RequestIDFromContext(r.Context()),
				"panic", rec,
				"stack", string(debug.Stack()),
			)
			httpx.WriteJSON(w, http.StatusInternalServerError, dto.Failed())
		}()
		next.ServeHTTP(w, r)
	})
}
