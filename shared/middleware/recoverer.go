package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog/hlog"

	"github.com/vasapolrittideah/animal-shelter-api/shared/httputil"
)

// Recoverer turns panics into a 500 response and logs the stack trace.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			hlog.FromRequest(r).Error().
				Interface("panic", rec).
				Str("stack", string(debug.Stack())).
				Msg("recovered from panic")

			httputil.Error(w, http.StatusInternalServerError, "Internal Server Error")
		}()

		next.ServeHTTP(w, r)
	})
}
