package middleware

import (
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
)

// PanicRecovery keeps the view interactive after any failure: a panic
// anywhere below becomes a JSON 500 instead of tearing the server down.
func PanicRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("[Recover] panic on %s %s: %v\n%s", r.Method, r.URL.Path, err, debug.Stack())

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				fmt.Fprintf(w, `{"error": "Internal server error"}`)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
