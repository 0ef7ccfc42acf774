package middleware

import (
	"log"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Standard returns the chain every API router installs: request ids, chi's
// panic recovery and the request logger
func Standard() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{chimw.RequestID, chimw.Recoverer, Logger}
}

// Logger logs one line per request with status, size and duration
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		log.Printf("%s %s %d %dB %s [%s]",
			r.Method, r.URL.RequestURI(), ww.Status(), ww.BytesWritten(), time.Since(start), chimw.GetReqID(r.Context()))
	})
}
