package middleware

import (
	"net/http"
	"strings"
)

// sensitivePaths are probe targets that should always look like they don't exist.
var sensitivePaths = []string{
	"/.env", "/.git", "/config.json",
	"/.DS_Store", "/php-cgi", "/admin",
}

// BlockSensitivePaths answers 404 for common scanner probes before any other
// handler sees them.
func BlockSensitivePaths(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, p := range sensitivePaths {
			if strings.Contains(r.URL.Path, p) {
				http.Error(w, "Not found", http.StatusNotFound)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
