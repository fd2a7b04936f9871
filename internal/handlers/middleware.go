package handlers

import (
	"crypto/subtle"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Middleware holds dependencies for middleware functions
type Middleware struct {
	adminToken string
}

// NewMiddleware creates a new middleware instance. adminToken is the
// shared admin secret, either plaintext or a bcrypt hash of it; empty
// means every admin route is denied.
func NewMiddleware(adminToken string) *Middleware {
	return &Middleware{adminToken: adminToken}
}

// CORS allows the static frontend to call the API from any origin and
// short-circuits preflight requests
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Admin")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin gates a handler behind the shared admin secret, accepted
// from the X-Admin header or the admin query parameter
func (m *Middleware) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if m.adminToken == "" {
			respondError(w, http.StatusForbidden, "forbidden")
			return
		}

		token := r.Header.Get("X-Admin")
		if token == "" {
			token = r.URL.Query().Get("admin")
		}
		if !m.tokenMatches(token) {
			respondError(w, http.StatusForbidden, "forbidden")
			return
		}
		next(w, r)
	}
}

// tokenMatches compares the presented token against the configured
// secret. A configured value starting with a bcrypt prefix is treated as
// a hash; anything else is compared in constant time.
func (m *Middleware) tokenMatches(token string) bool {
	if token == "" {
		return false
	}
	if strings.HasPrefix(m.adminToken, "$2a$") || strings.HasPrefix(m.adminToken, "$2b$") {
		return bcrypt.CompareHashAndPassword([]byte(m.adminToken), []byte(token)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(m.adminToken), []byte(token)) == 1
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Call next handler
		next.ServeHTTP(w, r)

		// Log request
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}
