package stub

import (
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashAPIKey hashes the key the stub should accept. Only the hash is kept.
func HashAPIKey(key string, cost int) ([]byte, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return bcrypt.GenerateFromPassword([]byte(key), cost)
}

// APIKeyAuth rejects requests whose bearer key does not match hash
func APIKeyAuth(hash []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := extractKey(r)
			if key == "" {
				WriteError(w, NewUnauthorizedError())
				return
			}
			if err := bcrypt.CompareHashAndPassword(hash, []byte(key)); err != nil {
				WriteError(w, &httpError{http.StatusUnauthorized, "Invalid API key"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func extractKey(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}
