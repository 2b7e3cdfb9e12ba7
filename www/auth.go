package www

import "net/http"

// bearerAuth rejects requests whose Authorization header does not carry the
// configured token. An empty token disables the check entirely (must be an
// explicit deployment choice, enforced at boot).
func bearerAuth(token string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token != "" && r.Header.Get("Authorization") != "Bearer "+token {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
