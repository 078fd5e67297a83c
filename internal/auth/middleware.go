package auth

import "net/http"

// Middleware decodes the session cookie and injects the resulting identity
// into the request context. Requests without a valid session pass through
// anonymous; the admin gate downstream decides what that means.
func Middleware(sessions *Sessions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sessions != nil {
				if identity, err := sessions.Verify(r); err == nil {
					r = r.WithContext(WithIdentity(r.Context(), identity))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
