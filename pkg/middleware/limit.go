package middleware

import "net/http"

// MaxBytes returns middleware that caps request bodies at limit bytes.
// Reads past the limit fail, which JSON decoding reports as a bad request.
func MaxBytes(limit int64) Func {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil && limit > 0 {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
