package middleware

import "net/http"

// MaxRequestSize caps request bodies. Multipart uploads carry their own
// larger limit in the upload handler and are skipped here.
func MaxRequestSize(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil && extractContentType(r.Header.Get("Content-Type")) != "multipart/form-data" {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
