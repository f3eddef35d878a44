package middleware

import (
	"net/http"
	"strings"
)

// TrimSlash canonicalizes paths ending in "/". GET and HEAD requests are
// redirected; other methods are rewritten in place so request bodies such as
// multipart uploads are not lost to a redirect. "/" is left alone.
func TrimSlash() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if path == "/" || !strings.HasSuffix(path, "/") {
				next.ServeHTTP(w, r)
				return
			}

			trimmed := strings.TrimRight(path, "/")
			if trimmed == "" {
				trimmed = "/"
			}

			switch r.Method {
			case http.MethodGet, http.MethodHead:
				target := trimmed
				if r.URL.RawQuery != "" {
					target += "?" + r.URL.RawQuery
				}
				http.Redirect(w, r, target, http.StatusMovedPermanently)
			default:
				r2 := r.Clone(r.Context())
				r2.URL.Path = trimmed
				r2.URL.RawPath = ""
				next.ServeHTTP(w, r2)
			}
		})
	}
}
