package api

import (
	"io/fs"
	"net/http"
	"strings"
)

// SPAHandler serves the API under /api/ and the static UI from the dist
// directory of assets for every other path. Unknown paths get index.html.
func SPAHandler(apiHandler http.Handler, assets fs.FS) http.Handler {
	dist, err := fs.Sub(assets, "dist")
	if err == nil {
		if _, statErr := fs.Stat(dist, "index.html"); statErr != nil {
			err = statErr
		}
	}
	var static http.Handler
	if err != nil {
		static = http.HandlerFunc(uiMissing)
	} else {
		static = staticHandler(dist)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			apiHandler.ServeHTTP(w, r)
			return
		}
		static.ServeHTTP(w, r)
	})
}

func staticHandler(dist fs.FS) http.Handler {
	files := http.FileServer(http.FS(dist))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/")
		if name != "" {
			if _, err := fs.Stat(dist, name); err != nil {
				r.URL.Path = "/"
			}
		}
		files.ServeHTTP(w, r)
	})
}

func uiMissing(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Web UI assets are missing from this build; the JSON API is still served under /api/.\n"))
}
