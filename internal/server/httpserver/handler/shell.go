package handler

import (
	"net/http"
	"os"
	"path/filepath"
)

// Shell serves the single-page application. Paths that match a file
// under the static directory are served as-is; everything else falls
// back to index.html so client-side routes survive a reload.
func (h *Handler) Shell(w http.ResponseWriter, r *http.Request) {
	if h.staticDir == "" {
		http.NotFound(w, r)
		return
	}

	h.ensureForgeryToken(w, r)

	path := filepath.Join(h.staticDir, filepath.Clean("/"+r.URL.Path))
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		http.ServeFile(w, r, path)
		return
	}
	http.ServeFile(w, r, filepath.Join(h.staticDir, "index.html"))
}
