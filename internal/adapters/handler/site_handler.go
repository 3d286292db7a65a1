package handler

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/edusuite/dashboard-gateway/internal/adapters/middleware"
)

// SiteHandler serves the prebuilt localized site pages from disk. The route
// gate has already rewritten the path to carry a locale prefix, so lookups
// are {staticDir}/{locale}/{page}/index.html with a per-locale fallback to
// the locale's root index.
type SiteHandler struct {
	staticDir string
}

func NewSiteHandler(staticDir string) *SiteHandler {
	return &SiteHandler{staticDir: staticDir}
}

func (h *SiteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	locale := middleware.LocaleFromContext(r.Context())
	if locale == "" {
		http.NotFound(w, r)
		return
	}

	rel := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
	candidates := []string{
		filepath.Join(h.staticDir, filepath.FromSlash(rel), "index.html"),
		filepath.Join(h.staticDir, locale, "index.html"),
	}
	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			http.ServeFile(w, r, p)
			return
		}
	}
	http.NotFound(w, r)
}
