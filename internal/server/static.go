package server

import (
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"
)

// spaEntry is the document served for every route the API and the static
// tree do not match, so the frontend can do its own routing.
const spaEntry = "index.html"

// SPAHandler serves prebuilt frontend assets from a directory and falls back
// to the entry document for unmatched paths. It is registered as the
// catch-all route, after every API route.
type SPAHandler struct {
	fsys fs.FS
}

// NewSPAHandler serves the asset tree rooted at dir.
func NewSPAHandler(dir string) *SPAHandler {
	return &SPAHandler{fsys: os.DirFS(dir)}
}

// NewSPAHandlerFS serves the given asset filesystem directly.
func NewSPAHandlerFS(fsys fs.FS) *SPAHandler {
	return &SPAHandler{fsys: fsys}
}

func (h *SPAHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Static content is read-only.
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	rel, ok := relPath(r.URL.Path)
	if ok && h.exists(rel) {
		http.ServeFileFS(w, r, h.fsys, rel)
		return
	}

	// SPA fallback: unmatched routes get the entry document with 200 so
	// client-side routing can take over.
	http.ServeFileFS(w, r, h.fsys, spaEntry)
}

func (h *SPAHandler) exists(rel string) bool {
	info, err := fs.Stat(h.fsys, rel)
	return err == nil && !info.IsDir()
}

// relPath returns a sanitized fs-relative path for a request path. It rejects
// traversal and absolute-path tricks so serving cannot escape the asset root.
func relPath(urlPath string) (string, bool) {
	rel := strings.TrimPrefix(urlPath, "/")
	if rel == "" {
		return "", false
	}

	// Reject NUL (can appear via %00) and platform-dependent separators.
	if strings.IndexByte(rel, 0) != -1 || strings.Contains(rel, "\\") {
		return "", false
	}

	// A second leading "/" indicates an absolute-path attempt
	// (e.g. "//etc/passwd").
	if strings.HasPrefix(rel, "/") {
		return "", false
	}

	// Reject dot-segments before cleaning so traversal attempts are not
	// "cleaned away" into a different request.
	for _, seg := range strings.Split(rel, "/") {
		if seg == "." || seg == ".." {
			return "", false
		}
	}

	clean := path.Clean(rel)
	if clean == "." || clean == "" || strings.HasPrefix(clean, "../") || strings.HasPrefix(clean, "/") {
		return "", false
	}

	return clean, true
}
