package handler

import (
	"io"
	"io/fs"
	"net/http"
)

// PagesHandler serves the embedded portal pages.
type PagesHandler struct {
	pages fs.FS
}

func NewPagesHandler(pages fs.FS) *PagesHandler {
	return &PagesHandler{pages: pages}
}

func (h *PagesHandler) Root(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/lander", http.StatusFound)
}

func (h *PagesHandler) Lander(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "lander.html")
}

func (h *PagesHandler) Supporto(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "supporto.html")
}

func (h *PagesHandler) serve(w http.ResponseWriter, r *http.Request, name string) {
	f, err := h.pages.Open(name)
	if err != nil {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	defer f.Close()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.Copy(w, f)
}
