package handlers

import (
	"html/template"
	"log"
	"net/http"
)

// NotFoundHandler obsługuje nieistniejące ścieżki
type NotFoundHandler struct {
	notFoundTemplate *template.Template
}

// NewNotFoundHandler tworzy handler strony 404
func NewNotFoundHandler(templatesDir string) *NotFoundHandler {
	return &NotFoundHandler{
		notFoundTemplate: loadTemplate(templatesDir, "not_found.html"),
	}
}

// ServeHTTP renderuje stronę 404
func (h *NotFoundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.notFoundTemplate == nil {
		http.Error(w, "Strona nie została znaleziona", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNotFound)
	data := NewTemplateData()
	data["Path"] = r.URL.Path
	if err := h.notFoundTemplate.Execute(w, data); err != nil {
		log.Printf("Błąd renderowania strony 404: %v", err)
	}
}
