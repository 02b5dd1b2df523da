package handlers

import (
	"errors"
	"html/template"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"library-client/internal/api"
)

// BooksHandler obsługuje listę książek, stronę szczegółów i usuwanie
type BooksHandler struct {
	listTemplate   *template.Template
	detailTemplate *template.Template
	client         *api.CachedClient
}

// NewBooksHandler tworzy nowy handler książek
func NewBooksHandler(client *api.CachedClient, templatesDir string) *BooksHandler {
	return &BooksHandler{
		listTemplate:   loadTemplate(templatesDir, "books_list.html"),
		detailTemplate: loadTemplate(templatesDir, "book_detail.html"),
		client:         client,
	}
}

// ListBooks wyświetla listę wszystkich książek (GET /books)
func (h *BooksHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	data := NewTemplateData()

	books, err := h.client.ListBooks(r.Context())
	if err != nil {
		log.Printf("Błąd pobierania listy książek: %v", err)
		data["Error"] = "Nie udało się pobrać listy książek. Sprawdź połączenie i spróbuj ponownie."
		h.renderList(w, http.StatusBadGateway, data)
		return
	}

	data["Books"] = books
	h.renderList(w, http.StatusOK, data)
}

// ShowBook wyświetla szczegóły książki (GET /books/{id})
func (h *BooksHandler) ShowBook(w http.ResponseWriter, r *http.Request) {
	bookID := chi.URLParam(r, "id")
	data := NewTemplateData()

	book, err := h.client.GetBook(r.Context(), bookID)
	if errors.Is(err, api.ErrNotFound) {
		data["NotFound"] = true
		h.renderDetail(w, http.StatusNotFound, data)
		return
	}
	if err != nil {
		log.Printf("Błąd pobierania książki %s: %v", bookID, err)
		data["Error"] = "Nie udało się pobrać książki. Spróbuj ponownie."
		h.renderDetail(w, http.StatusBadGateway, data)
		return
	}

	data["Book"] = book
	h.renderDetail(w, http.StatusOK, data)
}

// DeleteBook usuwa książkę (DELETE /books/{id}).
// Potwierdzenie odbywa się w przeglądarce (hx-confirm) zanim żądanie wyjdzie.
func (h *BooksHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	bookID := chi.URLParam(r, "id")

	if err := h.client.DeleteBook(r.Context(), bookID); err != nil {
		log.Printf("Błąd usuwania książki %s: %v", bookID, err)
		if errors.Is(err, api.ErrNotFound) {
			http.Error(w, "Książka nie została znaleziona", http.StatusNotFound)
			return
		}
		http.Error(w, "Błąd usuwania książki", http.StatusBadGateway)
		return
	}

	// htmx podmienia wiersz tabeli; pełny formularz dostaje przekierowanie
	if r.Header.Get("HX-Request") == "true" {
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, "/books", http.StatusSeeOther)
}

func (h *BooksHandler) renderList(w http.ResponseWriter, status int, data TemplateData) {
	if h.listTemplate == nil {
		writeJSONFallback(w, status, data)
		return
	}
	w.WriteHeader(status)
	if err := h.listTemplate.Execute(w, data); err != nil {
		log.Printf("Błąd renderowania listy książek: %v", err)
	}
}

func (h *BooksHandler) renderDetail(w http.ResponseWriter, status int, data TemplateData) {
	if h.detailTemplate == nil {
		writeJSONFallback(w, status, data)
		return
	}
	w.WriteHeader(status)
	if err := h.detailTemplate.Execute(w, data); err != nil {
		log.Printf("Błąd renderowania szczegółów książki: %v", err)
	}
}
