package handlers

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"library-client/internal/api"
	"library-client/internal/models"
	"library-client/internal/validate"
)

// BookFormHandler obsługuje formularze tworzenia i edycji książki
type BookFormHandler struct {
	formTemplate *template.Template
	client       *api.CachedClient
}

// NewBookFormHandler tworzy nowy handler formularza książki
func NewBookFormHandler(client *api.CachedClient, templatesDir string) *BookFormHandler {
	return &BookFormHandler{
		formTemplate: loadTemplate(templatesDir, "book_form.html"),
		client:       client,
	}
}

// ShowCreateForm wyświetla pusty formularz nowej książki (GET /create-book)
func (h *BookFormHandler) ShowCreateForm(w http.ResponseWriter, r *http.Request) {
	data := NewTemplateData()
	data["Action"] = "create"
	data["Form"] = validate.BookForm{Copies: "1", Available: true}
	data["Errors"] = validate.Errors(nil)
	h.render(w, http.StatusOK, data)
}

// CreateBook waliduje formularz i tworzy książkę (POST /create-book)
func (h *BookFormHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	form, ok := h.parseForm(w, r)
	if !ok {
		return
	}

	data := NewTemplateData()
	data["Action"] = "create"
	data["Form"] = form

	req, errs := validate.BookRequest(form)
	if errs.HasAny() {
		data["Errors"] = errs
		h.render(w, http.StatusBadRequest, data)
		return
	}

	book, err := h.client.CreateBook(r.Context(), req)
	if err != nil {
		// Formularz zostaje nienaruszony - użytkownik może wysłać ponownie
		log.Printf("Błąd tworzenia książki: %v", err)
		data["Errors"] = validate.Errors(nil)
		data["Error"] = apiErrorMessage(err, "Błąd zapisywania książki")
		h.render(w, http.StatusBadGateway, data)
		return
	}

	http.Redirect(w, r, "/books/"+book.ID, http.StatusSeeOther)
}

// ShowEditForm wyświetla formularz edycji z aktualnymi danymi książki (GET /edit-book/{id})
func (h *BookFormHandler) ShowEditForm(w http.ResponseWriter, r *http.Request) {
	bookID := chi.URLParam(r, "id")
	data := NewTemplateData()
	data["Action"] = "edit"
	data["BookID"] = bookID

	book, err := h.client.GetBook(r.Context(), bookID)
	if errors.Is(err, api.ErrNotFound) {
		data["NotFound"] = true
		h.render(w, http.StatusNotFound, data)
		return
	}
	if err != nil {
		log.Printf("Błąd pobierania książki %s: %v", bookID, err)
		data["Form"] = validate.BookForm{}
		data["Errors"] = validate.Errors(nil)
		data["Error"] = "Nie udało się pobrać książki. Spróbuj ponownie."
		h.render(w, http.StatusBadGateway, data)
		return
	}

	data["Form"] = validate.BookForm{
		Title:       book.Title,
		Author:      book.Author,
		Genre:       book.Genre,
		ISBN:        book.ISBN,
		Description: book.Description,
		Copies:      strconv.Itoa(book.Copies),
		Available:   book.Available,
	}
	data["Errors"] = validate.Errors(nil)
	h.render(w, http.StatusOK, data)
}

// UpdateBook waliduje formularz i zapisuje zmiany (POST /edit-book/{id})
func (h *BookFormHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	bookID := chi.URLParam(r, "id")

	form, ok := h.parseForm(w, r)
	if !ok {
		return
	}

	data := NewTemplateData()
	data["Action"] = "edit"
	data["BookID"] = bookID
	data["Form"] = form

	req, errs := validate.BookRequest(form)
	if errs.HasAny() {
		data["Errors"] = errs
		h.render(w, http.StatusBadRequest, data)
		return
	}

	update := models.UpdateBookRequest{
		Title:       req.Title,
		Author:      req.Author,
		Genre:       req.Genre,
		ISBN:        req.ISBN,
		Description: req.Description,
		Copies:      req.Copies,
		Available:   req.Available,
	}

	book, err := h.client.UpdateBook(r.Context(), bookID, update)
	if errors.Is(err, api.ErrNotFound) {
		data["NotFound"] = true
		h.render(w, http.StatusNotFound, data)
		return
	}
	if err != nil {
		log.Printf("Błąd aktualizacji książki %s: %v", bookID, err)
		data["Errors"] = validate.Errors(nil)
		data["Error"] = apiErrorMessage(err, "Błąd zapisywania książki")
		h.render(w, http.StatusBadGateway, data)
		return
	}

	http.Redirect(w, r, "/books/"+book.ID, http.StatusSeeOther)
}

// parseForm odczytuje surowe wartości formularza książki
func (h *BookFormHandler) parseForm(w http.ResponseWriter, r *http.Request) (validate.BookForm, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Błąd parsowania formularza", http.StatusBadRequest)
		return validate.BookForm{}, false
	}
	return validate.BookForm{
		Title:       r.FormValue("title"),
		Author:      r.FormValue("author"),
		Genre:       r.FormValue("genre"),
		ISBN:        r.FormValue("isbn"),
		Description: r.FormValue("description"),
		Copies:      r.FormValue("copies"),
		Available:   r.FormValue("available") == "on" || r.FormValue("available") == "true",
	}, true
}

func (h *BookFormHandler) render(w http.ResponseWriter, status int, data TemplateData) {
	if h.formTemplate == nil {
		writeJSONFallback(w, status, data)
		return
	}
	w.WriteHeader(status)
	if err := h.formTemplate.Execute(w, data); err != nil {
		log.Printf("Błąd renderowania formularza książki: %v", err)
	}
}

// apiErrorMessage mapuje błąd klienta API na komunikat dla użytkownika
func apiErrorMessage(err error, fallback string) string {
	var statusErr *api.StatusError
	if errors.As(err, &statusErr) && statusErr.Message != "" {
		return statusErr.Message
	}
	return fallback
}
