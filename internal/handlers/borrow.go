package handlers

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"library-client/internal/api"
	"library-client/internal/models"
	"library-client/internal/validate"
)

// BorrowHandler obsługuje formularz wypożyczenia książki
type BorrowHandler struct {
	formTemplate *template.Template
	client       *api.CachedClient
}

// NewBorrowHandler tworzy nowy handler wypożyczeń
func NewBorrowHandler(client *api.CachedClient, templatesDir string) *BorrowHandler {
	return &BorrowHandler{
		formTemplate: loadTemplate(templatesDir, "borrow_form.html"),
		client:       client,
	}
}

// ShowForm wyświetla formularz wypożyczenia (GET /borrow/{bookId})
func (h *BorrowHandler) ShowForm(w http.ResponseWriter, r *http.Request) {
	_, data, ok := h.loadBook(w, r)
	if !ok {
		return
	}

	data["Quantity"] = "1"
	data["DueDate"] = ""
	data["MinDate"] = minDueDate(time.Now())
	data["Errors"] = validate.Errors(nil)
	h.render(w, http.StatusOK, data)
}

// Borrow waliduje żądanie względem migawki książki i wysyła je do API
// (POST /borrow/{bookId}). Książka niedostępna blokuje wysyłkę całkowicie.
func (h *BorrowHandler) Borrow(w http.ResponseWriter, r *http.Request) {
	book, data, ok := h.loadBook(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Błąd parsowania formularza", http.StatusBadRequest)
		return
	}
	quantity := r.FormValue("quantity")
	dueDate := r.FormValue("dueDate")

	data["Quantity"] = quantity
	data["DueDate"] = dueDate
	data["MinDate"] = minDueDate(time.Now())
	data["Errors"] = validate.Errors(nil)

	if !book.IsAvailable() {
		data["Error"] = "Ta książka jest obecnie niedostępna do wypożyczenia."
		h.render(w, http.StatusBadRequest, data)
		return
	}

	req, errs := validate.Borrow(book, quantity, dueDate, time.Now())
	if errs.HasAny() {
		data["Errors"] = errs
		h.render(w, http.StatusBadRequest, data)
		return
	}

	if err := h.client.BorrowBook(r.Context(), req); err != nil {
		log.Printf("Błąd wypożyczania książki %s: %v", book.ID, err)
		data["Error"] = apiErrorMessage(err, "Błąd wypożyczania książki")
		h.render(w, http.StatusBadGateway, data)
		return
	}

	http.Redirect(w, r, "/borrow-summary", http.StatusSeeOther)
}

// loadBook pobiera migawkę książki dla formularza; false oznacza, że odpowiedź
// została już zapisana (stan NotFound albo błąd odczytu)
func (h *BorrowHandler) loadBook(w http.ResponseWriter, r *http.Request) (*models.Book, TemplateData, bool) {
	bookID := chi.URLParam(r, "bookId")
	data := NewTemplateData()

	book, err := h.client.GetBook(r.Context(), bookID)
	if errors.Is(err, api.ErrNotFound) {
		data["NotFound"] = true
		h.render(w, http.StatusNotFound, data)
		return nil, nil, false
	}
	if err != nil {
		log.Printf("Błąd pobierania książki %s: %v", bookID, err)
		data["Error"] = "Nie udało się pobrać książki. Spróbuj ponownie."
		h.render(w, http.StatusBadGateway, data)
		return nil, nil, false
	}

	data["Book"] = book
	return book, data, true
}

func (h *BorrowHandler) render(w http.ResponseWriter, status int, data TemplateData) {
	if h.formTemplate == nil {
		writeJSONFallback(w, status, data)
		return
	}
	w.WriteHeader(status)
	if err := h.formTemplate.Execute(w, data); err != nil {
		log.Printf("Błąd renderowania formularza wypożyczenia: %v", err)
	}
}

// minDueDate zwraca jutrzejszą datę - najwcześniejszy dopuszczalny termin zwrotu
func minDueDate(now time.Time) string {
	return now.AddDate(0, 0, 1).Format(models.DueDateLayout)
}
