package devapi

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	jsoniter "github.com/json-iterator/go"

	"library-client/internal/models"
)

var json = jsoniter.ConfigFastest

// NewServer buduje router REST nad magazynem - ten sam kontrakt co zdalne API,
// łącznie z kopertą {"data": ...}
func NewServer(storage *Storage) http.Handler {
	srv := &server{storage: storage}

	r := chi.NewRouter()
	r.Get("/books", srv.listBooks)
	r.Post("/books", srv.createBook)
	r.Get("/books/{id}", srv.getBook)
	r.Patch("/books/{id}", srv.updateBook)
	r.Put("/books/{id}", srv.updateBook)
	r.Delete("/books/{id}", srv.deleteBook)
	r.Post("/borrows", srv.borrow)
	r.Get("/borrows/summary", srv.summary)
	return r
}

type server struct {
	storage *Storage
}

func writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]any{"data": data}); err != nil {
		log.Printf("Błąd kodowania odpowiedzi: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{"message": message, "data": nil})
}

func (s *server) listBooks(w http.ResponseWriter, r *http.Request) {
	books, err := s.storage.ListBooks()
	if err != nil {
		log.Printf("Błąd pobierania książek: %v", err)
		writeError(w, http.StatusInternalServerError, "Błąd pobierania książek")
		return
	}
	writeData(w, http.StatusOK, books)
}

func (s *server) getBook(w http.ResponseWriter, r *http.Request) {
	book, err := s.storage.GetBook(chi.URLParam(r, "id"))
	if errors.Is(err, ErrBookNotFound) {
		writeError(w, http.StatusNotFound, "Książka nie została znaleziona")
		return
	}
	if err != nil {
		log.Printf("Błąd pobierania książki: %v", err)
		writeError(w, http.StatusInternalServerError, "Błąd pobierania książki")
		return
	}
	writeData(w, http.StatusOK, book)
}

// validateBookFields sprawdza reguły wspólne dla tworzenia i edycji
func validateBookFields(title, author, genre, isbn string, copies int) string {
	switch {
	case strings.TrimSpace(title) == "":
		return "Tytuł jest wymagany"
	case strings.TrimSpace(author) == "":
		return "Autor jest wymagany"
	case strings.TrimSpace(genre) == "":
		return "Gatunek jest wymagany"
	case strings.TrimSpace(isbn) == "":
		return "ISBN jest wymagany"
	case copies < 0:
		return "Liczba egzemplarzy nie może być ujemna"
	}
	return ""
}

func (s *server) createBook(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Nieprawidłowe dane JSON")
		return
	}
	if msg := validateBookFields(req.Title, req.Author, req.Genre, req.ISBN, req.Copies); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	book, err := s.storage.CreateBook(req)
	if err != nil {
		log.Printf("Błąd tworzenia książki: %v", err)
		writeError(w, http.StatusInternalServerError, "Błąd tworzenia książki")
		return
	}
	writeData(w, http.StatusCreated, book)
}

func (s *server) updateBook(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Nieprawidłowe dane JSON")
		return
	}
	if msg := validateBookFields(req.Title, req.Author, req.Genre, req.ISBN, req.Copies); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	book, err := s.storage.UpdateBook(chi.URLParam(r, "id"), req)
	if errors.Is(err, ErrBookNotFound) {
		writeError(w, http.StatusNotFound, "Książka nie została znaleziona")
		return
	}
	if err != nil {
		log.Printf("Błąd aktualizacji książki: %v", err)
		writeError(w, http.StatusInternalServerError, "Błąd aktualizacji książki")
		return
	}
	writeData(w, http.StatusOK, book)
}

func (s *server) deleteBook(w http.ResponseWriter, r *http.Request) {
	err := s.storage.DeleteBook(chi.URLParam(r, "id"))
	if errors.Is(err, ErrBookNotFound) {
		writeError(w, http.StatusNotFound, "Książka nie została znaleziona")
		return
	}
	if err != nil {
		log.Printf("Błąd usuwania książki: %v", err)
		writeError(w, http.StatusInternalServerError, "Błąd usuwania książki")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) borrow(w http.ResponseWriter, r *http.Request) {
	var req models.BorrowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Nieprawidłowe dane JSON")
		return
	}
	if req.Quantity < 1 {
		writeError(w, http.StatusBadRequest, "Ilość musi wynosić co najmniej 1")
		return
	}
	if _, err := req.ParseDueDate(); err != nil {
		writeError(w, http.StatusBadRequest, "Nieprawidłowy format daty zwrotu")
		return
	}
	if req.DueDate <= time.Now().Format(models.DueDateLayout) {
		writeError(w, http.StatusBadRequest, "Data zwrotu musi być późniejsza niż dzisiaj")
		return
	}

	err := s.storage.Borrow(req)
	switch {
	case errors.Is(err, ErrBookNotFound):
		writeError(w, http.StatusNotFound, "Książka nie została znaleziona")
	case errors.Is(err, ErrNotEnoughCopies):
		writeError(w, http.StatusBadRequest, "Brak wystarczającej liczby egzemplarzy")
	case err != nil:
		log.Printf("Błąd rejestrowania wypożyczenia: %v", err)
		writeError(w, http.StatusInternalServerError, "Błąd rejestrowania wypożyczenia")
	default:
		w.WriteHeader(http.StatusCreated)
	}
}

func (s *server) summary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.storage.Summary()
	if err != nil {
		log.Printf("Błąd pobierania podsumowania: %v", err)
		writeError(w, http.StatusInternalServerError, "Błąd pobierania podsumowania")
		return
	}
	writeData(w, http.StatusOK, summary)
}
