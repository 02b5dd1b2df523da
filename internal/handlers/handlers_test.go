package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-client/internal/api"
	"library-client/internal/devapi"
	"library-client/internal/handlers"
	"library-client/internal/models"
)

const templatesDir = "../templates"

type testApp struct {
	router *chi.Mux
	client *api.CachedClient
	raw    *api.Client
}

// newTestApp stawia pełny stos: backend deweloperski w pamięci, klienta z cache
// i router z tymi samymi trasami co serwer produkcyjny
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	storage, err := devapi.NewStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { storage.Close() })

	backend := httptest.NewServer(devapi.NewServer(storage))
	t.Cleanup(backend.Close)

	raw := api.NewClient(backend.URL)
	client := api.NewCachedClient(raw)
	return &testApp{router: newRouter(client), client: client, raw: raw}
}

// newBrokenApp zwraca aplikację wskazującą na martwy adres API
func newBrokenApp(t *testing.T) *testApp {
	t.Helper()
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	backend.Close()

	client := api.NewCachedClient(api.NewClient(backend.URL))
	return &testApp{router: newRouter(client), client: client}
}

func newRouter(client *api.CachedClient) *chi.Mux {
	booksHandler := handlers.NewBooksHandler(client, templatesDir)
	bookFormHandler := handlers.NewBookFormHandler(client, templatesDir)
	borrowHandler := handlers.NewBorrowHandler(client, templatesDir)
	summaryHandler := handlers.NewSummaryHandler(client, templatesDir)
	notFoundHandler := handlers.NewNotFoundHandler(templatesDir)

	r := chi.NewRouter()
	fileServer := http.FileServer(http.Dir("../../static"))
	r.Handle("/static/*", http.StripPrefix("/static/", fileServer))
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/books", http.StatusFound)
	})
	r.Route("/books", func(r chi.Router) {
		r.Get("/", booksHandler.ListBooks)
		r.Get("/{id}", booksHandler.ShowBook)
		r.Delete("/{id}", booksHandler.DeleteBook)
	})
	r.Get("/create-book", bookFormHandler.ShowCreateForm)
	r.Post("/create-book", bookFormHandler.CreateBook)
	r.Get("/edit-book/{id}", bookFormHandler.ShowEditForm)
	r.Post("/edit-book/{id}", bookFormHandler.UpdateBook)
	r.Get("/borrow/{bookId}", borrowHandler.ShowForm)
	r.Post("/borrow/{bookId}", borrowHandler.Borrow)
	r.Get("/borrow-summary", summaryHandler.ShowSummary)
	r.NotFound(notFoundHandler.ServeHTTP)
	return r
}

func (a *testApp) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) postForm(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) seedBook(t *testing.T, title string, copies int) *models.Book {
	t.Helper()
	book, err := a.raw.CreateBook(context.Background(), models.CreateBookRequest{
		Title:     title,
		Author:    "Autor Testowy",
		Genre:     "Powieść",
		ISBN:      "978-0-22222-222-2",
		Copies:    copies,
		Available: true,
	})
	require.NoError(t, err)
	return book
}

func dueDateInTwoWeeks() string {
	return time.Now().AddDate(0, 0, 14).Format(models.DueDateLayout)
}

func TestHomeRedirectsToBooks(t *testing.T) {
	app := newTestApp(t)

	rec := app.get(t, "/")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/books", rec.Header().Get("Location"))
}

func TestBooksListPage(t *testing.T) {
	app := newTestApp(t)
	app.seedBook(t, "Diuna", 3)
	app.seedBook(t, "Solaris", 0)

	rec := app.get(t, "/books")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Diuna")
	assert.Contains(t, body, "Solaris")
	assert.Contains(t, body, "Dostępna")
	assert.Contains(t, body, "Niedostępna")
}

func TestBooksListEmptyState(t *testing.T) {
	app := newTestApp(t)

	rec := app.get(t, "/books")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Brak książek")
}

func TestBooksListUnreachableAPI(t *testing.T) {
	app := newBrokenApp(t)

	rec := app.get(t, "/books")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Nie udało się pobrać listy książek")
}

func TestBookDetailPage(t *testing.T) {
	app := newTestApp(t)
	book := app.seedBook(t, "Diuna", 3)

	rec := app.get(t, "/books/"+book.ID)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Diuna")
	assert.Contains(t, body, "Autor Testowy")
	assert.Contains(t, body, "Dostępna")
}

func TestBookDetailNotFound(t *testing.T) {
	app := newTestApp(t)

	rec := app.get(t, "/books/nie-ma")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Książka nie została znaleziona")
}

func TestCreateBookFlow(t *testing.T) {
	app := newTestApp(t)

	rec := app.get(t, "/create-book")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Dodaj książkę")

	rec = app.postForm(t, "/create-book", url.Values{
		"title":     {"Lalka"},
		"author":    {"Bolesław Prus"},
		"genre":     {"Powieść"},
		"isbn":      {"978-0-33333-333-3"},
		"copies":    {"4"},
		"available": {"on"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	location := rec.Header().Get("Location")
	require.True(t, strings.HasPrefix(location, "/books/"))

	rec = app.get(t, location)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Lalka")
}

func TestCreateBookValidationErrors(t *testing.T) {
	app := newTestApp(t)

	rec := app.postForm(t, "/create-book", url.Values{
		"author": {"Bez Tytułu"},
		"copies": {"-1"},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Tytuł jest wymagany")
	assert.Contains(t, body, "Liczba egzemplarzy nie może być ujemna")
	// Wpisane wartości wracają do formularza
	assert.Contains(t, body, "Bez Tytułu")

	// Nieudana walidacja nie tworzy książki
	books, err := app.client.ListBooks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestEditBookFlow(t *testing.T) {
	app := newTestApp(t)
	book := app.seedBook(t, "Diuna", 3)

	rec := app.get(t, "/edit-book/"+book.ID)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Diuna", "formularz edycji jest wypełniony aktualnymi danymi")

	rec = app.postForm(t, "/edit-book/"+book.ID, url.Values{
		"title":     {"Diuna (wydanie drugie)"},
		"author":    {book.Author},
		"genre":     {book.Genre},
		"isbn":      {book.ISBN},
		"copies":    {"2"},
		"available": {"on"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/books/"+book.ID, rec.Header().Get("Location"))

	updated, err := app.client.GetBook(context.Background(), book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Diuna (wydanie drugie)", updated.Title)
	assert.Equal(t, 2, updated.Copies)
}

func TestEditBookNotFound(t *testing.T) {
	app := newTestApp(t)

	rec := app.get(t, "/edit-book/nie-ma")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteBookFromList(t *testing.T) {
	app := newTestApp(t)
	book := app.seedBook(t, "Diuna", 3)

	// htmx wysyła nagłówek HX-Request i podmienia wiersz w miejscu
	req := httptest.NewRequest(http.MethodDelete, "/books/"+book.ID, nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.get(t, "/books")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Diuna")
}

func TestDeleteBookWithoutHtmxRedirects(t *testing.T) {
	app := newTestApp(t)
	book := app.seedBook(t, "Diuna", 1)

	req := httptest.NewRequest(http.MethodDelete, "/books/"+book.ID, nil)
	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/books", rec.Header().Get("Location"))
}

func TestDeleteBookNotFound(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodDelete, "/books/nie-ma", nil)
	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBorrowFlow(t *testing.T) {
	app := newTestApp(t)
	book := app.seedBook(t, "Diuna", 3)

	rec := app.get(t, "/borrow/"+book.ID)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Wypożycz książkę")

	rec = app.postForm(t, "/borrow/"+book.ID, url.Values{
		"quantity": {"2"},
		"dueDate":  {dueDateInTwoWeeks()},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/borrow-summary", rec.Header().Get("Location"))

	// Serwer jest autorytatywny - świeża migawka ma już zmniejszony licznik
	got, err := app.client.GetBook(context.Background(), book.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Copies)
}

func TestBorrowValidationErrors(t *testing.T) {
	app := newTestApp(t)
	book := app.seedBook(t, "Diuna", 2)

	rec := app.postForm(t, "/borrow/"+book.ID, url.Values{
		"quantity": {"3"},
		"dueDate":  {dueDateInTwoWeeks()},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Ilość nie może przekraczać liczby dostępnych egzemplarzy (2)")

	rec = app.postForm(t, "/borrow/"+book.ID, url.Values{
		"quantity": {"1"},
		"dueDate":  {time.Now().Format(models.DueDateLayout)},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Data zwrotu musi być późniejsza niż dzisiaj")
}

func TestBorrowUnavailableBookIsBlocked(t *testing.T) {
	app := newTestApp(t)
	book := app.seedBook(t, "Solaris", 0)

	rec := app.get(t, "/borrow/"+book.ID)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "niedostępna")

	rec = app.postForm(t, "/borrow/"+book.ID, url.Values{
		"quantity": {"1"},
		"dueDate":  {dueDateInTwoWeeks()},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Ta książka jest obecnie niedostępna do wypożyczenia.")
}

func TestBorrowUnknownBook(t *testing.T) {
	app := newTestApp(t)

	rec := app.get(t, "/borrow/nie-ma")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBorrowSummaryPage(t *testing.T) {
	app := newTestApp(t)
	book := app.seedBook(t, "Diuna", 5)

	require.NoError(t, app.client.BorrowBook(context.Background(), models.BorrowRequest{
		BookID:   book.ID,
		Quantity: 3,
		DueDate:  dueDateInTwoWeeks(),
	}))

	rec := app.get(t, "/borrow-summary")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Diuna")
	assert.Contains(t, body, "978-0-22222-222-2")
	assert.Contains(t, body, "3")
}

func TestBorrowSummaryEmptyState(t *testing.T) {
	app := newTestApp(t)

	rec := app.get(t, "/borrow-summary")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Brak wypożyczeń")
}

func TestStaticStylesheetIsServed(t *testing.T) {
	app := newTestApp(t)

	rec := app.get(t, "/static/app.css")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "htmx-indicator")

	rec = app.get(t, "/books")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/static/app.css", "strony dołączają arkusz stylów")
}

func TestUnknownPathRendersNotFoundPage(t *testing.T) {
	app := newTestApp(t)

	rec := app.get(t, "/nie-ma-takiej-strony")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "/nie-ma-takiej-strony")
}
