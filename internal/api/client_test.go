package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-client/internal/models"
)

func TestListBooksUnwrapsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/books", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"data": [
			{"_id": "b1", "title": "Diuna", "author": "Frank Herbert", "genre": "Science Fiction", "isbn": "978-1", "copies": 3, "available": true},
			{"_id": "b2", "title": "Solaris", "author": "Stanisław Lem", "genre": "Science Fiction", "isbn": "978-2", "copies": 0, "available": false}
		]}`)
	}))
	defer srv.Close()

	books, err := NewClient(srv.URL).ListBooks(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "b1", books[0].ID)
	assert.Equal(t, "Diuna", books[0].Title)
	assert.True(t, books[0].IsAvailable())
	assert.False(t, books[1].IsAvailable())
}

func TestGetBookNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"message": "Książka nie została znaleziona", "data": null}`)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).GetBook(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetBookEmptyID(t *testing.T) {
	_, err := NewClient("http://localhost:0").GetBook(context.Background(), "")
	require.Error(t, err)
}

func TestCreateBookSendsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/books", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var got models.CreateBookRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "Lalka", got.Title)
		assert.Equal(t, 2, got.Copies)

		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"data": {"_id": "new1", "title": "Lalka", "author": "Bolesław Prus", "genre": "Powieść", "isbn": "978-3", "copies": 2, "available": true}}`)
	}))
	defer srv.Close()

	book, err := NewClient(srv.URL).CreateBook(context.Background(), models.CreateBookRequest{
		Title:     "Lalka",
		Author:    "Bolesław Prus",
		Genre:     "Powieść",
		ISBN:      "978-3",
		Copies:    2,
		Available: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "new1", book.ID)
}

func TestUpdateBookUsesPatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/books/b1", r.URL.Path)
		io.WriteString(w, `{"data": {"_id": "b1", "title": "Diuna", "author": "Frank Herbert", "genre": "SF", "isbn": "978-1", "copies": 5, "available": true}}`)
	}))
	defer srv.Close()

	book, err := NewClient(srv.URL).UpdateBook(context.Background(), "b1", models.UpdateBookRequest{Title: "Diuna", Copies: 5, Available: true})
	require.NoError(t, err)
	assert.Equal(t, 5, book.Copies)
}

func TestDeleteBookIgnoresBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/books/b1", r.URL.Path)
		io.WriteString(w, `{"data": null}`)
	}))
	defer srv.Close()

	require.NoError(t, NewClient(srv.URL).DeleteBook(context.Background(), "b1"))
}

func TestBorrowBookSendsRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/borrows", r.URL.Path)

		var got models.BorrowRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, models.BorrowRequest{BookID: "b1", Quantity: 2, DueDate: "2026-09-15"}, got)

		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"data": null}`)
	}))
	defer srv.Close()

	err := NewClient(srv.URL).BorrowBook(context.Background(), models.BorrowRequest{BookID: "b1", Quantity: 2, DueDate: "2026-09-15"})
	require.NoError(t, err)
}

func TestGetBorrowSummary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/borrows/summary", r.URL.Path)
		io.WriteString(w, `{"data": [{"bookTitle": "Diuna", "isbn": "978-1", "totalQuantityBorrowed": 7}]}`)
	}))
	defer srv.Close()

	rows, err := NewClient(srv.URL).GetBorrowSummary(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Diuna", rows[0].BookTitle)
	assert.Equal(t, 7, rows[0].TotalQuantityBorrowed)
}

func TestStatusErrorCarriesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"message": "Niewystarczająca liczba egzemplarzy", "data": null}`)
	}))
	defer srv.Close()

	err := NewClient(srv.URL).BorrowBook(context.Background(), models.BorrowRequest{BookID: "b1", Quantity: 99, DueDate: "2026-09-15"})
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
	assert.Equal(t, "Niewystarczająca liczba egzemplarzy", statusErr.Message)
	assert.Contains(t, statusErr.Error(), "400")
}

func TestStatusErrorWithoutMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).ListBooks(context.Background())
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	assert.Equal(t, "serwer zwrócił 500", statusErr.Error())
}

func TestConnectionErrorIsWrapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // adres jest już martwy

	_, err := NewClient(srv.URL).ListBooks(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "błąd połączenia z API")
}

func TestBaseURLTrailingSlash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/books", r.URL.Path)
		io.WriteString(w, `{"data": []}`)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL + "/").ListBooks(context.Background())
	require.NoError(t, err)
}
