// Package api to klient zdalnego REST API biblioteki.
// Serwer opakowuje odpowiedzi w kopertę {"data": ...} - klient rozpakowuje
// ją zanim dane trafią do widoków.
package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"library-client/internal/models"
)

var json = jsoniter.ConfigFastest

// ErrNotFound zwracany gdy żądany zasób nie istnieje na serwerze (404)
var ErrNotFound = errors.New("zasób nie został znaleziony")

// StatusError opisuje odpowiedź serwera z kodem spoza 2xx
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("serwer zwrócił %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("serwer zwrócił %d", e.StatusCode)
}

// Client wykonuje surowe wywołania REST bez cache
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient tworzy klienta API dla podanego adresu bazowego
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// envelope to koperta odpowiedzi serwera
type envelope struct {
	Data    jsoniter.RawMessage `json:"data"`
	Message string              `json:"message,omitempty"`
}

// do wykonuje żądanie HTTP i dekoduje kopertę do out (out może być nil
// dla operacji zwracających pustą odpowiedź)
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("błąd kodowania żądania: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("błąd tworzenia żądania: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("błąd połączenia z API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s %s: %w", method, path, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		var env envelope
		message := ""
		if json.Unmarshal(raw, &env) == nil {
			message = env.Message
		}
		return &StatusError{StatusCode: resp.StatusCode, Message: message}
	}

	if out == nil {
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("błąd odczytu odpowiedzi: %w", err)
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("błąd parsowania odpowiedzi: %w", err)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("błąd parsowania danych odpowiedzi: %w", err)
	}
	return nil
}

// ListBooks pobiera pełną listę książek (GET /books)
func (c *Client) ListBooks(ctx context.Context) ([]models.Book, error) {
	var books []models.Book
	if err := c.do(ctx, http.MethodGet, "/books", nil, &books); err != nil {
		return nil, fmt.Errorf("błąd pobierania listy książek: %w", err)
	}
	return books, nil
}

// GetBook pobiera książkę po ID (GET /books/{id})
func (c *Client) GetBook(ctx context.Context, id string) (*models.Book, error) {
	if id == "" {
		return nil, fmt.Errorf("ID książki nie może być puste")
	}
	var book models.Book
	if err := c.do(ctx, http.MethodGet, "/books/"+id, nil, &book); err != nil {
		return nil, fmt.Errorf("błąd pobierania książki: %w", err)
	}
	return &book, nil
}

// CreateBook tworzy nową książkę (POST /books); serwer nadaje ID i znaczniki czasu
func (c *Client) CreateBook(ctx context.Context, req models.CreateBookRequest) (*models.Book, error) {
	var book models.Book
	if err := c.do(ctx, http.MethodPost, "/books", req, &book); err != nil {
		return nil, fmt.Errorf("błąd tworzenia książki: %w", err)
	}
	return &book, nil
}

// UpdateBook podmienia pola modyfikowalne książki (PATCH /books/{id})
func (c *Client) UpdateBook(ctx context.Context, id string, req models.UpdateBookRequest) (*models.Book, error) {
	if id == "" {
		return nil, fmt.Errorf("ID książki nie może być puste")
	}
	var book models.Book
	if err := c.do(ctx, http.MethodPatch, "/books/"+id, req, &book); err != nil {
		return nil, fmt.Errorf("błąd aktualizacji książki: %w", err)
	}
	return &book, nil
}

// DeleteBook usuwa książkę po ID (DELETE /books/{id}); operacja jest nieodwracalna
func (c *Client) DeleteBook(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("ID książki nie może być puste")
	}
	if err := c.do(ctx, http.MethodDelete, "/books/"+id, nil, nil); err != nil {
		return fmt.Errorf("błąd usuwania książki: %w", err)
	}
	return nil
}

// BorrowBook rejestruje wypożyczenie (POST /borrows).
// Serwer sam zmniejsza liczbę egzemplarzy - klient tego nie modeluje lokalnie.
func (c *Client) BorrowBook(ctx context.Context, req models.BorrowRequest) error {
	if err := c.do(ctx, http.MethodPost, "/borrows", req, nil); err != nil {
		return fmt.Errorf("błąd wypożyczania książki: %w", err)
	}
	return nil
}

// GetBorrowSummary pobiera raport wypożyczeń (GET /borrows/summary)
func (c *Client) GetBorrowSummary(ctx context.Context) ([]models.BorrowSummary, error) {
	var rows []models.BorrowSummary
	if err := c.do(ctx, http.MethodGet, "/borrows/summary", nil, &rows); err != nil {
		return nil, fmt.Errorf("błąd pobierania podsumowania wypożyczeń: %w", err)
	}
	return rows, nil
}
