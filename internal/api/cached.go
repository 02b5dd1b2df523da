package api

import (
	"context"

	"library-client/internal/cache"
	"library-client/internal/models"
)

// Tagi unieważniania cache
const (
	// TagBooks obejmuje listę książek oraz wszystkie widoki szczegółów
	TagBooks = "books"
	// TagBorrowSummary obejmuje raport wypożyczeń
	TagBorrowSummary = "borrow-summary"
)

// TagBook zwraca tag pojedynczej książki
func TagBook(id string) string {
	return "book:" + id
}

var (
	keyBooksList = cache.NewKey("books/list")
	keySummary   = cache.NewKey("borrows/summary")
)

func keyBook(id string) cache.Key {
	return cache.NewKey("books/get", id)
}

// CachedClient opakowuje Client w rejestr zasobów: odczyty są zapamiętywane
// pod kluczem (operacja, parametry), a każda mutacja wylicza tagi, które może
// dotknąć, i unieważnia je po sukcesie. Nieudana mutacja niczego nie zmienia.
type CachedClient struct {
	api   *Client
	store *cache.Store
}

// NewCachedClient tworzy klienta z cache nad surowym klientem API
func NewCachedClient(c *Client) *CachedClient {
	return &CachedClient{
		api:   c,
		store: cache.NewStore(),
	}
}

// Store udostępnia rejestr cache (subskrypcje, testy)
func (c *CachedClient) Store() *cache.Store {
	return c.store
}

// ListBooks zwraca listę książek z cache lub z API
func (c *CachedClient) ListBooks(ctx context.Context) ([]models.Book, error) {
	return cache.Fetch(ctx, c.store, keyBooksList, []string{TagBooks}, c.api.ListBooks)
}

// GetBook zwraca książkę z cache lub z API.
// Widok szczegółów nosi też tag listy, więc usunięcie lub utworzenie książki
// unieważnia także zapamiętane szczegóły.
func (c *CachedClient) GetBook(ctx context.Context, id string) (*models.Book, error) {
	return cache.Fetch(ctx, c.store, keyBook(id), []string{TagBooks, TagBook(id)},
		func(ctx context.Context) (*models.Book, error) {
			return c.api.GetBook(ctx, id)
		})
}

// GetBorrowSummary zwraca raport wypożyczeń z cache lub z API
func (c *CachedClient) GetBorrowSummary(ctx context.Context) ([]models.BorrowSummary, error) {
	return cache.Fetch(ctx, c.store, keySummary, []string{TagBorrowSummary}, c.api.GetBorrowSummary)
}

// CreateBook tworzy książkę i unieważnia listę
func (c *CachedClient) CreateBook(ctx context.Context, req models.CreateBookRequest) (*models.Book, error) {
	book, err := c.api.CreateBook(ctx, req)
	if err != nil {
		return nil, err
	}
	c.store.Invalidate(TagBooks)
	return book, nil
}

// UpdateBook aktualizuje książkę i unieważnia listę oraz jej szczegóły
func (c *CachedClient) UpdateBook(ctx context.Context, id string, req models.UpdateBookRequest) (*models.Book, error) {
	book, err := c.api.UpdateBook(ctx, id, req)
	if err != nil {
		return nil, err
	}
	c.store.Invalidate(TagBooks, TagBook(id))
	return book, nil
}

// DeleteBook usuwa książkę i unieważnia listę (tag listy obejmuje też szczegóły)
func (c *CachedClient) DeleteBook(ctx context.Context, id string) error {
	if err := c.api.DeleteBook(ctx, id); err != nil {
		return err
	}
	c.store.Invalidate(TagBooks)
	return nil
}

// BorrowBook rejestruje wypożyczenie i unieważnia książkę, listę oraz raport.
// Autorytatywna liczba egzemplarzy wraca do klienta dopiero przy ponownym pobraniu.
func (c *CachedClient) BorrowBook(ctx context.Context, req models.BorrowRequest) error {
	if err := c.api.BorrowBook(ctx, req); err != nil {
		return err
	}
	c.store.Invalidate(TagBooks, TagBook(req.BookID), TagBorrowSummary)
	return nil
}
