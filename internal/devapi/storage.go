// Package devapi to lokalny backend deweloperski z tym samym kontraktem REST
// co zdalne API biblioteki. Istnieje po to, żeby klienta dało się uruchomić
// i przetestować end-to-end bez zewnętrznego serwera.
package devapi

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"library-client/internal/models"
)

// Błędy domenowe magazynu
var (
	// ErrBookNotFound - książka o podanym ID nie istnieje
	ErrBookNotFound = errors.New("książka nie została znaleziona")
	// ErrNotEnoughCopies - żądana ilość przekracza liczbę egzemplarzy
	ErrNotEnoughCopies = errors.New("brak wystarczającej liczby egzemplarzy")
)

// Storage przechowuje książki i rejestr wypożyczeń w SQLite
type Storage struct {
	db *sql.DB
}

// NewStorage otwiera (lub tworzy) bazę SQLite pod podaną ścieżką i zakłada schemat.
// Ścieżka ":memory:" daje bazę ulotną na potrzeby testów.
func NewStorage(dbPath string) (*Storage, error) {
	if dbPath != ":memory:" {
		if dir := filepath.Dir(dbPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("błąd tworzenia katalogu bazy: %w", err)
			}
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=1", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("błąd otwierania bazy: %w", err)
	}
	// SQLite ma jednego writera; jedno połączenie zachowuje też bazę :memory:
	db.SetMaxOpenConns(1)

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Storage{db: db}, nil
}

// Close zamyka połączenie z bazą
func (s *Storage) Close() error {
	return s.db.Close()
}

func applySchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS books (
            id TEXT PRIMARY KEY,
            title TEXT NOT NULL,
            author TEXT NOT NULL,
            genre TEXT NOT NULL,
            isbn TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            copies INTEGER NOT NULL,
            available BOOLEAN NOT NULL,
            created_at DATETIME NOT NULL,
            updated_at DATETIME NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS borrows (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            book_id TEXT NOT NULL REFERENCES books(id) ON DELETE CASCADE,
            quantity INTEGER NOT NULL,
            due_date TEXT NOT NULL,
            created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
        );`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("błąd zakładania schematu: %w", err)
		}
	}
	return nil
}

func scanBook(row interface{ Scan(...any) error }) (*models.Book, error) {
	var book models.Book
	var createdAt, updatedAt time.Time
	err := row.Scan(&book.ID, &book.Title, &book.Author, &book.Genre, &book.ISBN,
		&book.Description, &book.Copies, &book.Available, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	book.CreatedAt = &createdAt
	book.UpdatedAt = &updatedAt
	return &book, nil
}

const bookColumns = `id, title, author, genre, isbn, description, copies, available, created_at, updated_at`

// ListBooks zwraca wszystkie książki posortowane po tytule
func (s *Storage) ListBooks() ([]models.Book, error) {
	rows, err := s.db.Query(`SELECT ` + bookColumns + ` FROM books ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("błąd pobierania książek: %w", err)
	}
	defer rows.Close()

	books := []models.Book{}
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("błąd odczytu książki: %w", err)
		}
		books = append(books, *book)
	}
	return books, rows.Err()
}

// GetBook zwraca książkę po ID lub ErrBookNotFound
func (s *Storage) GetBook(id string) (*models.Book, error) {
	row := s.db.QueryRow(`SELECT `+bookColumns+` FROM books WHERE id = ?`, id)
	book, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("błąd pobierania książki: %w", err)
	}
	return book, nil
}

// CreateBook zapisuje nową książkę; ID oraz znaczniki czasu nadaje serwer
func (s *Storage) CreateBook(req models.CreateBookRequest) (*models.Book, error) {
	now := time.Now().UTC()
	book := &models.Book{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Author:      req.Author,
		Genre:       req.Genre,
		ISBN:        req.ISBN,
		Description: req.Description,
		Copies:      req.Copies,
		Available:   req.Available && req.Copies > 0,
		CreatedAt:   &now,
		UpdatedAt:   &now,
	}

	_, err := s.db.Exec(
		`INSERT INTO books (`+bookColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		book.ID, book.Title, book.Author, book.Genre, book.ISBN,
		book.Description, book.Copies, book.Available, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("błąd zapisywania książki: %w", err)
	}
	return book, nil
}

// UpdateBook podmienia pola modyfikowalne istniejącej książki
func (s *Storage) UpdateBook(id string, req models.UpdateBookRequest) (*models.Book, error) {
	now := time.Now().UTC()
	available := req.Available && req.Copies > 0

	res, err := s.db.Exec(
		`UPDATE books SET title = ?, author = ?, genre = ?, isbn = ?, description = ?,
             copies = ?, available = ?, updated_at = ? WHERE id = ?`,
		req.Title, req.Author, req.Genre, req.ISBN, req.Description,
		req.Copies, available, now, id,
	)
	if err != nil {
		return nil, fmt.Errorf("błąd aktualizacji książki: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrBookNotFound
	}
	return s.GetBook(id)
}

// DeleteBook usuwa książkę wraz z jej wpisami w rejestrze wypożyczeń
func (s *Storage) DeleteBook(id string) error {
	res, err := s.db.Exec(`DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("błąd usuwania książki: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrBookNotFound
	}
	return nil
}

// Borrow rejestruje wypożyczenie i zmniejsza liczbę egzemplarzy w jednej
// transakcji. Gdy licznik spadnie do zera, flaga available jest gaszona.
func (s *Storage) Borrow(req models.BorrowRequest) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("błąd otwierania transakcji: %w", err)
	}
	defer tx.Rollback()

	var copies int
	err = tx.QueryRow(`SELECT copies FROM books WHERE id = ?`, req.BookID).Scan(&copies)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrBookNotFound
	}
	if err != nil {
		return fmt.Errorf("błąd pobierania książki: %w", err)
	}
	if req.Quantity > copies {
		return ErrNotEnoughCopies
	}

	remaining := copies - req.Quantity
	available := remaining > 0
	if _, err := tx.Exec(
		`UPDATE books SET copies = ?, available = available AND ?, updated_at = ? WHERE id = ?`,
		remaining, available, time.Now().UTC(), req.BookID,
	); err != nil {
		return fmt.Errorf("błąd aktualizacji egzemplarzy: %w", err)
	}

	if _, err := tx.Exec(
		`INSERT INTO borrows (book_id, quantity, due_date) VALUES (?, ?, ?)`,
		req.BookID, req.Quantity, req.DueDate,
	); err != nil {
		return fmt.Errorf("błąd zapisywania wypożyczenia: %w", err)
	}

	return tx.Commit()
}

// Summary agreguje rejestr wypożyczeń: jeden wiersz na książkę z sumą ilości
func (s *Storage) Summary() ([]models.BorrowSummary, error) {
	rows, err := s.db.Query(`
        SELECT b.title, b.isbn, SUM(br.quantity) AS total
        FROM borrows br
        JOIN books b ON b.id = br.book_id
        GROUP BY br.book_id
        ORDER BY total DESC, b.title`)
	if err != nil {
		return nil, fmt.Errorf("błąd pobierania podsumowania: %w", err)
	}
	defer rows.Close()

	summary := []models.BorrowSummary{}
	for rows.Next() {
		var row models.BorrowSummary
		if err := rows.Scan(&row.BookTitle, &row.ISBN, &row.TotalQuantityBorrowed); err != nil {
			return nil, fmt.Errorf("błąd odczytu podsumowania: %w", err)
		}
		summary = append(summary, row)
	}
	return summary, rows.Err()
}
