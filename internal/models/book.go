package models

import "time"

// Book reprezentuje książkę w katalogu biblioteki.
// Źródłem prawdy jest zdalne API - klient trzyma tylko kopię z cache.
type Book struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Author      string     `json:"author"`
	Genre       string     `json:"genre"`
	ISBN        string     `json:"isbn"`
	Description string     `json:"description,omitempty"`
	Copies      int        `json:"copies"`
	Available   bool       `json:"available"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// IsAvailable sprawdza czy książka jest dostępna do wypożyczenia.
// Flaga available jest tylko doradcza - książka bez egzemplarzy nigdy nie jest dostępna.
func (b *Book) IsAvailable() bool {
	return b.Available && b.Copies > 0
}

// StatusLabel zwraca etykietę statusu wyświetlaną w tabelach i na stronie szczegółów
func (b *Book) StatusLabel() string {
	if b.IsAvailable() {
		return "Dostępna"
	}
	return "Niedostępna"
}

// CreateBookRequest to dane nowej książki wysyłane do API (POST /books).
// Serwer nadaje ID oraz znaczniki czasu.
type CreateBookRequest struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Genre       string `json:"genre"`
	ISBN        string `json:"isbn"`
	Description string `json:"description,omitempty"`
	Copies      int    `json:"copies"`
	Available   bool   `json:"available"`
}

// UpdateBookRequest to pełny zestaw pól modyfikowalnych książki (PATCH /books/{id}).
// ID nie wchodzi do ciała żądania - jest częścią ścieżki i jest niemodyfikowalne.
type UpdateBookRequest struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Genre       string `json:"genre"`
	ISBN        string `json:"isbn"`
	Description string `json:"description,omitempty"`
	Copies      int    `json:"copies"`
	Available   bool   `json:"available"`
}
