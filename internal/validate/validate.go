// Package validate zawiera walidację formularzy po stronie klienta.
// Błędy walidacji nigdy nie trafiają do sieci - blokują wysłanie żądania.
package validate

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"library-client/internal/models"
)

// Code klasyfikuje błąd walidacji pola
type Code string

const (
	// RequiredFieldMissing - wymagane pole jest puste
	RequiredFieldMissing Code = "required_field_missing"
	// InvalidRange - wartość liczbowa poza dozwolonym zakresem
	InvalidRange Code = "invalid_range"
	// InvalidDate - data nieprawidłowa lub nie leży w przyszłości
	InvalidDate Code = "invalid_date"
)

// FieldError to błąd walidacji pojedynczego pola formularza
type FieldError struct {
	Field   string
	Code    Code
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors zbiera błędy całego formularza
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return strings.Join(msgs, "; ")
}

// HasAny zwraca true gdy formularz nie przeszedł walidacji
func (e Errors) HasAny() bool {
	return len(e) > 0
}

// ByField zwraca komunikat błędu dla danego pola (pusty string gdy pole jest poprawne)
func (e Errors) ByField(field string) string {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

// BookForm to surowe wartości z formularza tworzenia/edycji książki
type BookForm struct {
	Title       string
	Author      string
	Genre       string
	ISBN        string
	Description string
	Copies      string
	Available   bool
}

// BookRequest waliduje formularz książki i buduje żądanie do API.
// Pole available jest wyliczane, nie zaufane: wynik = zaznaczenie AND copies > 0,
// więc książka bez egzemplarzy zawsze trafia do API jako niedostępna.
func BookRequest(form BookForm) (models.CreateBookRequest, Errors) {
	var errs Errors

	required := []struct {
		field, value, message string
	}{
		{"title", form.Title, "Tytuł jest wymagany"},
		{"author", form.Author, "Autor jest wymagany"},
		{"genre", form.Genre, "Gatunek jest wymagany"},
		{"isbn", form.ISBN, "ISBN jest wymagany"},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			errs = append(errs, FieldError{Field: f.field, Code: RequiredFieldMissing, Message: f.message})
		}
	}

	copies := 0
	if strings.TrimSpace(form.Copies) == "" {
		errs = append(errs, FieldError{Field: "copies", Code: InvalidRange, Message: "Liczba egzemplarzy jest wymagana"})
	} else {
		parsed, err := strconv.Atoi(strings.TrimSpace(form.Copies))
		switch {
		case err != nil:
			errs = append(errs, FieldError{Field: "copies", Code: InvalidRange, Message: "Liczba egzemplarzy musi być liczbą całkowitą"})
		case parsed < 0:
			errs = append(errs, FieldError{Field: "copies", Code: InvalidRange, Message: "Liczba egzemplarzy nie może być ujemna"})
		default:
			copies = parsed
		}
	}

	req := models.CreateBookRequest{
		Title:       strings.TrimSpace(form.Title),
		Author:      strings.TrimSpace(form.Author),
		Genre:       strings.TrimSpace(form.Genre),
		ISBN:        strings.TrimSpace(form.ISBN),
		Description: strings.TrimSpace(form.Description),
		Copies:      copies,
		Available:   form.Available && copies > 0,
	}
	return req, errs
}

// Borrow waliduje formularz wypożyczenia względem znanej klientowi migawki książki.
// Migawka może być nieaktualna względem serwera - serwer pozostaje autorytatywny.
func Borrow(book *models.Book, quantityRaw, dueDateRaw string, today time.Time) (models.BorrowRequest, Errors) {
	var errs Errors

	quantity := 0
	if strings.TrimSpace(quantityRaw) == "" {
		errs = append(errs, FieldError{Field: "quantity", Code: InvalidRange, Message: "Ilość jest wymagana"})
	} else {
		parsed, err := strconv.Atoi(strings.TrimSpace(quantityRaw))
		switch {
		case err != nil:
			errs = append(errs, FieldError{Field: "quantity", Code: InvalidRange, Message: "Ilość musi być liczbą całkowitą"})
		case parsed < 1:
			errs = append(errs, FieldError{Field: "quantity", Code: InvalidRange, Message: "Ilość musi wynosić co najmniej 1"})
		case parsed > book.Copies:
			errs = append(errs, FieldError{
				Field:   "quantity",
				Code:    InvalidRange,
				Message: fmt.Sprintf("Ilość nie może przekraczać liczby dostępnych egzemplarzy (%d)", book.Copies),
			})
		default:
			quantity = parsed
		}
	}

	dueDate := strings.TrimSpace(dueDateRaw)
	if dueDate == "" {
		errs = append(errs, FieldError{Field: "dueDate", Code: InvalidDate, Message: "Data zwrotu jest wymagana"})
	} else if _, err := time.Parse(models.DueDateLayout, dueDate); err != nil {
		errs = append(errs, FieldError{Field: "dueDate", Code: InvalidDate, Message: "Nieprawidłowy format daty"})
	} else if dueDate <= today.Format(models.DueDateLayout) {
		// Porównanie samych dat (ISO sortuje się leksykalnie), godzina nie ma znaczenia
		errs = append(errs, FieldError{Field: "dueDate", Code: InvalidDate, Message: "Data zwrotu musi być późniejsza niż dzisiaj"})
	}

	req := models.BorrowRequest{
		BookID:   book.ID,
		Quantity: quantity,
		DueDate:  dueDate,
	}
	return req, errs
}
