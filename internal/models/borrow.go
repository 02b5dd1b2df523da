package models

import "time"

// DueDateLayout to format daty zwrotu używany na wire (data bez czasu)
const DueDateLayout = "2006-01-02"

// BorrowRequest to żądanie wypożyczenia wysyłane do API (POST /borrows).
// Obiekt jest przejściowy - klient nie przechowuje wypożyczeń, obserwuje tylko
// ich skutek w podsumowaniu i w liczbie egzemplarzy książki.
type BorrowRequest struct {
	BookID   string `json:"bookId"`
	Quantity int    `json:"quantity"`
	DueDate  string `json:"dueDate"` // format DueDateLayout
}

// ParseDueDate parsuje datę zwrotu z formatu wire
func (r *BorrowRequest) ParseDueDate() (time.Time, error) {
	return time.Parse(DueDateLayout, r.DueDate)
}

// BorrowSummary to jeden wiersz raportu wypożyczeń - suma wszystkich
// transakcji dla danej książki. Tylko do odczytu.
type BorrowSummary struct {
	BookTitle             string `json:"bookTitle"`
	ISBN                  string `json:"isbn"`
	TotalQuantityBorrowed int    `json:"totalQuantityBorrowed"`
}

// TotalBorrowed sumuje wypożyczone egzemplarze ze wszystkich wierszy raportu
func TotalBorrowed(rows []BorrowSummary) int {
	total := 0
	for _, row := range rows {
		total += row.TotalQuantityBorrowed
	}
	return total
}
