package handlers

import (
	"html/template"
	"log"
	"net/http"

	"library-client/internal/api"
	"library-client/internal/models"
)

// SummaryHandler obsługuje stronę raportu wypożyczeń
type SummaryHandler struct {
	summaryTemplate *template.Template
	client          *api.CachedClient
}

// NewSummaryHandler tworzy nowy handler raportu
func NewSummaryHandler(client *api.CachedClient, templatesDir string) *SummaryHandler {
	return &SummaryHandler{
		summaryTemplate: loadTemplate(templatesDir, "borrow_summary.html"),
		client:          client,
	}
}

// ShowSummary wyświetla raport wypożyczeń (GET /borrow-summary).
// Pusty raport renderuje komunikat zamiast tabeli.
func (h *SummaryHandler) ShowSummary(w http.ResponseWriter, r *http.Request) {
	data := NewTemplateData()

	summary, err := h.client.GetBorrowSummary(r.Context())
	if err != nil {
		log.Printf("Błąd pobierania podsumowania wypożyczeń: %v", err)
		data["Error"] = "Nie udało się pobrać podsumowania wypożyczeń. Sprawdź połączenie i spróbuj ponownie."
		h.render(w, http.StatusBadGateway, data)
		return
	}

	data["Summary"] = summary
	data["UniqueBooks"] = len(summary)
	data["TotalBorrowed"] = models.TotalBorrowed(summary)
	h.render(w, http.StatusOK, data)
}

func (h *SummaryHandler) render(w http.ResponseWriter, status int, data TemplateData) {
	if h.summaryTemplate == nil {
		writeJSONFallback(w, status, data)
		return
	}
	w.WriteHeader(status)
	if err := h.summaryTemplate.Execute(w, data); err != nil {
		log.Printf("Błąd renderowania podsumowania: %v", err)
	}
}
