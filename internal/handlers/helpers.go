package handlers

import (
	"encoding/json"
	"html/template"
	"log"
	"net/http"
	"path/filepath"
)

// TemplateData zawiera wspólne dane dla wszystkich szablonów
type TemplateData map[string]interface{}

// NewTemplateData tworzy nowe dane szablonu
func NewTemplateData() TemplateData {
	return make(TemplateData)
}

// Set ustawia wartość w danych szablonu
func (t TemplateData) Set(key string, value interface{}) TemplateData {
	t[key] = value
	return t
}

// writeJSONFallback zwraca dane strony jako JSON gdy szablon nie został załadowany
func writeJSONFallback(w http.ResponseWriter, status int, data TemplateData) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Błąd kodowania odpowiedzi JSON: %v", err)
	}
}

// loadTemplate ładuje szablon z katalogu szablonów.
// Brakujący szablon nie przerywa startu - handler przechodzi na fallback JSON.
func loadTemplate(dir, name string) *template.Template {
	tmpl, err := template.ParseFiles(filepath.Join(dir, name))
	if err != nil {
		log.Printf("Błąd ładowania szablonu %s: %v", name, err)
		return nil
	}
	return tmpl
}
