package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"library-client/internal/api"
	"library-client/internal/models"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Brak pliku .env - używam zmiennych systemowych")
	}

	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:5000/api"
	}
	client := api.NewClient(baseURL)

	log.Println("Dodawanie przykładowych książek przez API...")

	books := []models.CreateBookRequest{
		{
			ISBN:        "978-83-8032-464-8",
			Title:       "Wiedźmin: Ostatnie życzenie",
			Author:      "Andrzej Sapkowski",
			Genre:       "Fantasy",
			Description: "Zbiór opowiadań o wiedźminie Geralcie z Rivii, łowcy potworów. Pierwsza książka w słynnej serii fantasy.",
			Copies:      3,
			Available:   true,
		},
		{
			ISBN:        "978-83-240-1455-5",
			Title:       "Zbrodnia i kara",
			Author:      "Fiodor Dostojewski",
			Genre:       "Klasyka",
			Description: "Psychologiczna powieść o studencie Rodionie Raskolnikowie, który popełnia morderstwo i zmaga się z konsekwencjami swojego czynu.",
			Copies:      2,
			Available:   true,
		},
		{
			ISBN:        "978-83-7686-320-4",
			Title:       "Sapiens: Od zwierząt do bogów",
			Author:      "Yuval Noah Harari",
			Genre:       "Popularnonaukowa",
			Description: "Fascynująca historia ludzkości od czasów prehistorycznych po współczesność.",
			Copies:      4,
			Available:   true,
		},
		{
			ISBN:        "978-83-7885-585-8",
			Title:       "Rok 1984",
			Author:      "George Orwell",
			Genre:       "Science Fiction",
			Description: "Dystopijny obraz totalitarnego społeczeństwa przyszłości.",
			Copies:      2,
			Available:   true,
		},
		{
			ISBN:        "978-83-240-4532-0",
			Title:       "Harry Potter i Kamień Filozoficzny",
			Author:      "J.K. Rowling",
			Genre:       "Fantasy",
			Description: "Pierwsza część serii o młodym czarodzieju i jego przygodach w Hogwarcie.",
			Copies:      5,
			Available:   true,
		},
		{
			ISBN:        "978-83-7506-651-3",
			Title:       "Władca Pierścieni: Drużyna Pierścienia",
			Author:      "J.R.R. Tolkien",
			Genre:       "Fantasy",
			Description: "Pierwsza część epickiej trylogii o wyprawie Drużyny Pierścienia.",
			Copies:      3,
			Available:   true,
		},
		{
			ISBN:        "978-83-7469-074-2",
			Title:       "Solaris",
			Author:      "Stanisław Lem",
			Genre:       "Science Fiction",
			Description: "Opowieść o kontakcie z niepoznawalnym oceanem planety Solaris.",
			Copies:      0,
			Available:   false,
		},
	}

	created := 0
	for _, book := range books {
		result, err := client.CreateBook(context.Background(), book)
		if err != nil {
			log.Printf("Błąd dodawania książki %q: %v", book.Title, err)
			continue
		}
		log.Printf("Dodano: %s (ID: %s)", result.Title, result.ID)
		created++
	}

	log.Printf("Gotowe - dodano %d z %d książek", created, len(books))
}
