package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"library-client/internal/api"
	"library-client/internal/handlers"
)

func main() {
	// Wczytaj zmienne środowiskowe z pliku .env
	if err := godotenv.Load(); err != nil {
		log.Println("Brak pliku .env - używam zmiennych systemowych")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Adres zdalnego API biblioteki
	apiBaseURL := os.Getenv("API_BASE_URL")
	if apiBaseURL == "" {
		apiBaseURL = "http://localhost:5000/api"
		log.Printf("Brak API_BASE_URL - używam domyślnego %s", apiBaseURL)
	}

	templatesDir := os.Getenv("TEMPLATES_DIR")
	if templatesDir == "" {
		templatesDir = "internal/templates"
	}

	// Klient API z rejestrem cache - jedna instancja dla wszystkich handlerów
	client := api.NewCachedClient(api.NewClient(apiBaseURL))

	// Odświeżacz pobiera unieważnione zasoby od razu po mutacji
	go api.NewRefresher(client).Run(context.Background())

	// Inicjalizacja routera Chi
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Serwowanie plików statycznych (CSS, JS)
	fileServer := http.FileServer(http.Dir("./static"))
	r.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	// Inicjalizacja handlerów
	booksHandler := handlers.NewBooksHandler(client, templatesDir)
	bookFormHandler := handlers.NewBookFormHandler(client, templatesDir)
	borrowHandler := handlers.NewBorrowHandler(client, templatesDir)
	summaryHandler := handlers.NewSummaryHandler(client, templatesDir)
	notFoundHandler := handlers.NewNotFoundHandler(templatesDir)

	// Strona główna przekierowuje do listy książek
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/books", http.StatusFound)
	})

	r.Route("/books", func(r chi.Router) {
		r.Get("/", booksHandler.ListBooks)
		r.Get("/{id}", booksHandler.ShowBook)
		r.Delete("/{id}", booksHandler.DeleteBook)
	})

	r.Get("/create-book", bookFormHandler.ShowCreateForm)
	r.Post("/create-book", bookFormHandler.CreateBook)
	r.Get("/edit-book/{id}", bookFormHandler.ShowEditForm)
	r.Post("/edit-book/{id}", bookFormHandler.UpdateBook)

	r.Get("/borrow/{bookId}", borrowHandler.ShowForm)
	r.Post("/borrow/{bookId}", borrowHandler.Borrow)

	r.Get("/borrow-summary", summaryHandler.ShowSummary)

	// Pozostałe ścieżki trafiają na stronę 404
	r.NotFound(notFoundHandler.ServeHTTP)

	// Start serwera
	log.Printf("Serwer uruchomiony na porcie %s (API: %s)", port, apiBaseURL)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatalf("Nie można uruchomić serwera: %v", err)
	}
}
