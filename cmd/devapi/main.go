package main

import (
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"library-client/internal/devapi"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Brak pliku .env - używam zmiennych systemowych")
	}

	port := os.Getenv("DEVAPI_PORT")
	if port == "" {
		port = "5000"
	}

	dbPath := os.Getenv("DEVAPI_DB")
	if dbPath == "" {
		dbPath = "devapi.db"
	}

	storage, err := devapi.NewStorage(dbPath)
	if err != nil {
		log.Fatalf("Błąd otwierania bazy %s: %v", dbPath, err)
	}
	defer storage.Close()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Ten sam kontrakt co zdalne API, pod prefiksem /api
	r.Mount("/api", devapi.NewServer(storage))

	log.Printf("Lokalne API uruchomione na porcie %s (baza: %s)", port, dbPath)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatalf("Nie można uruchomić serwera: %v", err)
	}
}
