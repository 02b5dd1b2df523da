// Package commands zawiera polecenia CLI biblioteki.
// CLI korzysta z tego samego klienta API z cache co aplikacja webowa.
package commands

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"library-client/internal/api"
)

var (
	// Flagi globalne
	apiBaseURL string
	jsonOutput bool
)

// rootCmd to polecenie bazowe
var rootCmd = &cobra.Command{
	Use:   "libcli",
	Short: "Klient konsolowy biblioteki",
	Long: `libcli to konsolowy klient zdalnego API biblioteki.

Pozwala przeglądać katalog, zarządzać książkami, rejestrować wypożyczenia
i śledzić raport wypożyczeń bez uruchamiania aplikacji webowej.`,
}

// Execute uruchamia polecenie bazowe
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(func() {
		// .env jest opcjonalny - flagi mają pierwszeństwo
		_ = godotenv.Load()
		if apiBaseURL == "" {
			apiBaseURL = os.Getenv("API_BASE_URL")
		}
		if apiBaseURL == "" {
			apiBaseURL = "http://localhost:5000/api"
		}
	})

	rootCmd.PersistentFlags().StringVar(&apiBaseURL, "api", "", "Adres bazowy API (domyślnie API_BASE_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Wynik w formacie JSON")
}

// newClient tworzy klienta API z cache dla bieżącego wywołania
func newClient() *api.CachedClient {
	return api.NewCachedClient(api.NewClient(apiBaseURL))
}
