package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"library-client/internal/api"
	"library-client/internal/models"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Śledź zmiany katalogu",
	Long: `Subskrybuje unieważnienia listy książek i po każdym sygnale pobiera ją
ponownie, wypisując różnice. Licznik czasu cyklicznie unieważnia cache,
żeby złapać zmiany wprowadzone przez innych klientów.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return watchCatalog(cmd.Context(), newClient(), watchInterval, os.Stdout)
	},
}

// watchCatalog wypisuje migawkę katalogu i odświeża ją po każdym sygnale
// unieważnienia. Licznik czasu tylko unieważnia - samo pobranie zawsze
// wyzwala subskrypcja, więc mutacje z tego samego procesu też budzą pętlę.
func watchCatalog(ctx context.Context, client *api.CachedClient, interval time.Duration, out io.Writer) error {
	invalidated, cancel := client.Store().Subscribe(api.TagBooks)
	defer cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	previous, err := refreshCatalog(ctx, client, nil, out)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			client.Store().Invalidate(api.TagBooks)
		case <-invalidated:
			previous, err = refreshCatalog(ctx, client, previous, out)
			if err != nil {
				return err
			}
		}
	}
}

// refreshCatalog pobiera listę i wypisuje ją, jeśli różni się od poprzedniej migawki
func refreshCatalog(ctx context.Context, client *api.CachedClient, previous []models.Book, out io.Writer) ([]models.Book, error) {
	books, err := client.ListBooks(ctx)
	if err != nil {
		return previous, err
	}
	if changed(previous, books) {
		fmt.Fprintf(out, "[%s] %d książek w katalogu\n", time.Now().Format("15:04:05"), len(books))
		for i := range books {
			book := &books[i]
			fmt.Fprintf(out, "  %-30s %d egz. (%s)\n", book.Title, book.Copies, book.StatusLabel())
		}
	}
	return books, nil
}

// changed porównuje dwie migawki listy po polach widocznych w katalogu
func changed(previous, current []models.Book) bool {
	if len(previous) != len(current) {
		return true
	}
	for i := range current {
		if previous[i].ID != current[i].ID ||
			previous[i].Copies != current[i].Copies ||
			previous[i].Available != current[i].Available ||
			previous[i].Title != current[i].Title {
			return true
		}
	}
	return false
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVarP(&watchInterval, "interval", "i", 5*time.Second, "Odstęp między odświeżeniami")
}
