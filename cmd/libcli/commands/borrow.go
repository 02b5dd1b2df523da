package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"library-client/internal/validate"
)

var (
	borrowQuantity int
	borrowDueDate  string
)

var borrowCmd = &cobra.Command{
	Use:   "borrow <bookId>",
	Short: "Wypożycz książkę",
	Long: `Rejestruje wypożyczenie książki w zdalnym API.

Żądanie jest walidowane lokalnie względem aktualnej migawki książki
(ilość w granicach egzemplarzy, data zwrotu w przyszłości) zanim
cokolwiek trafi do sieci.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient()

		book, err := client.GetBook(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !book.IsAvailable() {
			return fmt.Errorf("książka %q jest obecnie niedostępna do wypożyczenia", book.Title)
		}

		req, errs := validate.Borrow(book, fmt.Sprint(borrowQuantity), borrowDueDate, time.Now())
		if errs.HasAny() {
			return errs
		}

		if err := client.BorrowBook(cmd.Context(), req); err != nil {
			return err
		}
		fmt.Printf("Wypożyczono %d egz. książki %q, termin zwrotu %s\n", req.Quantity, book.Title, req.DueDate)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(borrowCmd)

	borrowCmd.Flags().IntVarP(&borrowQuantity, "quantity", "q", 1, "Liczba egzemplarzy")
	borrowCmd.Flags().StringVarP(&borrowDueDate, "due", "d", "", "Data zwrotu (RRRR-MM-DD)")
	borrowCmd.MarkFlagRequired("due")
}
