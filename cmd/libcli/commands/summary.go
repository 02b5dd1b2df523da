package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"library-client/internal/models"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Wyświetl raport wypożyczeń",
	RunE: func(cmd *cobra.Command, args []string) error {
		summary, err := newClient().GetBorrowSummary(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(summary)
		}

		if len(summary) == 0 {
			fmt.Println("Żadna książka nie została jeszcze wypożyczona.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TYTUŁ\tISBN\tWYPOŻYCZONO")
		for _, row := range summary {
			fmt.Fprintf(w, "%s\t%s\t%d\n", row.BookTitle, row.ISBN, row.TotalQuantityBorrowed)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Printf("\nRóżnych książek: %d, łącznie egzemplarzy: %d\n", len(summary), models.TotalBorrowed(summary))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}
