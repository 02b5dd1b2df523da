package commands

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"library-client/internal/validate"
)

var json = jsoniter.ConfigFastest

var (
	// Flagi polecenia books create
	createTitle       string
	createAuthor      string
	createGenre       string
	createISBN        string
	createDescription string
	createCopies      int
	createAvailable   bool
)

var booksCmd = &cobra.Command{
	Use:   "books",
	Short: "Operacje na katalogu książek",
}

var booksListCmd = &cobra.Command{
	Use:   "list",
	Short: "Wyświetl wszystkie książki",
	RunE: func(cmd *cobra.Command, args []string) error {
		books, err := newClient().ListBooks(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(books)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTYTUŁ\tAUTOR\tGATUNEK\tISBN\tEGZ.\tSTATUS")
		for i := range books {
			book := &books[i]
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
				book.ID, book.Title, book.Author, book.Genre, book.ISBN, book.Copies, book.StatusLabel())
		}
		return w.Flush()
	},
}

var booksGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Wyświetl szczegóły książki",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		book, err := newClient().GetBook(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(book)
		}

		fmt.Printf("Tytuł:       %s\n", book.Title)
		fmt.Printf("Autor:       %s\n", book.Author)
		fmt.Printf("Gatunek:     %s\n", book.Genre)
		fmt.Printf("ISBN:        %s\n", book.ISBN)
		fmt.Printf("Egzemplarze: %d\n", book.Copies)
		fmt.Printf("Status:      %s\n", book.StatusLabel())
		if book.Description != "" {
			fmt.Printf("Opis:        %s\n", book.Description)
		}
		return nil
	},
}

var booksCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Dodaj nową książkę",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Ta sama walidacja co w formularzu webowym
		form := validate.BookForm{
			Title:       createTitle,
			Author:      createAuthor,
			Genre:       createGenre,
			ISBN:        createISBN,
			Description: createDescription,
			Copies:      strconv.Itoa(createCopies),
			Available:   createAvailable,
		}
		req, errs := validate.BookRequest(form)
		if errs.HasAny() {
			return errs
		}

		book, err := newClient().CreateBook(cmd.Context(), req)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(book)
		}
		fmt.Printf("Dodano książkę %q (ID: %s)\n", book.Title, book.ID)
		return nil
	},
}

var booksDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Usuń książkę",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newClient().DeleteBook(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Usunięto książkę %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(booksCmd)
	booksCmd.AddCommand(booksListCmd)
	booksCmd.AddCommand(booksGetCmd)
	booksCmd.AddCommand(booksCreateCmd)
	booksCmd.AddCommand(booksDeleteCmd)

	booksCreateCmd.Flags().StringVar(&createTitle, "title", "", "Tytuł książki (wymagany)")
	booksCreateCmd.Flags().StringVar(&createAuthor, "author", "", "Autor (wymagany)")
	booksCreateCmd.Flags().StringVar(&createGenre, "genre", "", "Gatunek (wymagany)")
	booksCreateCmd.Flags().StringVar(&createISBN, "isbn", "", "ISBN (wymagany)")
	booksCreateCmd.Flags().StringVar(&createDescription, "description", "", "Opis")
	booksCreateCmd.Flags().IntVar(&createCopies, "copies", 1, "Liczba egzemplarzy")
	booksCreateCmd.Flags().BoolVar(&createAvailable, "available", true, "Dostępna do wypożyczenia")
}

func printJSON(v any) error {
	return writeJSON(os.Stdout, v)
}

func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
