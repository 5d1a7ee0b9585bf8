package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/riteme/catmgr/internal/api"
	"github.com/riteme/catmgr/internal/catalog"
)

func newNewCmd(s *session) *cobra.Command {
	var (
		creds credentials
		book  catalog.Book
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Add a new book",
		Long: `Add a new book to the catalog. The server assigns the book ID.

Examples:
  catmgr new --title "The C Programming Language" --author "Kernighan & Ritchie" --isbn 9780131103627`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := s.credentialParams(cmd, &creds)
			if err != nil {
				return err
			}
			params["title"] = book.Title
			params["author"] = book.Author
			params["isbn"] = book.ISBN
			params["description"] = book.Description
			params["comment"] = book.Comment

			resp, err := s.client.Invoke(cmd.Context(), api.OpNew, params)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			var p api.BookIDPayload
			if f := resp.Payload(&p); f != nil {
				printFailure(out, f)
				return nil
			}
			succeed(out, "New book: #%d", *p.BookID)
			return nil
		},
	}

	addCredentialFlags(cmd, &creds)
	cmd.Flags().StringVar(&book.Title, "title", "", "Book title")
	cmd.Flags().StringVar(&book.Author, "author", "", "Author of the book")
	cmd.Flags().StringVar(&book.ISBN, "isbn", "", "ISBN of the book")
	cmd.Flags().StringVar(&book.Description, "description", "", "Description/overview of the book (alias --desc)")
	cmd.Flags().StringVar(&book.Comment, "comment", "", "Comment of the book")
	cmd.Flags().SetNormalizeFunc(descAlias)

	return cmd
}

func newUpdateCmd(s *session) *cobra.Command {
	var (
		creds credentials
		diff  int
		book  catalog.Book
	)

	cmd := &cobra.Command{
		Use:   "update <book_id>",
		Short: "Update book information",
		Long: `Update selected fields of a book. Only the flags given are sent; the
server leaves every other field unchanged.

Examples:
  catmgr update 42 --diff 2
  catmgr update 42 --comment "2nd edition" --desc "The classic."`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bookID, err := parseID("book id", args[0])
			if err != nil {
				return err
			}
			params, err := s.credentialParams(cmd, &creds)
			if err != nil {
				return err
			}
			params["book_id"] = bookID

			flags := cmd.Flags()
			if flags.Changed("diff") {
				params["diff"] = diff
			}
			optional := []struct {
				flag  string
				value string
			}{
				{"title", book.Title},
				{"author", book.Author},
				{"isbn", book.ISBN},
				{"description", book.Description},
				{"comment", book.Comment},
			}
			for _, o := range optional {
				if flags.Changed(o.flag) {
					params[o.flag] = o.value
				}
			}

			resp, err := s.client.Invoke(cmd.Context(), api.OpUpdate, params)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			var p api.BookIDPayload
			if f := resp.Payload(&p); f != nil {
				printFailure(out, f)
				return nil
			}
			succeed(out, "Update book: #%d", *p.BookID)
			return nil
		},
	}

	addCredentialFlags(cmd, &creds)
	cmd.Flags().IntVar(&diff, "diff", 0, "Difference of available number of the book")
	cmd.Flags().StringVar(&book.Title, "title", "", "Book title")
	cmd.Flags().StringVar(&book.Author, "author", "", "Author of the book")
	cmd.Flags().StringVar(&book.ISBN, "isbn", "", "ISBN of the book")
	cmd.Flags().StringVar(&book.Description, "description", "", "Description/overview of the book (alias --desc)")
	cmd.Flags().StringVar(&book.Comment, "comment", "", "Comment of the book")
	cmd.Flags().SetNormalizeFunc(descAlias)

	return cmd
}

func newShowCmd(s *session) *cobra.Command {
	var section string

	cmd := &cobra.Command{
		Use:   "show <keyword>",
		Short: "Search for books",
		Long: fmt.Sprintf(`Search the catalog. --section picks the field matched against the
keyword, one of %v.

Examples:
  catmgr show --section isbn 9780131103627
  catmgr show -s author Knuth`, api.Sections),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := oneOf("section", section, api.Sections); err != nil {
				return err
			}

			resp, err := s.client.Invoke(cmd.Context(), api.OpShow, api.Params{
				"section": section,
				"keyword": args[0],
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			var list api.BookList
			if f := resp.Payload(&list); f != nil {
				printFailure(out, f)
				return nil
			}
			for _, b := range list.Results {
				fmt.Fprint(out, catalog.FormatBook(b))
			}
			printCount(out, len(list.Results))
			return nil
		},
	}

	cmd.Flags().StringVarP(&section, "section", "s", "", "Section to be searched")
	_ = cmd.MarkFlagRequired("section")
	_ = cmd.RegisterFlagCompletionFunc("section", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return api.Sections, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}
