package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/riteme/catmgr/internal/api"
	"github.com/riteme/catmgr/internal/catalog"
)

func newListCmd(s *session) *cobra.Command {
	var (
		creds  credentials
		filter string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "list <target>",
		Short: "List borrow history",
		Long: fmt.Sprintf(`List the borrow records of a user. Each record's status is derived from
its dates as of today, and its book title and author are looked up
separately.

--filter is one of %v.

Examples:
  catmgr list alice
  catmgr list alice --filter overdue --limit 10`, api.Filters),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := oneOf("filter", filter, api.Filters); err != nil {
				return err
			}
			if limit < 0 {
				return fmt.Errorf("invalid value %d for --limit: must be >= 0", limit)
			}
			params, err := s.credentialParams(cmd, &creds)
			if err != nil {
				return err
			}
			params["target"] = args[0]
			params["filter"] = filter
			params["limit"] = limit

			resp, err := s.client.Invoke(cmd.Context(), api.OpList, params)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			var list api.RecordList
			if f := resp.Payload(&list); f != nil {
				printFailure(out, f)
				return nil
			}

			rd := &catalog.Renderer{
				Out:    out,
				Lookup: api.BookResolver{Client: s.client},
				Now:    s.now,
			}
			if err := rd.Records(cmd.Context(), list.Results); err != nil {
				return err
			}
			printCount(out, len(list.Results))
			return nil
		},
	}

	addCredentialFlags(cmd, &creds)
	cmd.Flags().StringVarP(&filter, "filter", "f", "all", "Filter condition")
	cmd.Flags().IntVarP(&limit, "limit", "l", 100, "Maximum number of records to be returned by the server")
	_ = cmd.RegisterFlagCompletionFunc("filter", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return api.Filters, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// recordCommand describes a credentialed command that takes one numeric id
// and is answered with a record id.
type recordCommand struct {
	use     string
	short   string
	op      api.Operation
	idName  string // request field and argument name
	success string // format taking the record id
}

func (rc recordCommand) build(s *session) *cobra.Command {
	var creds credentials

	cmd := &cobra.Command{
		Use:   fmt.Sprintf("%s <%s>", rc.use, rc.idName),
		Short: rc.short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(rc.idName, args[0])
			if err != nil {
				return err
			}
			params, err := s.credentialParams(cmd, &creds)
			if err != nil {
				return err
			}
			params[rc.idName] = id

			resp, err := s.client.Invoke(cmd.Context(), rc.op, params)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			var p api.RecordIDPayload
			if f := resp.Payload(&p); f != nil {
				printFailure(out, f)
				return nil
			}
			succeed(out, rc.success, *p.RecordID)
			return nil
		},
	}

	addCredentialFlags(cmd, &creds)
	return cmd
}

func newBorrowCmd(s *session) *cobra.Command {
	return recordCommand{
		use:     "borrow",
		short:   "Borrow a book",
		op:      api.OpBorrow,
		idName:  "book_id",
		success: "Success! Record ID: #%d",
	}.build(s)
}

func newExtendCmd(s *session) *cobra.Command {
	return recordCommand{
		use:     "extend",
		short:   "Extend deadline",
		op:      api.OpExtend,
		idName:  "record_id",
		success: "Record deadline extended: #%d",
	}.build(s)
}

func newReturnCmd(s *session) *cobra.Command {
	return recordCommand{
		use:     "return",
		short:   "Return a book",
		op:      api.OpReturn,
		idName:  "record_id",
		success: "Book returned. Record ID: #%d",
	}.build(s)
}
