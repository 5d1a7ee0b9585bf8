package api

import (
	"context"
	"strconv"

	"github.com/riteme/catmgr/internal/catalog"
)

// BookResolver resolves book references with a show request filtered by
// book_id. It satisfies catalog.BookLookup.
type BookResolver struct {
	Client *Client
}

// LookupBook never fails outright: transport faults, service failures and
// ambiguous results all come back as an unresolved result.
func (r BookResolver) LookupBook(ctx context.Context, bookID int) catalog.LookupResult {
	resp, err := r.Client.Invoke(ctx, OpShow, Params{
		"section": "book_id",
		"keyword": strconv.Itoa(bookID),
	})
	if err != nil {
		return catalog.Unresolved("%v", err)
	}
	var list BookList
	if f := resp.Payload(&list); f != nil {
		return catalog.Unresolved("%s: %s", f.Status, f.Reason)
	}
	return catalog.Single(list.Results, bookID)
}
