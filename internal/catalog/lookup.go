package catalog

import (
	"context"
	"fmt"
)

// LookupResult is the outcome of resolving a record's book reference.
// Exactly one of Book or Reason is set.
type LookupResult struct {
	Book   *Book
	Reason string
}

// Resolved wraps a successfully fetched book.
func Resolved(b Book) LookupResult { return LookupResult{Book: &b} }

// Unresolved records why a book could not be fetched.
func Unresolved(format string, a ...interface{}) LookupResult {
	return LookupResult{Reason: fmt.Sprintf(format, a...)}
}

// OK reports whether the lookup produced a book.
func (r LookupResult) OK() bool { return r.Book != nil }

// BookLookup fetches a single book by id. Implementations report every
// failure through LookupResult rather than an error so that one bad
// reference cannot stop a batch from rendering.
type BookLookup interface {
	LookupBook(ctx context.Context, bookID int) LookupResult
}

// Single expects exactly one book in a search result.
func Single(books []Book, bookID int) LookupResult {
	switch len(books) {
	case 1:
		return Resolved(books[0])
	case 0:
		return Unresolved("no book with id %d", bookID)
	default:
		return Unresolved("%d books match id %d", len(books), bookID)
	}
}
