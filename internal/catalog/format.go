package catalog

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

// FormatBook renders a book as a field block. The block starts with a blank
// line so consecutive books stay visually separated.
func FormatBook(b Book) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\n#%d\n", b.BookID)
	fmt.Fprintf(&sb, "Title:\t%s\n", b.Title)
	fmt.Fprintf(&sb, "Author:\t%s\n", b.Author)
	fmt.Fprintf(&sb, "ISBN:\t%s\n", b.ISBN)
	fmt.Fprintf(&sb, "Count:\t%d\n", b.Count)
	fmt.Fprintf(&sb, "Comment: %s\n", b.Comment)
	sb.WriteString("Description:\n")
	sb.WriteString(b.Description)
	sb.WriteString("\n")
	return sb.String()
}

// recordDates holds a record's parsed dates. Zero values mean absent.
type recordDates struct {
	borrowed, due, final, returned Date
}

func parseRecordDates(r Record) (recordDates, error) {
	var d recordDates
	var err error
	if d.borrowed, err = ParseDate(r.BorrowDate); err != nil {
		return d, fmt.Errorf("record #%d borrow date: %w", r.RecordID, err)
	}
	if d.due, err = ParseDate(r.Deadline); err != nil {
		return d, fmt.Errorf("record #%d deadline: %w", r.RecordID, err)
	}
	if r.Returned {
		if d.returned, err = ParseDate(r.ReturnDate); err != nil {
			return d, fmt.Errorf("record #%d return date: %w", r.RecordID, err)
		}
	} else if r.FinalDeadline != "" {
		// Servers that do not track a final deadline send the zero timestamp.
		if final, err := ParseDate(r.FinalDeadline); err == nil && final.Year > 1 {
			d.final = final
		}
	}
	return d, nil
}

// FormatRecord renders a record as of today together with its resolved (or
// unresolved) book. All dates are parsed before anything is produced, so a
// malformed date yields an error and no text.
func FormatRecord(r Record, today Date, book LookupResult) (string, error) {
	d, err := parseRecordDates(r)
	if err != nil {
		return "", err
	}
	return formatRecord(r, d, today, book), nil
}

func formatRecord(r Record, d recordDates, today Date, book LookupResult) string {
	return formatRecordHeader(r, d, today) + formatRecordBook(r, book)
}

// formatRecordHeader renders everything up to and including the Book ID line.
func formatRecordHeader(r Record, d recordDates, today Date) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\n#%d\n", r.RecordID)
	fmt.Fprintf(&sb, "User:\t%s\n", r.Borrower())
	fmt.Fprintf(&sb, "Status:\t%s\n", DeriveStatus(r.Returned, d.due, today))
	fmt.Fprintf(&sb, "Borrow:\t%s\n", d.borrowed)
	fmt.Fprintf(&sb, "Due:\t%s\n", d.due)
	if !d.final.IsZero() {
		fmt.Fprintf(&sb, "Final:\t%s\n", d.final)
	}
	if r.Returned {
		fmt.Fprintf(&sb, "Return:\t%s\n", d.returned)
	}
	fmt.Fprintf(&sb, "Book ID: #%d\n", r.BookID)
	return sb.String()
}

// formatRecordBook renders the resolved book or the placeholder notice.
func formatRecordBook(r Record, book LookupResult) string {
	if !book.OK() {
		return fmt.Sprintf("(failed to retrieve book #%d)\n", r.BookID)
	}
	return fmt.Sprintf("Title:\t%s\nAuthor:\t%s\n", book.Book.Title, book.Book.Author)
}

// Renderer writes records, resolving each record's book with one lookup per
// record, in order.
type Renderer struct {
	Out    io.Writer
	Lookup BookLookup
	// Now defaults to time.Now.
	Now func() time.Time
}

// Record renders one record. Dates are validated first, so a malformed
// record writes nothing. The book lookup runs after the Book ID line is
// written, so any diagnostics it prints land inside the record block.
func (rd *Renderer) Record(ctx context.Context, r Record) error {
	now := time.Now
	if rd.Now != nil {
		now = rd.Now
	}
	today := Today(now())

	d, err := parseRecordDates(r)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(rd.Out, formatRecordHeader(r, d, today)); err != nil {
		return err
	}
	_, err = io.WriteString(rd.Out, formatRecordBook(r, rd.Lookup.LookupBook(ctx, r.BookID)))
	return err
}

// Records renders every record in order and returns the first date error.
func (rd *Renderer) Records(ctx context.Context, records []Record) error {
	for _, r := range records {
		if err := rd.Record(ctx, r); err != nil {
			return err
		}
	}
	return nil
}
