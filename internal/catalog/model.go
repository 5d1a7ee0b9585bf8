package catalog

import "fmt"

// Book is one catalog entry as returned by the lending service.
type Book struct {
	BookID      int    `json:"book_id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	ISBN        string `json:"isbn"`
	Count       int    `json:"count"`
	Comment     string `json:"comment"`
	Description string `json:"description"`
}

// Record is a borrow record. Dates stay in wire form until rendered; the
// server sends RFC 3339 timestamps but only the date portion is meaningful.
type Record struct {
	RecordID      int    `json:"record_id"`
	UserID        int    `json:"user_id,omitempty"`
	Username      string `json:"username,omitempty"`
	BookID        int    `json:"book_id"`
	BorrowDate    string `json:"borrow_date"`
	Deadline      string `json:"deadline"`
	FinalDeadline string `json:"final_deadline,omitempty"`
	Returned      bool   `json:"returned"`
	ReturnDate    string `json:"return_date,omitempty"`
}

// Borrower names the account holding the record. Older servers only send
// the numeric user id.
func (r Record) Borrower() string {
	if r.Username != "" {
		return r.Username
	}
	if r.UserID != 0 {
		return fmt.Sprintf("#%d", r.UserID)
	}
	return ""
}
