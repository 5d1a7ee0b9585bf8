package api

import (
	"errors"

	"github.com/riteme/catmgr/internal/catalog"
)

// Checker is a success payload that can verify its own shape.
type Checker interface {
	Check() error
}

// BookIDPayload answers new and update.
type BookIDPayload struct {
	BookID *int `json:"book_id"`
}

// Check requires book_id.
func (p *BookIDPayload) Check() error {
	if p.BookID == nil {
		return errors.New("missing book_id")
	}
	return nil
}

// UserIDPayload answers adduser.
type UserIDPayload struct {
	UserID *int `json:"user_id"`
}

// Check requires user_id.
func (p *UserIDPayload) Check() error {
	if p.UserID == nil {
		return errors.New("missing user_id")
	}
	return nil
}

// RecordIDPayload answers borrow, extend and return.
type RecordIDPayload struct {
	RecordID *int `json:"record_id"`
}

// Check requires record_id.
func (p *RecordIDPayload) Check() error {
	if p.RecordID == nil {
		return errors.New("missing record_id")
	}
	return nil
}

// BookList answers show. A null or absent results field decodes as an
// empty list; the server encodes an empty result set as null.
type BookList struct {
	Results []catalog.Book `json:"results"`
}

// Check accepts any decoded list.
func (p *BookList) Check() error { return nil }

// RecordList answers list.
type RecordList struct {
	Results []catalog.Record `json:"results"`
}

// Check accepts any decoded list.
func (p *RecordList) Check() error { return nil }
