// Package domain contains the library entities exchanged through the data access layer.
package domain

import (
	"bytes"
	"fmt"
	"strings"
	"time"
)

// Book is a title in the collection with its copy availability.
type Book struct {
	ID           string       `json:"_id"`
	Title        string       `json:"title"`
	Author       AuthorRef    `json:"author"`
	Category     CategoryRef  `json:"category"`
	Cover        string       `json:"cover"`
	Rating       float64      `json:"rating"`
	TotalReviews int          `json:"totalReviews"`
	Description  string       `json:"description"`
	Pages        int          `json:"pages"`
	PublishedAt  Date         `json:"publishedAt"`
	ISBN         string       `json:"isbn,omitempty"`
	Availability Availability `json:"availability"`
}

// AuthorRef is the author projection embedded in a book.
type AuthorRef struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	Bio  string `json:"bio,omitempty"`
}

// CategoryRef is the category projection embedded in a book.
type CategoryRef struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// Availability counts physical copies. Invariant: 0 <= Available <= Total.
type Availability struct {
	Total     int `json:"total"`
	Available int `json:"available"`
}

// Validate checks the copy-count invariant.
func (a Availability) Validate() error {
	if a.Total < 0 || a.Available < 0 {
		return fmt.Errorf("copy counts cannot be negative (total=%d, available=%d)", a.Total, a.Available)
	}
	if a.Available > a.Total {
		return fmt.Errorf("available copies (%d) exceed total copies (%d)", a.Available, a.Total)
	}
	return nil
}

// InStock reports whether at least one copy can be borrowed.
func (a Availability) InStock() bool {
	return a.Available > 0
}

// Take removes one available copy. Returns false when none is left.
func (a *Availability) Take() bool {
	if a.Available <= 0 {
		return false
	}
	a.Available--
	return true
}

// Give puts one copy back, never exceeding the total.
func (a *Availability) Give() {
	if a.Available < a.Total {
		a.Available++
	}
}

// Resize changes the total copy count and clamps the available count to it.
func (a *Availability) Resize(total int) {
	if total < 0 {
		total = 0
	}
	lent := a.Total - a.Available
	a.Total = total
	a.Available = max(total-lent, 0)
}

// Date is a calendar timestamp that accepts both RFC 3339 and bare
// YYYY-MM-DD values on decode. The remote API and the bundled dataset use both.
type Date struct {
	time.Time
}

const dateOnly = "2006-01-02"

// NewDate parses a YYYY-MM-DD date and panics on malformed input.
// Only used for literal dataset values.
func NewDate(s string) Date {
	t, err := time.Parse(dateOnly, s)
	if err != nil {
		panic(fmt.Sprintf("invalid date literal %q: %v", s, err))
	}
	return Date{Time: t}
}

// MarshalJSON writes the date as YYYY-MM-DD when it carries no time of day.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	if d.Equal(d.Truncate(24 * time.Hour)) {
		return []byte(`"` + d.UTC().Format(dateOnly) + `"`), nil
	}
	return []byte(`"` + d.UTC().Format(time.RFC3339) + `"`), nil
}

// UnmarshalJSON accepts RFC 3339, YYYY-MM-DD, an empty string or null.
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		d.Time = time.Time{}
		return nil
	}
	s := strings.Trim(string(data), `"`)
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, dateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", s)
}
