package fixture

import (
	"slices"
	"strconv"
	"strings"

	"github.com/listenupapp/library-client/internal/backend"
	"github.com/listenupapp/library-client/internal/domain"
)

// Directory is the paginated author listing. It presents a fixed-size virtual
// set built by cycling the base authors: cycle 0 repeats them verbatim, cycle
// k>0 suffixes the name with " (k+1)" and the id with "-<k+1>".
type Directory struct {
	base  []domain.Author
	total int
}

// NewDirectory creates a directory of total entries over base.
func NewDirectory(base []domain.Author, total int) *Directory {
	if len(base) == 0 {
		total = 0
	}
	return &Directory{base: base, total: total}
}

// Total returns the size of the virtual set.
func (d *Directory) Total() int {
	return d.total
}

// At returns the i-th virtual author (0-based).
func (d *Directory) At(i int) domain.Author {
	a := d.base[i%len(d.base)]
	if cycle := i / len(d.base); cycle > 0 {
		suffix := strconv.Itoa(cycle + 1)
		a.ID += "-" + suffix
		a.Name += " (" + suffix + ")"
	}
	return a
}

// Page returns the authors of req with its pagination metadata.
// A page past the end is empty, not an error.
func (d *Directory) Page(req backend.PageRequest) (*domain.AuthorPage, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p := domain.NewPagination(req.Page, req.Limit, d.total)
	start, end := p.Window()

	authors := make([]domain.Author, 0, end-start)
	for i := start; i < end; i++ {
		authors = append(authors, d.At(i))
	}
	return &domain.AuthorPage{Authors: authors, Pagination: p}, nil
}

// Resolve maps a virtual author id back to its base id and cycle.
// Base ids resolve to themselves with cycle 0. ok is false for ids the
// directory never produces.
func (d *Directory) Resolve(id string) (baseID string, cycle int, ok bool) {
	for _, a := range d.base {
		if a.ID == id {
			return id, 0, true
		}
	}

	i := strings.LastIndexByte(id, '-')
	if i < 0 {
		return "", 0, false
	}
	n, err := strconv.Atoi(id[i+1:])
	if err != nil || n < 2 {
		return "", 0, false
	}
	for pos, a := range d.base {
		if a.ID == id[:i] && (n-1)*len(d.base)+pos < d.total {
			return a.ID, n - 1, true
		}
	}
	return "", 0, false
}

// Lookup returns the virtual author with id.
func (d *Directory) Lookup(id string) (domain.Author, bool) {
	baseID, cycle, ok := d.Resolve(id)
	if !ok {
		return domain.Author{}, false
	}
	pos := slices.IndexFunc(d.base, func(a domain.Author) bool { return a.ID == baseID })
	return d.At(cycle*len(d.base) + pos), true
}
