package projects

import (
	"errors"
	"strconv"

	"github.com/Zachkp/portfolio-api/internal/sheet"
)

// ErrNotFound is returned when no record matches the requested identifier.
var ErrNotFound = errors.New("project not found")

// IDColumns are checked in order for an explicit row identity.
var IDColumns = []string{"id", "ID", "_id"}

// Identity tells how a record was identified.
type Identity string

const (
	// IdentityColumn means an id column matched; the link is stable.
	IdentityColumn Identity = "column"
	// IdentityIndex means the row position matched. The link changes if
	// rows are reordered or removed upstream.
	IdentityIndex Identity = "index"
)

// Match is the result of a successful lookup.
type Match struct {
	Record   *sheet.Record
	Index    int
	Identity Identity
}

// ExplicitID returns the first non-empty id column of rec.
func ExplicitID(rec *sheet.Record) (string, bool) {
	for _, col := range IDColumns {
		if v := rec.Get(col); v.Truthy() {
			return v.Text(), true
		}
	}
	return "", false
}

// Lookup scans records in order and returns the first row whose id, ID or
// _id column loosely equals id or, when allowIndex is set, whose position
// equals id. Uniqueness is not checked; the first match wins.
func Lookup(records []*sheet.Record, id string, allowIndex bool) (Match, error) {
	for i, rec := range records {
		for _, col := range IDColumns {
			if rec.Get(col).LooselyEquals(id) {
				return Match{Record: rec, Index: i, Identity: IdentityColumn}, nil
			}
		}
		if allowIndex && strconv.Itoa(i) == id {
			return Match{Record: rec, Index: i, Identity: IdentityIndex}, nil
		}
	}
	return Match{}, ErrNotFound
}
