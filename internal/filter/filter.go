// Package filter derives the working record set under the active
// filter criteria.
package filter

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/peter890821/esg-eval-dashboard/internal/model"
)

// Criteria is the conjunctive filter predicate. Zero-valued fields are
// no-ops; Face, Status and Department match by exact equality, Search
// by folded substring.
type Criteria struct {
	Face       model.Face
	Status     model.StatusTag
	Department string
	Search     string
}

// IsZero reports whether no criterion is active.
func (c Criteria) IsZero() bool {
	return c == Criteria{}
}

// Apply returns the subsequence of records matching every active
// criterion, preserving the input's relative order.
func Apply(records []model.Record, c Criteria) []model.Record {
	matched := make([]model.Record, 0, len(records))
	search := fold(c.Search)
	for _, r := range records {
		if c.Face != "" && r.Face != c.Face {
			continue
		}
		if c.Status != "" && r.StatusTag != c.Status {
			continue
		}
		if c.Department != "" && r.Department != c.Department {
			continue
		}
		if search != "" && !strings.Contains(fold(searchBlob(r)), search) {
			continue
		}
		matched = append(matched, r)
	}
	return matched
}

// searchBlob concatenates the searchable fields. Absent fields
// contribute nothing.
func searchBlob(r model.Record) string {
	fields := []string{r.ID, r.Title, r.Description, r.PriorYearNote, r.Department}
	parts := fields[:0]
	for _, f := range fields {
		if f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, "|")
}

// fold normalizes text for case-insensitive substring matching. NFKC
// folding unifies full-width and half-width forms before lowercasing.
func fold(s string) string {
	return strings.ToLower(norm.NFKC.String(s))
}

// Departments returns the distinct departments present in the record
// set, collated for the department dropdown. Records without a
// department contribute nothing; the unassigned sentinel is a board
// grouping concern, not a filter option.
func Departments(records []model.Record) []string {
	seen := make(map[string]struct{})
	var departments []string
	for _, r := range records {
		if r.Department == "" {
			continue
		}
		if _, ok := seen[r.Department]; ok {
			continue
		}
		seen[r.Department] = struct{}{}
		departments = append(departments, r.Department)
	}

	c := collate.New(language.TraditionalChinese)
	sort.SliceStable(departments, func(i, j int) bool {
		return c.CompareString(departments[i], departments[j]) < 0
	})
	return departments
}
