// Package board partitions the filtered record set into the ordered
// department columns of the kanban view.
package board

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/peter890821/esg-eval-dashboard/internal/model"
)

// Group is one board column: a department key, its display accent and
// its member records in stable filtered order.
type Group struct {
	Key     string         `json:"key"`
	Accent  string         `json:"accent"`
	Records []model.Record `json:"records"`
}

// DefaultAccent is applied to group keys matching no accent keyword.
const DefaultAccent = "accent-gray"

// accentRules map department-name keywords to display accents by
// substring containment. Rule order is the tie-break: the first
// matching keyword wins.
var accentRules = []struct {
	Keyword string
	Accent  string
}{
	{"永續", "accent-green"},
	{"環安", "accent-green"},
	{"人資", "accent-orange"},
	{"社會", "accent-orange"},
	{"董事", "accent-blue"},
	{"治理", "accent-blue"},
	{"稽核", "accent-purple"},
	{"財務", "accent-purple"},
}

// AccentFor returns the display accent for a group key.
func AccentFor(key string) string {
	for _, rule := range accentRules {
		if strings.Contains(key, rule.Keyword) {
			return rule.Accent
		}
	}
	return DefaultAccent
}

// Build partitions filtered records by department key and returns the
// groups in board order: collated alphabetically for the natural
// language of the labels, with the unassigned sentinel always last.
// Member order within a group is the filtered set's relative order.
func Build(filtered []model.Record) []Group {
	members := make(map[string][]model.Record)
	var keys []string
	for _, r := range filtered {
		key := r.DepartmentKey()
		if _, ok := members[key]; !ok {
			keys = append(keys, key)
		}
		members[key] = append(members[key], r)
	}

	c := collate.New(language.TraditionalChinese)
	sort.SliceStable(keys, func(i, j int) bool {
		// The sentinel never takes part in alphabetic comparison.
		if keys[i] == model.DepartmentUnassigned {
			return false
		}
		if keys[j] == model.DepartmentUnassigned {
			return true
		}
		return c.CompareString(keys[i], keys[j]) < 0
	})

	groups := make([]Group, 0, len(keys))
	for _, key := range keys {
		groups = append(groups, Group{
			Key:     key,
			Accent:  AccentFor(key),
			Records: members[key],
		})
	}
	return groups
}
