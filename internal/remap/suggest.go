package remap

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxSuggestions caps how many namespaces Suggest returns.
const maxSuggestions = 3

// Suggest returns the candidates closest to namespace by edit distance,
// ignoring case, nearest first. Candidates further than a third of the
// namespace's length (minimum 2) are left out. It helps an operator spot a
// namespace that was renamed rather than removed.
func Suggest(namespace string, candidates []string) []string {
	type scored struct {
		name string
		dist int
	}

	limit := max(len(namespace)/3, 2)
	want := strings.ToLower(namespace)

	var found []scored
	for _, c := range candidates {
		if c == namespace {
			continue
		}
		d := levenshtein.ComputeDistance(want, strings.ToLower(c))
		if d <= limit {
			found = append(found, scored{c, d})
		}
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].dist != found[j].dist {
			return found[i].dist < found[j].dist
		}
		return found[i].name < found[j].name
	})

	out := make([]string, 0, maxSuggestions)
	for _, s := range found {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, s.name)
	}
	return out
}
