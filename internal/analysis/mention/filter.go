// Package mention re-derives which entities a persona-voiced reply actually
// talks about, so the UI shows cards in the order they come up.
package mention

import (
	"regexp"
	"sort"
	"strings"

	"github.com/streetwise-app/backend/internal/model/entity"
)

var leadingArticle = regexp.MustCompile(`^(the|a|an)\s+`)

// fallbackCount caps the default subset when the text names nothing.
const fallbackCount = 5

// Filter returns the entities referenced in text, ordered by first mention.
// When no entity matches at all it falls back to the first five entities of
// the input, which callers pass pre-sorted by rating.
func Filter(text string, records []entity.Record) []entity.Record {
	if text == "" {
		return records
	}
	lowered := strings.ToLower(text)

	type match struct {
		record entity.Record
		index  int
	}
	var matches []match

	for _, rec := range records {
		name := strings.ToLower(rec.Name)
		if name == "" {
			continue
		}

		idx := strings.Index(lowered, name)

		// Retry without a leading article and trailing " - ..." qualifier.
		if idx == -1 {
			clean := strings.TrimSpace(strings.SplitN(leadingArticle.ReplaceAllString(name, ""), " - ", 2)[0])
			if len(clean) > 3 {
				idx = strings.Index(lowered, clean)
			}
		}

		// Last resort: the first word alone, when distinctive enough.
		if idx == -1 {
			first, _, _ := strings.Cut(name, " ")
			if len(first) >= 4 {
				idx = strings.Index(lowered, first)
			}
		}

		if idx != -1 {
			matches = append(matches, match{record: rec, index: idx})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].index < matches[j].index
	})

	if len(matches) > 0 {
		out := make([]entity.Record, len(matches))
		for i, m := range matches {
			out[i] = m.record
		}
		return out
	}

	if len(records) > fallbackCount {
		return records[:fallbackCount]
	}
	return records
}
