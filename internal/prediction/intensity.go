package prediction

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// neutralIntensity applies whenever a target matches nothing in the table.
const neutralIntensity = 1.0

// LookupIntensity resolves the political-intensity multiplier for a target.
// The canonical ID is tried exactly first, then fuzzily: each table key's
// tokens are substring-matched against the ID, skipping tokens shorter than
// two runes so single-character fragments can't cause false hits. Keys are
// scanned in sorted order so a target matching several entries always
// resolves the same way. The second return reports whether anything matched.
func (t *Tables) LookupIntensity(target Target) (float64, bool) {
	if v, ok := t.Intensity[target.ID]; ok {
		return v, true
	}

	keys := make([]string, 0, len(t.Intensity))
	for key := range t.Intensity {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		for _, token := range strings.Fields(key) {
			if utf8.RuneCountInString(token) < 2 {
				continue
			}
			if strings.Contains(target.ID, token) {
				return t.Intensity[key], true
			}
		}
	}
	return neutralIntensity, false
}
