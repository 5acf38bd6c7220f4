package textutil

import (
	"regexp"
	"sort"
	"strings"

	"github.com/antzucaro/matchr"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeName lowercases a name and collapses its whitespace to single spaces.
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, " ")
	return name
}

type Match struct {
	Name       string
	Similarity float64
}

// Closest ranks `candidates` by Jaro-Winkler similarity to `name` (after
// normalization) and returns at most `limit` of them, best first.
func Closest(name string, candidates []string, limit int) []Match {
	target := NormalizeName(name)

	matches := make([]Match, 0, len(candidates))
	for _, c := range candidates {
		similarity := matchr.JaroWinkler(target, NormalizeName(c), false)
		if similarity <= 0 {
			continue
		}
		matches = append(matches, Match{Name: c, Similarity: similarity})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	if limit >= 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
