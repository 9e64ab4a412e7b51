package duplicates

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"newsvol/internal/domain"

	"github.com/agnivade/levenshtein"
)

// Similarity metrics selectable through configuration.
const (
	MetricIndel       = "indel"
	MetricLevenshtein = "levenshtein"
)

// Metrics lists the accepted metric names.
var Metrics = []string{MetricIndel, MetricLevenshtein}

// ScorerFor returns the token-sort scorer for a metric name. An empty name
// selects the indel metric.
func ScorerFor(metric string) (Scorer, error) {
	switch strings.ToLower(strings.TrimSpace(metric)) {
	case "", MetricIndel:
		return TokenSortRatio, nil
	case MetricLevenshtein:
		return TokenSortLevenshteinRatio, nil
	default:
		return nil, &domain.InvalidParameterError{
			Name:   "metric",
			Reason: fmt.Sprintf("%q is not one of %s", metric, strings.Join(Metrics, ", ")),
		}
	}
}

// TokenSortRatio scores two titles from 0 to 100 after sorting their
// whitespace-separated tokens, so word order does not matter but wording does.
func TokenSortRatio(a, b string) float64 {
	return Ratio(sortTokens(a), sortTokens(b))
}

// TokenSortLevenshteinRatio is TokenSortRatio over LevenshteinRatio.
func TokenSortLevenshteinRatio(a, b string) float64 {
	return LevenshteinRatio(sortTokens(a), sortTokens(b))
}

// Ratio is the normalized indel similarity of two strings, 0 to 100:
// 100 * (1 - indel/(len(a)+len(b))), where indel counts the insertions and
// deletions turning a into b. Lengths are in runes.
func Ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 100
	}
	indel := total - 2*lcsLength(ra, rb)
	return 100 * (1 - float64(indel)/float64(total))
}

// LevenshteinRatio is 100 * (1 - distance/max(len(a), len(b))).
func LevenshteinRatio(a, b string) float64 {
	maxLen := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if maxLen == 0 {
		return 100
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 100 * (1 - float64(dist)/float64(maxLen))
}

func lcsLength(a, b []rune) int {
	if len(b) > len(a) {
		a, b = b, a
	}
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for _, x := range a {
		for j, y := range b {
			switch {
			case x == y:
				cur[j+1] = prev[j] + 1
			case prev[j+1] >= cur[j]:
				cur[j+1] = prev[j+1]
			default:
				cur[j+1] = cur[j]
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}
