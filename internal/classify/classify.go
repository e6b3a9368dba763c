// Package classify assigns a coarse furniture category from product text
// using an ordered whole-word keyword table.
package classify

import (
	"regexp"
	"strings"
)

// DefaultLabel is returned when no keyword group matches.
const DefaultLabel = "Miscellaneous"

type rule struct {
	label   string
	pattern *regexp.Regexp
}

// Rules are tried top to bottom and the first hit wins, so a title holding
// both "chair" and "lamp" is Seating. The order is part of the contract.
var rules = []rule{
	{"Seating", regexp.MustCompile(`\b(chair|sofa|couch|stool|ottoman)\b`)},
	{"Table / Stand", regexp.MustCompile(`\b(table|desk|stand)\b`)},
	{"Storage / Organizer", regexp.MustCompile(`\b(rack|shelf|organizer|storage)\b`)},
	{"Mat / Rug", regexp.MustCompile(`\b(mat|rug|doormat)\b`)},
	{"Lighting", regexp.MustCompile(`\b(lamp|light)\b`)},
}

// Predict maps a product's title and category tags to a category label.
// Matching is case-insensitive and word-boundary based, so "chairman" does
// not count as "chair".
func Predict(title, categories string) string {
	text := strings.ToLower(title + " " + categories)
	for _, r := range rules {
		if r.pattern.MatchString(text) {
			return r.label
		}
	}
	return DefaultLabel
}
