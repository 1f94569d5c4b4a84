// Package catalog provides text normalization for product lookups: a search
// term canonicalizer plus static alias tables that map free-text device-model
// and part-type phrases to the canonical keys used in the catalog.
//
// The package is deterministic and dependency-light; alias resolution is a
// first-match scan over an ordered list, no dynamic dispatch.
package catalog

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonAlnumRE   = regexp.MustCompile(`[^a-z0-9\s]`)
	multiSpaceRE = regexp.MustCompile(`\s+`)

	// stripMarks decomposes to NFD, drops combining marks, and recomposes,
	// turning "câmera" into "camera".
	stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// NormalizeSearchTerm canonicalizes a free-text term for substring matching:
// lower-case, trim, strip accents, drop non-alphanumeric characters, collapse
// whitespace.
func NormalizeSearchTerm(term string) string {
	s := strings.ToLower(strings.TrimSpace(term))
	if out, _, err := transform.String(stripMarks, s); err == nil {
		s = out
	}
	s = nonAlnumRE.ReplaceAllString(s, "")
	s = multiSpaceRE.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// alias pairs a canonical catalog key with the substrings that select it.
// Order matters: the first canonical entry whose alias list matches wins.
type alias struct {
	canonical string
	variants  []string
}

// modelAliases maps commercial names, board codes, and shorthand to the
// canonical device-model keys used in the produtos table.
var modelAliases = []alias{
	{"Galaxy S20", []string{"galaxy s20", "g980f", "sm-g980f", "s20"}},
	{"Galaxy S21", []string{"galaxy s21", "g991f", "sm-g991f", "s21"}},
	{"iPhone 12", []string{"iphone 12", "a2172", "iph12"}},
	{"iPhone 13", []string{"iphone 13", "a2633", "iph13"}},
	{"Redmi Note 11", []string{"redmi note 11", "note11", "redmi 11"}},
	{"Redmi Note 12", []string{"redmi note 12", "note12", "redmi 12"}},
}

// partAliases maps customer vocabulary to the canonical part names used in
// product names ("frontal" covers the whole display assembly).
var partAliases = []alias{
	{"frontal", []string{"frontal", "tela", "display", "touch", "lcd"}},
	{"bateria", []string{"bateria", "battery"}},
	{"camera", []string{"camera", "câmera", "cam"}},
	{"alto-falante", []string{"alto-falante", "speaker", "som"}},
	{"microfone", []string{"microfone", "mic"}},
	{"conector", []string{"conector", "entrada", "porta"}},
}

// NormalizeModel maps a free-text device-model phrase to its canonical
// catalog key. Unrecognized input is returned unchanged.
func NormalizeModel(model string) string {
	return resolveAlias(model, modelAliases)
}

// NormalizePartType maps a free-text part phrase to its canonical catalog
// key. Unrecognized input is returned unchanged.
func NormalizePartType(part string) string {
	return resolveAlias(part, partAliases)
}

func resolveAlias(input string, table []alias) string {
	needle := strings.ToLower(strings.TrimSpace(input))
	if needle == "" {
		return input
	}
	for _, a := range table {
		for _, v := range a.variants {
			if strings.Contains(needle, v) {
				return a.canonical
			}
		}
	}
	return input
}
