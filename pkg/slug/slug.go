package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonAlnum   = regexp.MustCompile(`[^a-z0-9]+`)
	apostrophe = strings.NewReplacer("'", "", "’", "", "&", " and ")
)

// Generate creates a URL-friendly slug from a record title or artist.
// Diacritics are folded to ASCII, apostrophes are dropped and "&" becomes "and".
//
//	"Rumours"                 -> "rumours"
//	"Sgt. Pepper's Band"      -> "sgt-peppers-band"
//	"Simon & Garfunkel"       -> "simon-and-garfunkel"
//	"Motörhead"               -> "motorhead"
func Generate(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = apostrophe.Replace(s)

	folded, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err == nil {
		s = folded
	}

	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Join slugs each part and joins them with a hyphen, skipping empty parts.
func Join(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if g := Generate(p); g != "" {
			out = append(out, g)
		}
	}
	return strings.Join(out, "-")
}
