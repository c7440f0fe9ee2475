package upload

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// The program browser on the brain only renders ASCII. FoldName strips
// diacritics, replaces everything else that remains non-ASCII and clamps the
// result to the slot name length.
const maxNameLen = 32

var foldTransform = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func FoldName(name string) string {
	folded, _, err := transform.String(foldTransform, name)
	if err != nil {
		folded = name
	}
	var b strings.Builder
	for _, r := range folded {
		switch {
		case r >= 0x20 && r < 0x7f:
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
		if b.Len() >= maxNameLen {
			break
		}
	}
	if b.Len() == 0 {
		return "program"
	}
	return b.String()
}
