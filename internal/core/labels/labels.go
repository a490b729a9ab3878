// Package labels canonicalizes classifier action labels so that cosmetic variants
// ("Chase", "chase ", "ＣＨＡＳＥ") fall into one category
// Pipeline order
// 1 UTF-8 repair drop invalid bytes
// 2 Unicode NFKD decomposition
// 3 Case folding
// 4 Remove combining marks and format chars
// 5 Width fold fullwidth to ASCII, recompose NFC
// 6 Whitespace, hyphen and dot runs become a single underscore, edges trimmed
package labels

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Unknown is returned for labels that are empty after canonicalization
const Unknown = "unknown"

var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKD, // decompose so accents become removable marks
			cases.Fold(),
			runes.Remove(runes.In(unicode.Mn)),
			runes.Remove(runes.In(unicode.Cf)), // ZWJ ZWNJ FEFF etc
			width.Fold,
			norm.NFC,
		)
	},
}

// Canonical returns the canonical form of a label
func Canonical(s string) string {
	s = strings.ToValidUTF8(s, "")
	if strings.TrimSpace(s) == "" {
		return Unknown
	}

	tr := chainPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		ns = strings.ToLower(s)
	}

	ns = joinWords(ns)
	if ns == "" {
		return Unknown
	}
	return ns
}

func joinWords(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	sep := false
	for _, r := range s {
		if unicode.IsSpace(r) || r == '-' || r == '_' || r == '.' {
			sep = b.Len() > 0
			continue
		}
		if sep {
			b.WriteByte('_')
			sep = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Set tracks the distinct canonical labels seen in a batch in first seen order
type Set struct {
	order []string
	seen  map[string]int
}

// NewSet returns an empty Set
func NewSet() *Set { return &Set{seen: map[string]int{}} }

// Add canonicalizes s, records it and returns the canonical form
func (ls *Set) Add(s string) string {
	c := Canonical(s)
	if _, ok := ls.seen[c]; !ok {
		ls.order = append(ls.order, c)
	}
	ls.seen[c]++
	return c
}

// Labels returns the distinct labels in first seen order
func (ls *Set) Labels() []string { return append([]string(nil), ls.order...) }

// Count returns how often the canonical label c was added
func (ls *Set) Count(c string) int { return ls.seen[c] }
