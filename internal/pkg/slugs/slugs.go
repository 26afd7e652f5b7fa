package slugs

import (
	"fmt"
	"strings"

	"github.com/gosimple/slug"
)

// Make normalizes a display string into a URL slug. Dots are stripped before
// slugging so abbreviations collapse ("S.R.L" becomes "srl", not "s-r-l").
func Make(s string) string {
	return slug.Make(strings.ReplaceAll(strings.TrimSpace(s), ".", ""))
}

// MakeUnique derives a slug from base and appends -2, -3, ... until exists
// reports a free candidate. exists receives each candidate slug.
func MakeUnique(base string, exists func(candidate string) (bool, error)) (string, error) {
	candidate := Make(base)
	if candidate == "" {
		candidate = "proveedor"
	}
	root := candidate
	for i := 2; ; i++ {
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", root, i)
	}
}
