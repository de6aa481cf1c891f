package profile

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var upper = cases.Upper(language.Und)

// Canon canonicalizes a schema key name the way every profile document
// field that holds one is canonicalized: trimmed, and upper-cased so
// "key_a", "Key_A" and "KEY_A" all resolve to the same SchemaKey.
func Canon(s string) SchemaKey {
	return SchemaKey(upper.String(strings.TrimSpace(s)))
}
