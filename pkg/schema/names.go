package schema

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeName canonicalizes a member name: Unicode NFC, surrounding space
// trimmed, internal whitespace runs collapsed to one space.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(norm.NFC.String(name)), " ")
}
