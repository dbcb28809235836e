package reference

import (
	"strings"
	"unicode"

	"github.com/FocuswithJustin/Scriptura/core/errors"
)

// MaxInputLength bounds raw reference strings. Real references are short;
// the cap guards batch calls against pathological input.
const MaxInputLength = 256

// Normalize cleans a raw reference string into the canonical form consumed
// by the grammar: whitespace runs collapse to single spaces, en and em
// dashes fold to "-", and surrounding whitespace is trimmed. It fails with
// a MalformedInputError when the input is empty, oversized, or contains
// control characters.
func Normalize(raw string) (string, error) {
	if len(raw) > MaxInputLength {
		return "", errors.NewMalformedInput("reference exceeds maximum length")
	}
	for _, r := range raw {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return "", errors.NewMalformedInput("reference contains control characters")
		}
	}

	folded := strings.Map(func(r rune) rune {
		switch r {
		case '–', '—': // en dash, em dash
			return '-'
		}
		return r
	}, raw)

	normalized := strings.Join(strings.Fields(folded), " ")
	if normalized == "" {
		return "", errors.NewMalformedInput("empty reference")
	}
	return normalized, nil
}
