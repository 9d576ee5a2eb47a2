package audio

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const DefaultMaxKeyLength = 100

var (
	keyInvalidChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	keyWhitespace   = regexp.MustCompile(`\s+`)
)

// StorageKey derives the deterministic storage key of an item, e.g. "vocab/life-threatening.mp3".
func StorageKey(kind Kind, text string, maxLength int) string {
	return string(kind) + "/" + Slug(text, maxLength) + ".mp3"
}

// Slug lower-cases text, folds accents, drops characters outside [a-z0-9 -] and joins words with hyphens.
// Text without any usable character falls back to a hash so the key stays unique.
func Slug(text string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultMaxKeyLength
	}

	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), text)
	if err != nil {
		folded = text
	}
	slug := strings.ToLower(folded)
	slug = keyInvalidChars.ReplaceAllString(slug, "")
	slug = keyWhitespace.ReplaceAllString(strings.TrimSpace(slug), "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > maxLength {
		slug = strings.Trim(slug[:maxLength], "-")
	}
	if slug == "" {
		sum := sha256.Sum256([]byte(text))
		slug = hex.EncodeToString(sum[:])[:16]
	}
	return slug
}
