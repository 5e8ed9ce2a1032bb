package common

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	ErrEmptySlug = errors.New("slug cannot be empty")
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
	accentFolder = strings.NewReplacer(
		"á", "a", "à", "a", "â", "a", "ã", "a", "ä", "a",
		"é", "e", "è", "e", "ê", "e", "ë", "e",
		"í", "i", "ì", "i", "î", "i", "ï", "i",
		"ó", "o", "ò", "o", "ô", "o", "õ", "o", "ö", "o",
		"ú", "u", "ù", "u", "û", "u", "ü", "u",
		"ç", "c", "ñ", "n",
	)
)

// Slugify turns a workspace name into its URL slug, falling back to fallback
// when the name has no usable characters.
func Slugify(input, fallback string) (string, error) {
	slug := slugify(input)
	if slug == "" {
		slug = slugify(fallback)
	}
	if slug == "" {
		return "", ErrEmptySlug
	}
	return slug, nil
}

// WithSuffix disambiguates a taken slug: ("acme", 0) -> "acme",
// ("acme", 2) -> "acme-2".
func WithSuffix(slug string, n int) string {
	if n <= 0 {
		return slug
	}
	return fmt.Sprintf("%s-%d", slug, n)
}

func slugify(s string) string {
	lower := accentFolder.Replace(strings.ToLower(strings.TrimSpace(s)))
	slug := nonSlugChars.ReplaceAllString(lower, "-")
	return strings.Trim(slug, "-")
}
