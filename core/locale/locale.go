// Package locale checks locale identifiers used as record keys.
//
// Codes are validated as BCP-47 tags but never rewritten: both backends key
// localizations by the exact spelling they return, so "en-US" must stay "en-US".
package locale

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// Validate reports whether code is a well-formed, non-empty BCP-47 tag.
func Validate(code string) error {
	if strings.TrimSpace(code) == "" {
		return fmt.Errorf("locale is empty")
	}
	if code != strings.TrimSpace(code) {
		return fmt.Errorf("locale %q has surrounding whitespace", code)
	}
	tag, err := language.Parse(code)
	if err != nil {
		return fmt.Errorf("locale %q is not a valid language tag: %w", code, err)
	}
	if tag == language.Und {
		return fmt.Errorf("locale %q is undetermined", code)
	}
	return nil
}

// ParseList splits a comma separated list of locales, dropping blanks and duplicates.
func ParseList(s string) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	for _, part := range strings.Split(s, ",") {
		code := strings.TrimSpace(part)
		if code == "" {
			continue
		}
		if err := Validate(code); err != nil {
			return nil, err
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	sort.Strings(out)
	return out, nil
}
