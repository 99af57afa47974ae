package email

import (
	"regexp"
)

// hrefPattern matches anchor href attributes with either quote style. RE2 has
// no backreferences, so the two quote forms are spelled out as alternatives.
var hrefPattern = regexp.MustCompile(`(?i)<a\s+(?:[^>]*?\s+)?href=(?:"([^"]*)"|'([^']*)')`)

// ExtractLinks returns the ordered href targets of anchor elements in the
// given HTML. Values are returned verbatim: relative, mailto, and malformed
// URLs are all passed through, and duplicates are not removed. Validation is
// the consumer's job.
func ExtractLinks(html string) []string {
	if html == "" {
		return nil
	}

	matches := hrefPattern.FindAllStringSubmatch(html, -1)
	var links []string
	for _, match := range matches {
		if match[1] != "" {
			links = append(links, match[1])
		} else if match[2] != "" {
			links = append(links, match[2])
		}
	}
	return links
}
