package detector

import (
	"html"
	"regexp"
	"strconv"
	"strings"
)

var (
	inlineCheckTag = regexp.MustCompile(`<a\b[^>]*\bclass="[^"]*\binline-check\b[^"]*"[^>]*>`)
	checkAttr      = regexp.MustCompile(`\bdata-pf2-check="(fortitude|reflex|will)"`)
	dcAttr         = regexp.MustCompile(`\bdata-pf2-dc="(\d+)"`)
	againstAttr    = regexp.MustCompile(`\bdata-against="([\w-]+)"`)
	anyTag         = regexp.MustCompile(`<[^>]*>`)
)

// InlineCheck is a save link found in message text.
type InlineCheck struct {
	SaveType string
	// DC is zero when the link names a statistic to check against instead.
	DC      int
	Against string
}

// FindInlineCheck returns the first fortitude, reflex or will inline check in content.
func FindInlineCheck(content string) (*InlineCheck, bool) {
	for _, tag := range inlineCheckTag.FindAllString(content, -1) {
		check := checkAttr.FindStringSubmatch(tag)
		if check == nil {
			continue
		}

		found := &InlineCheck{SaveType: check[1]}
		if m := dcAttr.FindStringSubmatch(tag); m != nil {
			found.DC, _ = strconv.Atoi(m[1])
		}
		if m := againstAttr.FindStringSubmatch(tag); m != nil {
			found.Against = m[1]
		}
		return found, true
	}
	return nil, false
}

// ContainsPhrase reports whether the visible text of content contains phrase, ignoring case.
func ContainsPhrase(content, phrase string) bool {
	if phrase == "" {
		return false
	}
	text := html.UnescapeString(anyTag.ReplaceAllString(content, " "))
	text = strings.Join(strings.Fields(text), " ")
	return strings.Contains(strings.ToLower(text), strings.ToLower(phrase))
}
