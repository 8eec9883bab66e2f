package parse

import (
	"regexp"
	"strings"
)

var (
	spacesRe        = regexp.MustCompile(`\p{Z}+`)
	formatControlRe = regexp.MustCompile(`\p{Cf}+`)
	whitespaceRe    = regexp.MustCompile(`\s+`)
)

func TrimText(text string) string {
	text = spacesRe.ReplaceAllString(text, " ")
	text = formatControlRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// CollapseText is TrimText which also folds line breaks and tabs: metadata services often return titles wrapped over
// several lines.
func CollapseText(text string) string {
	return whitespaceRe.ReplaceAllString(TrimText(text), " ")
}
