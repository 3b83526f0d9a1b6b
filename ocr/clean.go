package ocr

import (
	"regexp"
	"strings"
)

var reIntraSpace = regexp.MustCompile(`[ \t]+`)

// CleanText normalizes raw engine output: line breaks become "\n",
// intra-line whitespace collapses to single spaces, and blank lines are
// dropped.
func CleanText(s string) string {
	if s == "" {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(reIntraSpace.ReplaceAllString(line, " "))
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
