package lines

import (
	"regexp"
	"strings"

	"github.com/heartmarshall/n3vocab/internal/japanese"
)

var (
	partHeaderRe = regexp.MustCompile(`(?i)^part\s*\d+$`)
	pageLabelRe  = regexp.MustCompile(`(?i)^(page\s*\d+|\d+\s*ページ|ページ\s*\d*)$`)
)

// IsNoise reports whether line is page furniture: part banners, summary
// headings, page numbers, and checkbox runs.
func IsNoise(line string) bool {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return true
	case japanese.IsDigits(line):
		return true
	case line == "まとめ", line == "文法":
		return true
	case strings.Trim(line, "□ ") == "":
		return true
	case partHeaderRe.MatchString(line):
		return true
	case pageLabelRe.MatchString(line):
		return true
	}
	return false
}
