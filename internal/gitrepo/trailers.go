package gitrepo

import (
	"regexp"
	"strings"
)

// trailerLineRe matches a single "Key: value" trailer line. Continuation
// lines (folded values starting with whitespace) are accepted by the
// "contiguous block" scan below without needing a separate pattern.
var trailerLineRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9-]*: .+$`)

// TrimTrailers returns a commit body (the text after the summary line, as
// returned by Commit.Body) with its trailing trailer block removed, if one
// is present. A trailer block is a contiguous run of "Key: value" lines at
// the very end of the body; it must either make up the whole body or be
// separated from the rest of the body by a blank line. A body with no such
// block is returned unchanged.
func TrimTrailers(body string) string {
	lines := strings.Split(body, "\n")

	end := len(lines)
	for end > 0 && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	if end == 0 {
		return body
	}

	isContinuation := func(line string) bool {
		return (strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")) && strings.TrimSpace(line) != ""
	}
	start := end
	for start > 0 && (trailerLineRe.MatchString(lines[start-1]) || isContinuation(lines[start-1])) {
		start--
	}
	if start == end || !trailerLineRe.MatchString(lines[start]) {
		return body // no trailer-shaped lines at the tail
	}

	if start == 0 {
		return ""
	}
	if strings.TrimSpace(lines[start-1]) != "" {
		return body // trailer block not set off by a blank line
	}

	return strings.TrimRight(strings.Join(lines[:start-1], "\n"), "\n")
}
