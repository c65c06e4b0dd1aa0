package gitrepo

import "testing"

// TrimTrailers operates on a commit body (the text after the summary line,
// as returned by Commit.Body), not the full raw message.

func TestTrimTrailersRemovesTrailingBlock(t *testing.T) {
	body := "Detailed body text here.\n\nSigned-off-by: A Dev <a@example.com>\nRefs: #42"
	got := TrimTrailers(body)
	want := "Detailed body text here."
	if got != want {
		t.Errorf("TrimTrailers =\n%q\nwant\n%q", got, want)
	}
}

func TestTrimTrailersNoTrailerBlockUnchanged(t *testing.T) {
	body := "Just a plain body with no trailers."
	if got := TrimTrailers(body); got != body {
		t.Errorf("TrimTrailers changed a body with no trailers: %q", got)
	}
}

func TestTrimTrailersRequiresPrecedingBlankLine(t *testing.T) {
	body := "Extra context.\nRefs: #42"
	if got := TrimTrailers(body); got != body {
		t.Errorf("TrimTrailers stripped a trailer-shaped line not set off by a blank line: %q", got)
	}
}

func TestTrimTrailersWholeBodyIsTrailers(t *testing.T) {
	body := "Refs: #42\nSigned-off-by: A Dev <a@example.com>"
	if got := TrimTrailers(body); got != "" {
		t.Errorf("TrimTrailers = %q, want empty", got)
	}
}
