package engine

import "testing"

func TestStripTags(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"<c>word</c>", "word"},
		{"  <00:00:01.000><c> spaced </c>  ", "spaced"},
		{"a <b>bold</b> move", "a bold move"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := StripTags(tt.in); got != tt.want {
			t.Errorf("StripTags(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestJoinNonEmpty(t *testing.T) {
	got := JoinNonEmpty([]string{" one ", "", "  ", "two", "\tthree\n"})
	if got != "one two three" {
		t.Errorf("JoinNonEmpty() = %q", got)
	}
	if got := JoinNonEmpty(nil); got != "" {
		t.Errorf("JoinNonEmpty(nil) = %q", got)
	}
}

func TestRuneLen(t *testing.T) {
	if got := RuneLen("çağrı"); got != 5 {
		t.Errorf("RuneLen() = %d, want 5", got)
	}
}
