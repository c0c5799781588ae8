package transcript

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTimedText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "format 1 text nodes",
			in:   `<?xml version="1.0" encoding="utf-8" ?><transcript><text start="0" dur="1.5">Hello &amp;amp; welcome</text><text start="1.5" dur="2">it&amp;#39;s  fine </text></transcript>`,
			want: "Hello & welcome it's  fine",
		},
		{
			name: "format 3 leaf segments",
			in:   `<timedtext format="3"><body><p t="0" d="1000"><s>Merhaba</s><s> dünya</s></p><p t="1000"><s>nasılsın</s></p></body></timedtext>`,
			want: "Merhaba dünya nasılsın",
		},
		{
			name: "quotes and angle brackets",
			in:   `<transcript><text>&amp;quot;a&amp;quot; &amp;lt;b&amp;gt;</text></transcript>`,
			want: `"a" <b>`,
		},
		{
			name: "blank nodes skipped",
			in:   `<transcript><text>one</text><text>   </text><text>two</text></transcript>`,
			want: "one two",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimedText([]byte(tt.in))
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseTimedTextErrors(t *testing.T) {
	for _, in := range []string{
		`<transcript><text>unclosed`,
		`<transcript></transcript>`,
		`not xml at all`,
		``,
	} {
		_, err := ParseTimedText([]byte(in))
		require.Error(t, err, "input %q", in)
	}
}

const sampleVTT = "WEBVTT\n" +
	"Kind: captions\n" +
	"Language: en\n" +
	"\n" +
	"1\n" +
	"00:00:00.000 --> 00:00:02.000 align:start position:0%\n" +
	"Hello <c>there</c>\r\n" +
	"\n" +
	"NOTE this is a comment\n" +
	"\n" +
	"2\n" +
	"00:00:02.000 --> 00:00:04.000\n" +
	"<00:00:02.500><c>general</c>\n" +
	"  kenobi  \n"

func TestParseVTT(t *testing.T) {
	require.Equal(t, "Hello there kenobi", ParseVTT(sampleVTT))
	require.Empty(t, ParseVTT("WEBVTT\n\n00:00:00.000 --> 00:00:01.000\n"))
}

func TestParseVTTKeepsSpokenKeywords(t *testing.T) {
	raw := "WEBVTT\n" +
		"Kind: captions\n" +
		"Language: en\n" +
		"\n" +
		"STYLE\n" +
		"::cue { color: yellow }\n" +
		"\n" +
		"NOTE\n" +
		"multi-line comment\n" +
		"still the comment\n" +
		"\n" +
		"00:00:00.000 --> 00:00:02.000\n" +
		"Kind of amazing how this works\n" +
		"\n" +
		"00:00:02.000 --> 00:00:04.000\n" +
		"Language models are everywhere\n" +
		"NOTE to self, this is spoken\n"

	require.Equal(t,
		"Kind of amazing how this works Language models are everywhere NOTE to self, this is spoken",
		ParseVTT(raw))
}

func TestParseSRT(t *testing.T) {
	srt := "1\n00:00:01,000 --> 00:00:02,000\nHello\n\n2\n00:00:02,000 --> 00:00:03,000\nWorld\n"
	got, err := ParseSRT([]byte(srt))
	require.NoError(t, err)
	require.Equal(t, "Hello World", got)
}

func TestParseDispatch(t *testing.T) {
	got, err := Parse(FormatVTT, []byte(sampleVTT))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(got, "Hello"))

	_, err = Parse(FormatVTT, []byte("WEBVTT\n"))
	require.ErrorIs(t, err, errNoSegments)

	_, err = Parse(Format("json3"), []byte("{}"))
	require.Error(t, err)
}
