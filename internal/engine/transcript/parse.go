package transcript

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/anatolykoptev/go_ytsum/internal/engine"
	"github.com/asticode/go-astisub"
)

// Format is the wire format a caption endpoint returns.
type Format string

const (
	FormatXML Format = "xml" // YouTube timedtext
	FormatVTT Format = "vtt"
	FormatSRT Format = "srt"
)

var errNoSegments = errors.New("no text segments")

// Parse dispatches to the parser for f.
func Parse(f Format, data []byte) (string, error) {
	switch f {
	case FormatXML:
		return ParseTimedText(data)
	case FormatVTT:
		text := ParseVTT(string(data))
		if text == "" {
			return "", errNoSegments
		}
		return text, nil
	case FormatSRT:
		return ParseSRT(data)
	}
	return "", fmt.Errorf("unknown caption format %q", f)
}

// entityReplacer decodes the entities YouTube leaves double-escaped inside
// timedtext nodes.
var entityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
)

// ParseTimedText collects the text of every leaf element of a timedtext XML
// document in document order, decodes entities and joins segments with
// single spaces. Malformed documents yield an error, never a panic.
func ParseTimedText(data []byte) (string, error) {
	d := xml.NewDecoder(bytes.NewReader(data))
	d.Entity = xml.HTMLEntity

	type frame struct {
		text     strings.Builder
		hasChild bool
	}
	var stack []*frame
	var segments []string

	for {
		tok, err := d.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return "", fmt.Errorf("parse timedtext XML: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if n := len(stack); n > 0 {
				stack[n-1].hasChild = true
			}
			stack = append(stack, &frame{})
		case xml.CharData:
			if n := len(stack); n > 0 {
				stack[n-1].text.Write(t)
			}
		case xml.EndElement:
			n := len(stack)
			if n == 0 {
				continue
			}
			f := stack[n-1]
			stack = stack[:n-1]
			if f.hasChild {
				continue
			}
			if s := strings.TrimSpace(entityReplacer.Replace(f.text.String())); s != "" {
				segments = append(segments, s)
			}
		}
	}

	if len(segments) == 0 {
		return "", errNoSegments
	}
	return strings.Join(segments, " "), nil
}

var (
	cueIndexRe  = regexp.MustCompile(`^\d+$`)
	vttHeaderRe = regexp.MustCompile(`^(Kind|Language):`)
	vttNonCueRe = regexp.MustCompile(`^(NOTE|STYLE|REGION)([ \t]|$)`)
)

// ParseVTT extracts the spoken lines of a WebVTT-like document. Headers,
// cue timings, header metadata, NOTE/STYLE/REGION blocks, numeric cue
// indices and tag-only lines are dropped; inline tags are stripped from the
// lines that remain.
func ParseVTT(raw string) string {
	var kept []string
	blockStart, skipBlock := true, false
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(strings.TrimRight(line, "\r"))
		if line == "" {
			blockStart, skipBlock = true, false
			continue
		}
		first := blockStart
		blockStart = false
		if skipBlock {
			continue
		}
		if first && vttNonCueRe.MatchString(line) {
			skipBlock = true
			continue
		}
		switch {
		case strings.HasPrefix(line, "WEBVTT"),
			strings.Contains(line, "-->"),
			vttHeaderRe.MatchString(line),
			cueIndexRe.MatchString(line),
			strings.HasPrefix(line, "<"):
			continue
		}
		if text := engine.StripTags(line); text != "" {
			kept = append(kept, text)
		}
	}
	return strings.Join(kept, " ")
}

// ParseSRT reads a SubRip document and joins its cue lines.
func ParseSRT(data []byte) (string, error) {
	subs, err := astisub.ReadFromSRT(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("parse srt: %w", err)
	}
	var lines []string
	for _, item := range subs.Items {
		for _, l := range item.Lines {
			lines = append(lines, engine.StripTags(l.String()))
		}
	}
	text := engine.JoinNonEmpty(lines)
	if text == "" {
		return "", errNoSegments
	}
	return text, nil
}
