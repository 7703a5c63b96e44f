package ingest

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/cognicore/wordmask/pkg/wordmask/internalerr"
)

// charRef matches terminated character references such as &amp; &#39; &#x27;
var charRef = regexp.MustCompile(`&(#[0-9]+|#[xX][0-9a-fA-F]+|[A-Za-z][A-Za-z0-9]*);`)

// LocateHTML locates tokens in the text nodes of an HTML document only.
// Markup, comments, script and style bodies, and character references are
// never candidates. Spans are offsets into the original document.
func (l *Locator) LocateHTML(text string) (*Index, error) {
	idx := newIndex()
	z := html.NewTokenizer(strings.NewReader(text))

	offset := 0
	rawDepth := 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if errors.Is(z.Err(), io.EOF) {
				return idx, nil
			}
			return nil, fmt.Errorf("%w: parse html: %v", internalerr.ErrInput, z.Err())
		}

		raw := string(z.Raw())
		switch tt {
		case html.StartTagToken:
			if isRawTextTag(z) {
				rawDepth++
			}
		case html.EndTagToken:
			if isRawTextTag(z) && rawDepth > 0 {
				rawDepth--
			}
		case html.TextToken:
			if rawDepth == 0 {
				l.scan(idx, raw, offset, entitySpans(raw))
			}
		}
		offset += len(raw)
	}
}

func isRawTextTag(z *html.Tokenizer) bool {
	name, _ := z.TagName()
	switch string(name) {
	case "script", "style":
		return true
	}
	return false
}

func entitySpans(raw string) []Span {
	if !strings.Contains(raw, "&") {
		return nil
	}
	var spans []Span
	for _, m := range charRef.FindAllStringIndex(raw, -1) {
		// unknown names such as &foo; are shown verbatim, so their letters stay candidates
		if ref := raw[m[0]:m[1]]; html.UnescapeString(ref) == ref {
			continue
		}
		spans = append(spans, Span{Start: m[0], Stop: m[1]})
	}
	return spans
}
