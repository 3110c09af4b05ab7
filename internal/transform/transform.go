// Package transform converts a canonical source document into the body of a
// destination page. The transformation is a pure function of its inputs, so
// re-running it over unchanged content always yields byte-identical output.
package transform

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"

	"git.home.luguber.info/inful/docsync/internal/frontmatter"
)

// leadingHeading matches a top-level ATX heading on the very first line,
// together with the newlines that follow it. Anchored so a nested heading
// further down can never be caught by a loose match.
var leadingHeading = regexp.MustCompile(`^# [^\n]*\n+`)

// Page produces the final destination page: a frontmatter block carrying the
// mapping entry's title and description, followed by the document body with
// its own top-level heading removed. The templating layer renders the page
// heading from the title field, so a retained H1 would appear twice.
func Page(raw []byte, title, description string) ([]byte, error) {
	meta, err := frontmatter.Serialize([]frontmatter.Field{
		{Key: "title", Value: title},
		{Key: "description", Value: description},
	})
	if err != nil {
		return nil, fmt.Errorf("serialize frontmatter: %w", err)
	}

	body := StripLeadingHeading(normalize(string(raw)))
	body = strings.TrimRight(body, "\n")
	if body == "" {
		return meta, nil
	}

	page := make([]byte, 0, len(meta)+1+len(body)+1)
	page = append(page, meta...)
	page = append(page, '\n')
	page = append(page, body...)
	page = append(page, '\n')
	return page, nil
}

// StripLeadingHeading removes a single top-level heading from the start of
// the document, along with the blank lines that trail it. The body is first
// checked against the Markdown AST so that only a document whose first block
// really is a level-1 ATX heading is touched.
func StripLeadingHeading(body string) string {
	trimmed := strings.TrimLeft(body, "\n")
	if !startsWithTopLevelHeading(trimmed) {
		return body
	}
	stripped := leadingHeading.ReplaceAllString(trimmed, "")
	if stripped == trimmed {
		// AST saw a heading the line pattern did not (setext style). Leave
		// the document alone rather than guess.
		return body
	}
	return stripped
}

// startsWithTopLevelHeading parses the document and reports whether its first
// block node is a level-1 heading.
func startsWithTopLevelHeading(body string) bool {
	md := goldmark.New()
	root := md.Parser().Parse(gmtext.NewReader([]byte(body)))

	first := root.FirstChild()
	if first == nil {
		return false
	}
	heading, ok := first.(*gmast.Heading)
	return ok && heading.Level == 1
}

// normalize rewrites CRLF line endings to LF so output bytes do not depend on
// how the source document was authored.
func normalize(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
