// Package plaintext turns generated output into plain text: HTML tags and
// markdown emphasis are removed, list markers become "- " and groups are
// separated by a single blank line.
package plaintext

import (
	"context"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Name identifies the processor in configuration.
const Name = "plaintext"

// Pre-compiled regular expressions for text cleanup.
var (
	anyTag        = regexp.MustCompile(`<[a-zA-Z/!][^>]*>`)
	heading       = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	bullet        = regexp.MustCompile(`(?m)^(\s*)(?:[*•+]|\d+[.)])\s+`)
	emphasis      = regexp.MustCompile(`(\*\*|__)(.+?)(\*\*|__)`)
	multiSpaces   = regexp.MustCompile(`[ \t]+`)
	multiNewlines = regexp.MustCompile(`\n{3,}`)
)

// skipped elements contribute no text.
var skipped = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Head:     true,
	atom.Title:    true,
	atom.Noscript: true,
	atom.Iframe:   true,
	atom.Svg:      true,
}

var blocks = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Ul: true, atom.Ol: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Blockquote: true, atom.Pre: true, atom.Section: true, atom.Article: true,
}

// Processor converts text to plain text.
type Processor struct{}

// New creates a plain text processor.
func New() *Processor {
	return &Processor{}
}

// Name returns the processor identifier.
func (p *Processor) Name() string {
	return Name
}

// Process returns the plain text rendering.
func (p *Processor) Process(_ context.Context, text string) (string, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if anyTag.MatchString(text) {
		text = stripHTML(text)
	}

	text = heading.ReplaceAllString(text, "")
	text = emphasis.ReplaceAllString(text, "$2")
	text = bullet.ReplaceAllString(text, "$1- ")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(multiSpaces.ReplaceAllString(line, " "), " ")
	}
	text = strings.Join(lines, "\n")
	text = multiNewlines.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text), nil
}

// stripHTML drops tags, keeping list items as "- " lines and block
// boundaries as blank lines.
func stripHTML(content string) string {
	var sb strings.Builder
	z := html.NewTokenizer(strings.NewReader(content))
	skip := 0

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		tok := z.Token()

		switch tt {
		case html.TextToken:
			if skip == 0 {
				sb.WriteString(tok.Data)
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			switch {
			case skipped[tok.DataAtom]:
				if tt == html.StartTagToken {
					skip++
				}
			case tok.DataAtom == atom.Li:
				sb.WriteString("\n- ")
			case tok.DataAtom == atom.Br:
				sb.WriteString("\n")
			case blocks[tok.DataAtom]:
				sb.WriteString("\n\n")
			}
		case html.EndTagToken:
			switch {
			case skipped[tok.DataAtom]:
				if skip > 0 {
					skip--
				}
			case blocks[tok.DataAtom]:
				sb.WriteString("\n")
			}
		}
	}

	lines := strings.Split(sb.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}
