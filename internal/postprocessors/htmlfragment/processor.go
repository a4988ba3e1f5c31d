// Package htmlfragment reduces generated HTML to a fragment that is safe to
// insert into a page. Sanitising is done by a bluemonday allow-list of
// formatting elements; everything else, including document wrappers and
// active content, is dropped.
package htmlfragment

import (
	"context"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Name identifies the processor in configuration.
const Name = "html"

var multiNewlines = regexp.MustCompile(`\n{3,}`)

// Processor sanitises an HTML fragment.
type Processor struct {
	policy *bluemonday.Policy
}

// New creates an HTML fragment processor.
func New() *Processor {
	return &Processor{policy: newPolicy()}
}

// newPolicy allows text formatting, lists, tables and links to http,
// https, mailto or relative targets.
func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"p", "br", "hr", "div", "span",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"ul", "ol", "li", "dl", "dt", "dd",
		"strong", "b", "em", "i", "u", "small", "sub", "sup",
		"blockquote", "code", "pre",
		"table", "thead", "tbody", "tr", "th", "td",
	)
	p.AllowAttrs("href").OnElements("a")
	p.RequireParseableURLs(true)
	p.AllowRelativeURLs(true)
	p.AllowURLSchemes("http", "https", "mailto")
	return p
}

// Name returns the processor identifier.
func (p *Processor) Name() string {
	return Name
}

// Process returns the cleaned fragment.
func (p *Processor) Process(_ context.Context, text string) (string, error) {
	text = p.policy.Sanitize(text)
	text = multiNewlines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text), nil
}
