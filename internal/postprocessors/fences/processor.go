// Package fences removes a markdown code fence wrapped around generated output.
package fences

import (
	"context"
	"regexp"
	"strings"
)

// Name identifies the processor in configuration.
const Name = "fences"

var fenced = regexp.MustCompile("(?s)^```[A-Za-z0-9_-]*[ \t]*\r?\n(.*?)\r?\n?```$")

// Processor unwraps text enclosed in a single ``` fence.
type Processor struct{}

// New creates a fence processor.
func New() *Processor {
	return &Processor{}
}

// Name returns the processor identifier.
func (p *Processor) Name() string {
	return Name
}

// Process returns the fenced body, or the trimmed text when it is not fenced.
func (p *Processor) Process(_ context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if m := fenced.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1]), nil
	}
	return text, nil
}
