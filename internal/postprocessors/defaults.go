package postprocessors

import (
	"github.com/custodia-labs/ration/internal/core/domain"
	"github.com/custodia-labs/ration/internal/core/ports/driven"
	"github.com/custodia-labs/ration/internal/postprocessors/fences"
	"github.com/custodia-labs/ration/internal/postprocessors/htmlfragment"
	"github.com/custodia-labs/ration/internal/postprocessors/plaintext"
)

// RegisterDefaults registers all built-in processors with the registry.
func RegisterDefaults(r *Registry) {
	r.Register(fences.Name, func() (driven.PostProcessor, error) { return fences.New(), nil })
	r.Register(htmlfragment.Name, func() (driven.PostProcessor, error) { return htmlfragment.New(), nil })
	r.Register(plaintext.Name, func() (driven.PostProcessor, error) { return plaintext.New(), nil })
}

// DefaultNames returns the processors applied to output of the given format
// when none are configured.
func DefaultNames(format domain.OutputFormat) []string {
	if format == domain.OutputFormatText {
		return []string{fences.Name, plaintext.Name}
	}
	return []string{fences.Name, htmlfragment.Name}
}

// ForFormat builds the pipeline for format. Configured names take
// precedence over the defaults.
func ForFormat(format domain.OutputFormat, names []string) (*Pipeline, error) {
	if len(names) == 0 {
		names = DefaultNames(format)
	}
	r := NewRegistry()
	RegisterDefaults(r)
	return r.BuildPipeline(names)
}
