// Package postprocessors cleans up generated foraging recommendations.
package postprocessors

import (
	"context"
	"fmt"

	"github.com/custodia-labs/ration/internal/core/ports/driven"
)

// Ensure Pipeline implements the interface.
var _ driven.PostProcessor = (*Pipeline)(nil)

// Pipeline chains multiple PostProcessors and runs them in order.
type Pipeline struct {
	processors []driven.PostProcessor
}

// NewPipeline creates a new processing pipeline with the given processors.
// Processors are executed in the order provided.
func NewPipeline(processors ...driven.PostProcessor) *Pipeline {
	return &Pipeline{
		processors: processors,
	}
}

// Name returns "pipeline".
func (p *Pipeline) Name() string {
	return "pipeline"
}

// Process runs the text through all processors in order. Each processor
// receives the previous one's output.
func (p *Pipeline) Process(ctx context.Context, text string) (string, error) {
	for _, processor := range p.processors {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		var err error
		text, err = processor.Process(ctx, text)
		if err != nil {
			return "", fmt.Errorf("processor %s: %w", processor.Name(), err)
		}
	}

	return text, nil
}

// Add appends a processor to the pipeline.
func (p *Pipeline) Add(processor driven.PostProcessor) {
	p.processors = append(p.processors, processor)
}

// Len returns the number of processors in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.processors)
}

// Names returns the processor names in execution order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.processors))
	for i, processor := range p.processors {
		names[i] = processor.Name()
	}
	return names
}
