package driven

import "context"

// PostProcessor rewrites generated text before it is returned to callers.
type PostProcessor interface {
	// Name returns the processor identifier used in configuration.
	Name() string

	// Process returns the rewritten text.
	Process(ctx context.Context, text string) (string, error)
}
