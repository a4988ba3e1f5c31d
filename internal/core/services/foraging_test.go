package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ration/internal/core/domain"
	"github.com/custodia-labs/ration/internal/core/ports/driven"
)

func TestForagingService_BuildPrompt_InterpolatesProfile(t *testing.T) {
	svc := NewForagingService(nil, nil, domain.OutputFormatHTML)

	prompt := svc.BuildPrompt(testProfile())

	assert.Contains(t, prompt, "70 inches")
	assert.Contains(t, prompt, "180 lbs")
	assert.Contains(t, prompt, "male")
	assert.Contains(t, prompt, "very_active")
	assert.Contains(t, prompt, "30 years old")
	assert.Contains(t, prompt, "Portland, OR")
	assert.Contains(t, prompt, "HTML fragment")
	assert.NotContains(t, prompt, "%!")
}

func TestForagingService_BuildPrompt_TextVariant(t *testing.T) {
	svc := NewForagingService(nil, nil, domain.OutputFormatText)

	prompt := svc.BuildPrompt(testProfile())

	assert.Contains(t, prompt, "blank line")
	assert.NotContains(t, prompt, "HTML")
}

func TestForagingService_BuildPrompt_InvalidFormatDefaultsToHTML(t *testing.T) {
	svc := NewForagingService(nil, nil, "markdown")

	assert.Contains(t, svc.BuildPrompt(testProfile()), "HTML fragment")
}

func TestForagingService_BuildPrompt_Deterministic(t *testing.T) {
	svc := NewForagingService(nil, nil, domain.OutputFormatHTML)
	assert.Equal(t, svc.BuildPrompt(testProfile()), svc.BuildPrompt(testProfile()))
}

func TestForagingService_BuildPrompt_UsesPromptStore(t *testing.T) {
	store := &mockPromptStore{prompts: map[string]string{
		driven.PromptForagingHTML: "Near %[6]v, age %[5]v",
	}}
	svc := NewForagingService(nil, store, domain.OutputFormatHTML)

	assert.Equal(t, "Near Portland, OR, age 30", svc.BuildPrompt(testProfile()))
}

func TestForagingService_BuildPrompt_StoreMissFallsBack(t *testing.T) {
	store := &mockPromptStore{prompts: map[string]string{}}
	svc := NewForagingService(nil, store, domain.OutputFormatText)

	assert.Contains(t, svc.BuildPrompt(testProfile()), "blank line")
}

func TestForagingService_GenerateTips(t *testing.T) {
	ctx := context.Background()

	t.Run("returns trimmed text", func(t *testing.T) {
		llm := &mockLLMService{response: "  <li>Dandelion</li>\n"}
		svc := NewForagingService(llm, nil, domain.OutputFormatHTML)

		text, err := svc.GenerateTips(ctx, testProfile())

		require.NoError(t, err)
		assert.Equal(t, "<li>Dandelion</li>", text)
		require.Equal(t, 1, llm.calls())
		assert.Contains(t, llm.prompts[0], "Portland, OR")
		assert.Positive(t, llm.opts[0].MaxTokens)
	})

	t.Run("no llm wraps upstream and unavailable", func(t *testing.T) {
		svc := NewForagingService(nil, nil, domain.OutputFormatHTML)

		_, err := svc.GenerateTips(ctx, testProfile())

		assert.ErrorIs(t, err, domain.ErrUpstream)
		assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
		assert.False(t, svc.Enabled())
	})

	t.Run("llm failure is upstream and not retried", func(t *testing.T) {
		llm := &mockLLMService{err: errors.New("quota exceeded")}
		svc := NewForagingService(llm, nil, domain.OutputFormatHTML)

		_, err := svc.GenerateTips(ctx, testProfile())

		assert.ErrorIs(t, err, domain.ErrUpstream)
		assert.Contains(t, err.Error(), "quota exceeded")
		assert.Equal(t, 1, llm.calls())
	})

	t.Run("empty response is upstream", func(t *testing.T) {
		llm := &mockLLMService{response: "   "}
		svc := NewForagingService(llm, nil, domain.OutputFormatHTML)

		_, err := svc.GenerateTips(ctx, testProfile())

		assert.ErrorIs(t, err, domain.ErrUpstream)
	})
}

func TestForagingService_RateLimit(t *testing.T) {
	llm := &mockLLMService{response: "tips"}
	svc := NewForagingService(llm, nil, domain.OutputFormatHTML)
	svc.SetRateLimit(0.001, 1)

	_, err := svc.GenerateTips(context.Background(), testProfile())
	require.NoError(t, err)

	// The bucket is now empty; a cancelled wait fails as upstream.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = svc.GenerateTips(ctx, testProfile())

	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.Equal(t, 1, llm.calls())

	svc.SetRateLimit(0, 0)
	_, err = svc.GenerateTips(context.Background(), testProfile())
	assert.NoError(t, err)
}

// stubProcessor replaces the generated text wholesale.
type stubProcessor struct {
	out string
	err error
}

func (p *stubProcessor) Name() string { return "stub" }

func (p *stubProcessor) Process(_ context.Context, _ string) (string, error) {
	return p.out, p.err
}

func TestForagingService_PostProcessor(t *testing.T) {
	ctx := context.Background()

	t.Run("applied to output", func(t *testing.T) {
		svc := NewForagingService(&mockLLMService{response: "```html\n<p>raw</p>\n```"}, nil, domain.OutputFormatHTML)
		svc.SetPostProcessor(&stubProcessor{out: "  <p>clean</p>\n"})

		text, err := svc.GenerateTips(ctx, testProfile())
		require.NoError(t, err)
		assert.Equal(t, "<p>clean</p>", text)
	})

	t.Run("empty after cleaning", func(t *testing.T) {
		svc := NewForagingService(&mockLLMService{response: "<script>x</script>"}, nil, domain.OutputFormatHTML)
		svc.SetPostProcessor(&stubProcessor{out: " "})

		_, err := svc.GenerateTips(ctx, testProfile())
		assert.ErrorIs(t, err, domain.ErrUpstream)
	})

	t.Run("processor error", func(t *testing.T) {
		svc := NewForagingService(&mockLLMService{response: "tips"}, nil, domain.OutputFormatHTML)
		svc.SetPostProcessor(&stubProcessor{err: errors.New("bad markup")})

		_, err := svc.GenerateTips(ctx, testProfile())
		assert.ErrorIs(t, err, domain.ErrUpstream)
		assert.Contains(t, err.Error(), "bad markup")
	})
}
