package postprocessors

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// mockProcessor is a test processor that appends a suffix.
type mockProcessor struct {
	name   string
	suffix string
	err    error
}

func (m *mockProcessor) Name() string {
	return m.name
}

func (m *mockProcessor) Process(_ context.Context, text string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return text + m.suffix, nil
}

func TestNewPipeline(t *testing.T) {
	p := NewPipeline()
	if p == nil {
		t.Fatal("expected non-nil pipeline")
	}
	if p.Len() != 0 {
		t.Errorf("expected 0 processors, got %d", p.Len())
	}
}

func TestPipeline_Add(t *testing.T) {
	p := NewPipeline()
	p.Add(&mockProcessor{name: "test"})

	if p.Len() != 1 {
		t.Errorf("expected 1 processor, got %d", p.Len())
	}
}

func TestPipeline_Process_EmptyPipeline(t *testing.T) {
	got, err := NewPipeline().Process(context.Background(), "unchanged")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "unchanged" {
		t.Errorf("got %q", got)
	}
}

func TestPipeline_Process_RunsInOrder(t *testing.T) {
	p := NewPipeline(
		&mockProcessor{name: "a", suffix: "-a"},
		&mockProcessor{name: "b", suffix: "-b"},
	)

	got, err := p.Process(context.Background(), "x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "x-a-b" {
		t.Errorf("got %q, want x-a-b", got)
	}
	if names := strings.Join(p.Names(), ","); names != "a,b" {
		t.Errorf("names = %q", names)
	}
}

func TestPipeline_Process_StopsOnError(t *testing.T) {
	boom := errors.New("boom")
	p := NewPipeline(
		&mockProcessor{name: "first", err: boom},
		&mockProcessor{name: "second", suffix: "-never"},
	)

	_, err := p.Process(context.Background(), "x")
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}
	if !strings.Contains(err.Error(), "processor first") {
		t.Errorf("error should name the processor: %v", err)
	}
}

func TestPipeline_Process_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPipeline(&mockProcessor{name: "a"}).Process(ctx, "x")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
