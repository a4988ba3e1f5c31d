package postprocessors

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/custodia-labs/ration/internal/core/domain"
	"github.com/custodia-labs/ration/internal/core/ports/driven"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry returned nil")
	}
	if len(r.builders) != 0 {
		t.Errorf("expected empty builders, got %d", len(r.builders))
	}
}

func TestRegistry_RegisterAndBuild(t *testing.T) {
	r := NewRegistry()
	r.Register("test", func() (driven.PostProcessor, error) {
		return &mockProcessor{name: "test"}, nil
	})

	if !r.Has("test") {
		t.Fatal("expected test to be registered")
	}
	p, err := r.Build("test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "test" {
		t.Errorf("got %q", p.Name())
	}
}

func TestRegistry_BuildUnknown(t *testing.T) {
	_, err := NewRegistry().Build("missing")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRegistry_Names(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	want := []string{"fences", "html", "plaintext"}
	if got := r.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestForFormat_Defaults(t *testing.T) {
	tests := []struct {
		format domain.OutputFormat
		want   []string
	}{
		{domain.OutputFormatHTML, []string{"fences", "html"}},
		{domain.OutputFormatText, []string{"fences", "plaintext"}},
	}

	for _, tt := range tests {
		p, err := ForFormat(tt.format, nil)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.format, err)
		}
		if got := p.Names(); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s: got %v, want %v", tt.format, got, tt.want)
		}
	}
}

func TestForFormat_Configured(t *testing.T) {
	p, err := ForFormat(domain.OutputFormatHTML, []string{"plaintext"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := p.Process(context.Background(), "<p>Acorns &amp; <b>oak</b></p>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Acorns & oak" {
		t.Errorf("got %q", got)
	}

	if _, err := ForFormat(domain.OutputFormatHTML, []string{"nope"}); err == nil {
		t.Error("expected error for unknown processor")
	}
}

func TestForFormat_HTMLEndToEnd(t *testing.T) {
	p, err := ForFormat(domain.OutputFormatHTML, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := p.Process(context.Background(), "```html\n<html><body><ul><li>Acorns</li></ul></body></html>\n```")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "<ul><li>Acorns</li></ul>" {
		t.Errorf("got %q", got)
	}
}
