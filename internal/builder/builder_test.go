package builder

import (
	"strings"
	"testing"
)

func TestBuildResolvesConfiguredRenderer(t *testing.T) {
	t.Setenv("RENDERER", "vanilla")
	t.Setenv("GENERATOR_ENABLED", "false")
	t.Setenv("LOG_LEVEL", "error")

	app, err := Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if app == nil {
		t.Fatalf("build returned nil app")
	}
}

func TestBuildRejectsUnknownRenderer(t *testing.T) {
	t.Setenv("RENDERER", "carrier-pigeon")
	t.Setenv("GENERATOR_ENABLED", "false")
	t.Setenv("LOG_LEVEL", "error")

	_, err := Build()
	if err == nil {
		t.Fatalf("expected error for unknown renderer")
	}
	if !strings.Contains(err.Error(), "carrier-pigeon") {
		t.Errorf("error does not name the renderer: %v", err)
	}
}
