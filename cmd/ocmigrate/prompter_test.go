package main

import (
	"errors"
	"testing"

	"github.com/charmbracelet/huh"
)

func TestHuhPrompterDefaultsToDecline(t *testing.T) {
	restore := runFormFunc
	runFormFunc = func(form *huh.Form) error { return nil }
	t.Cleanup(func() { runFormFunc = restore })

	proceed, err := huhPrompter{}.Overwrite("/tmp/a.md")
	if err != nil {
		t.Fatalf("Overwrite: %v", err)
	}
	if proceed {
		t.Fatalf("unanswered prompt must decline")
	}
}

func TestHuhPrompterPropagatesError(t *testing.T) {
	restore := runFormFunc
	formErr := errors.New("form aborted")
	runFormFunc = func(form *huh.Form) error { return formErr }
	t.Cleanup(func() { runFormFunc = restore })

	proceed, err := huhPrompter{}.Overwrite("/tmp/a.md")
	if !errors.Is(err, formErr) {
		t.Fatalf("expected form error, got %v", err)
	}
	if proceed {
		t.Fatalf("errored prompt must decline")
	}
}
