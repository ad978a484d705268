package main

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/conn-castle/ocmigrate/internal/messages"
)

var runFormFunc = func(form *huh.Form) error { return form.Run() }

// huhPrompter asks for per-file overwrite confirmation using a huh form.
type huhPrompter struct{}

// Overwrite asks whether path may be overwritten. Declining (or any
// non-affirmative answer) skips the file.
func (huhPrompter) Overwrite(path string) (bool, error) {
	confirmed := false
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf(messages.PromptOverwriteFmt, path)).
			Value(&confirmed),
	))
	if err := runFormFunc(form); err != nil {
		return false, err
	}
	return confirmed, nil
}
