package cli

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
)

// Prompt choices.
const (
	PromptYes = "Yes"
	PromptNo  = "No"
)

// Confirmer asks the operator to approve an action.
type Confirmer interface {
	Confirm(label string) (bool, error)
}

// PromptConfirmer asks on the terminal with a Yes/No select.
type PromptConfirmer struct{}

// Confirm implements Confirmer. Interrupting the prompt counts as No.
func (PromptConfirmer) Confirm(label string) (bool, error) {
	prompt := promptui.Select{
		Label: label,
		Items: []string{PromptYes, PromptNo},
	}
	_, selected, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return false, nil
		}
		return false, fmt.Errorf("confirm: %w", err)
	}
	return selected == PromptYes, nil
}

// AutoConfirm answers every prompt with the same value.
type AutoConfirm bool

// Confirm implements Confirmer.
func (a AutoConfirm) Confirm(string) (bool, error) { return bool(a), nil }
