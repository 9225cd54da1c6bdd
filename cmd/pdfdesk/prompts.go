package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/openmined/pdfdesk/internal/library"
	"github.com/openmined/pdfdesk/internal/utils"
)

var errNotInteractive = errors.New("no terminal to prompt on")

// ask prompts for a value unless one was already given.
func ask(label, value string, validate promptui.ValidateFunc) (string, error) {
	if value != "" {
		return value, nil
	}
	if !isTerminal(os.Stdin) {
		return "", fmt.Errorf("%s: %w", strings.ToLower(label), errNotInteractive)
	}

	p := promptui.Prompt{
		Label:    label,
		Validate: validate,
	}
	return p.Run()
}

func askSecret(label string) (string, error) {
	if !isTerminal(os.Stdin) {
		return "", fmt.Errorf("%s: %w", strings.ToLower(label), errNotInteractive)
	}

	p := promptui.Prompt{
		Label: label,
		Mask:  '*',
	}
	return p.Run()
}

// askNewPassword reads a password and its confirmation, from stdin when asked to.
func askNewPassword(stdin io.Reader, fromStdin bool) (password, confirm string, err error) {
	if fromStdin {
		password, err = readSecret(stdin)
		return password, password, err
	}

	if password, err = askSecret("Password"); err != nil {
		return "", "", err
	}
	if confirm, err = askSecret("Confirm password"); err != nil {
		return "", "", err
	}
	return password, confirm, nil
}

func validateEmail(input string) error {
	return utils.ValidateEmail(strings.TrimSpace(input))
}

// confirmer asks y/N on the terminal, or approves everything when assumeYes.
func confirmer(assumeYes bool) library.Confirmer {
	if assumeYes {
		return library.AlwaysConfirm
	}

	return library.ConfirmFunc(func(prompt string) (bool, error) {
		if !isTerminal(os.Stdin) {
			return false, fmt.Errorf("confirm: %w (pass --yes)", errNotInteractive)
		}

		p := promptui.Prompt{
			Label:     prompt,
			IsConfirm: true,
		}
		if _, err := p.Run(); err != nil {
			if errors.Is(err, promptui.ErrAbort) {
				return false, nil
			}
			return false, err
		}
		return true, nil
	})
}
