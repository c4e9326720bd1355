package prompt

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
)

// ErrPasswordMismatch indicates passwords don't match.
var ErrPasswordMismatch = errors.New("passwords do not match")

// Password prompts for a password input with masking.
func Password(label string) (string, error) {
	prompt := promptui.Prompt{
		Label: label,
		Mask:  '*',
	}

	result, err := prompt.Run()
	return result, wrapError(err)
}

// PasswordWithValidation prompts for a password with minimum length validation.
func PasswordWithValidation(label string, minLength int) (string, error) {
	prompt := promptui.Prompt{
		Label: label,
		Mask:  '*',
		Validate: func(input string) error {
			if len(input) < minLength {
				return fmt.Errorf("password must be at least %d characters", minLength)
			}
			return nil
		},
	}

	result, err := prompt.Run()
	return result, wrapError(err)
}

// NewPassword prompts for a new password with confirmation.
// Uses a minimum length of 8 and returns ErrPasswordMismatch when the
// confirmation differs.
func NewPassword() (string, error) {
	password, err := PasswordWithValidation("Password", 8)
	if err != nil {
		return "", err
	}

	confirm, err := Password("Confirm password")
	if err != nil {
		return "", err
	}

	if password != confirm {
		return "", ErrPasswordMismatch
	}

	return password, nil
}
