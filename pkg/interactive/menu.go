// Package interactive provides terminal prompts built on survey
package interactive

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
)

// MenuOption represents a menu item with its associated action
type MenuOption struct {
	Name        string
	Description string
	Action      func() error
}

var (
	// ErrExit is returned when the user chooses to exit
	ErrExit = errors.New("exit")
	// ErrInvalidSelection is returned when an invalid menu option is selected
	ErrInvalidSelection = errors.New("invalid selection")
)

const exitChoice = "Exit"

// ShowMainMenu displays the main menu and handles user selection
func ShowMainMenu(options []MenuOption) error {
	choices := make([]string, 0, len(options)+1)
	optionMap := make(map[string]MenuOption, len(options))

	for _, opt := range options {
		choice := fmt.Sprintf("%s - %s", opt.Name, opt.Description)
		choices = append(choices, choice)
		optionMap[choice] = opt
	}

	choices = append(choices, exitChoice)

	var selected string
	prompt := &survey.Select{
		Message: "What would you like to do?",
		Options: choices,
	}

	if err := survey.AskOne(prompt, &selected); err != nil {
		return ErrExit
	}

	if selected == exitChoice {
		return ErrExit
	}

	if option, ok := optionMap[selected]; ok {
		return option.Action()
	}

	return ErrInvalidSelection
}

// Select asks the user to pick one of options, preselecting def when it is one of them.
func Select(message string, options []string, def string) (string, error) {
	var selected string
	prompt := &survey.Select{
		Message: message,
		Options: options,
	}

	if containsOption(options, def) {
		prompt.Default = def
	}

	if err := survey.AskOne(prompt, &selected); err != nil {
		return "", fmt.Errorf("prompt %q: %w", message, err)
	}

	return selected, nil
}

// Input asks the user for free text, validated by validate when non-nil.
func Input(message string, validate func(string) error) (string, error) {
	var answer string

	opts := make([]survey.AskOpt, 0, 1)
	if validate != nil {
		opts = append(opts, survey.WithValidator(func(ans interface{}) error {
			s, ok := ans.(string)
			if !ok {
				return ErrInvalidSelection
			}
			return validate(s)
		}))
	}

	if err := survey.AskOne(&survey.Input{Message: message}, &answer, opts...); err != nil {
		return "", fmt.Errorf("prompt %q: %w", message, err)
	}

	return answer, nil
}

// PauseForEnter waits for the user to press Enter
func PauseForEnter() {
	fmt.Println("\nPress Enter to continue...")
	_, _ = fmt.Scanln()
}

// Confirm asks a yes/no question. An aborted prompt counts as no.
func Confirm(message string, def bool) bool {
	confirmed := def
	if err := survey.AskOne(&survey.Confirm{Message: message, Default: def}, &confirmed); err != nil {
		return false
	}

	return confirmed
}

// containsOption reports whether def is a valid preselection for a survey.Select.
func containsOption(options []string, def string) bool {
	if def == "" {
		return false
	}

	for _, opt := range options {
		if opt == def {
			return true
		}
	}

	return false
}
