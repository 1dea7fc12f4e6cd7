package helpers

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNotConfirmed is returned when a destructive action is declined.
var ErrNotConfirmed = errors.New("cancelled")

// PromptForYesNo prompts the user for a yes/no question
// Returns true for yes, false for no, or the default value if no input
func PromptForYesNo(out io.Writer, reader *bufio.Reader, promptText string, defaultValue bool) bool {
	label := buildYesNoLabel(defaultValue)
	fmt.Fprintf(out, "%s [%s]: ", promptText, label)

	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(strings.ToLower(line))

	if line == "" {
		return defaultValue
	}

	return isAffirmativeResponse(line)
}

// Confirm guards a destructive action. assumeYes skips the prompt; otherwise
// the input must be a terminal so scripts never block on a question.
func Confirm(in io.Reader, out io.Writer, question string, assumeYes bool) error {
	if assumeYes {
		return nil
	}
	if !IsTerminal(in) {
		return errors.New("refusing to continue without --yes in a non-interactive session")
	}
	if !PromptForYesNo(out, bufio.NewReader(in), question, false) {
		return ErrNotConfirmed
	}
	return nil
}

// buildYesNoLabel constructs the appropriate y/N or Y/n label based on the default
func buildYesNoLabel(defaultIsYes bool) string {
	if defaultIsYes {
		return "Y/n"
	}
	return "y/N"
}

// isAffirmativeResponse checks if a response is affirmative (yes)
func isAffirmativeResponse(response string) bool {
	return response == "y" || response == "yes"
}
