// File: internal/ui/prompt/prompt.go
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompter asks the user to approve an action
type Prompter interface {
	// Reports whether the user answered yes. Anything but y or yes, including no input, is a no
	Confirm(question string) (bool, error)
}

type StandardPrompter struct {
	reader *bufio.Reader
	writer io.Writer
}

func NewStandardPrompter(in io.Reader, out io.Writer) *StandardPrompter {
	return &StandardPrompter{
		reader: bufio.NewReader(in),
		writer: out,
	}
}

func (p *StandardPrompter) Confirm(question string) (bool, error) {
	if question == "" {
		return false, errors.New("confirmation question cannot be empty")
	}

	fmt.Fprintf(p.writer, "%s [y/N]: ", question)

	input, err := p.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("error reading user input: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Approves everything without asking, for --yes
type AssumeYes struct{}

func (AssumeYes) Confirm(string) (bool, error) { return true, nil }
