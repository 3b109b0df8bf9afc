package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// prompter reads answers from the operator, one line per question.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// readLine returns the next trimmed input line. A final line without a
// newline is returned as is; io.EOF is reported only when nothing was read.
func (p *prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ask prompts for a value. An empty answer, or end of input, selects def;
// with no default the value is required.
func (p *prompter) ask(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}

	answer, err := p.readLine()
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
	}
	if answer == "" {
		if def == "" {
			return "", usagef("%s is required", strings.ToLower(label))
		}
		return def, nil
	}
	return answer, nil
}

// confirm asks a yes/no question. Anything but y or yes, including end of
// input, is a no.
func (p *prompter) confirm(question string) (bool, error) {
	fmt.Fprintf(p.out, "%s [y/N]: ", question)

	answer, err := p.readLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(p.out)
			return false, nil
		}
		return false, err
	}

	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// waitForEnter closes the returned channel once the operator presses Enter
// or input ends.
func (p *prompter) waitForEnter() <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = p.in.ReadString('\n')
	}()
	return done
}
