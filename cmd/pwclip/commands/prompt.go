package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	dserrors "github.com/systmms/pwclip/internal/errors"
)

// readPassword is a test seam for term.ReadPassword
var readPassword = term.ReadPassword

// isTerminal is a test seam for term.IsTerminal
var isTerminal = term.IsTerminal

// prompter reads secrets from a terminal without echo, or line by line
// from any other input
type prompter struct {
	in  *bufio.Reader
	out io.Writer
	// file is set when in wraps a terminal
	file *os.File
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	p := &prompter{in: bufio.NewReader(in), out: out}
	if f, ok := in.(*os.File); ok && isTerminal(int(f.Fd())) {
		p.file = f
	}
	return p
}

// Password prompts for a secret. An empty answer is ErrEmptySecret.
func (p *prompter) Password(prompt string) (string, error) {
	if p.file != nil {
		if _, err := fmt.Fprint(p.out, prompt); err != nil {
			return "", err
		}
		pw, err := readPassword(int(p.file.Fd()))
		fmt.Fprintln(p.out)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		if len(pw) == 0 {
			return "", dserrors.ErrEmptySecret
		}
		return string(pw), nil
	}

	line, err := p.Line()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", dserrors.ErrEmptySecret
		}
		return "", err
	}
	if line == "" {
		return "", dserrors.ErrEmptySecret
	}
	return line, nil
}

// Line reads one line without the trailing newline. A final unterminated
// line is returned without error.
func (p *prompter) Line() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
