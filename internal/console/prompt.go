package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Prompter reads operator input line by line.  Invalid input is never an
// error: the question is asked again.  The only error a Prompter returns is
// the one that ends input, normally io.EOF.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer

	// fd is the terminal stdin is attached to, or -1 when input is not a
	// terminal (pipes, tests).
	fd int
}

// NewPrompter returns a Prompter reading from in and echoing prompts to out.
// When in is a terminal, Secret reads without echo.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	fd := -1
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd = int(f.Fd())
	}
	return &Prompter{in: bufio.NewReader(in), out: out, fd: fd}
}

func (p *Prompter) readLine() (string, error) {
	s, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || s == "") {
		return "", err
	}
	return strings.TrimSpace(s), nil
}

// Line prints prompt and returns the next line with surrounding space
// trimmed.
func (p *Prompter) Line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	return p.readLine()
}

// Int prints prompt until the operator enters a whole number in
// [minimum, maximum].
func (p *Prompter) Int(prompt string, minimum, maximum int) (int, error) {
	for {
		s, err := p.Line(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(s)
		if err == nil && n >= minimum && n <= maximum {
			return n, nil
		}
		fmt.Fprintf(p.out, "Please enter a number from %d to %d.\n", minimum, maximum)
	}
}

// Secret prints prompt and reads a line without echoing it when input is a
// terminal.
func (p *Prompter) Secret(prompt string) (string, error) {
	if p.fd < 0 || p.in.Buffered() > 0 {
		return p.Line(prompt)
	}
	fmt.Fprint(p.out, prompt)
	b, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// Pause waits for Enter.
func (p *Prompter) Pause(prompt string) error {
	_, err := p.Line(prompt)
	return err
}
