package util

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrNoInput is returned when input ends before a value was entered.
var ErrNoInput = errors.New("no input")

// Prompter asks the operator for values. Secrets are masked when the input
// is a terminal.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int // -1 unless in is a terminal
}

// NewPrompter reads from in and writes prompts to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{in: bufio.NewReader(in), out: out, fd: -1}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.fd = int(f.Fd())
	}
	return p
}

// Line asks for a value, repeating the prompt until it is non-empty.
func (p *Prompter) Line(label string) (string, error) {
	for {
		fmt.Fprintf(p.out, "%s: ", label)
		v, err := p.readLine()
		if err != nil {
			return "", fmt.Errorf("%s: %w", strings.ToLower(label), err)
		}
		if v != "" {
			return v, nil
		}
	}
}

// Secret asks for a value without echoing it.
func (p *Prompter) Secret(label string) (string, error) {
	for {
		fmt.Fprintf(p.out, "%s: ", label)
		v, err := p.readSecret()
		if err != nil {
			return "", fmt.Errorf("%s: %w", strings.ToLower(label), err)
		}
		if v != "" {
			return v, nil
		}
	}
}

// ConfirmedSecret asks for a secret twice and repeats until both entries
// match.
func (p *Prompter) ConfirmedSecret(label string) (string, error) {
	for {
		first, err := p.Secret(label)
		if err != nil {
			return "", err
		}
		second, err := p.Secret("Repeat for confirmation")
		if err != nil {
			return "", err
		}
		if first == second {
			return first, nil
		}
		fmt.Fprintln(p.out, "Error: The two entered values do not match.")
	}
}

func (p *Prompter) readSecret() (string, error) {
	if p.fd < 0 {
		return p.readLine()
	}
	b, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out) // Add newline after password input
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", ErrNoInput
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
