package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter asks the user for input.
type Prompter interface {
	Line(label string) (string, error)
	Secret(label string) (string, error)
}

type terminalPrompter struct {
	in     *os.File
	out    io.Writer
	reader *bufio.Reader
}

// NewTerminalPrompter reads answers from in, hiding secrets when in is a terminal.
func NewTerminalPrompter(in *os.File, out io.Writer) Prompter {
	return &terminalPrompter{in: in, out: out, reader: bufio.NewReader(in)}
}

func (p *terminalPrompter) Line(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	return p.readLine()
}

func (p *terminalPrompter) Secret(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)

	fd := int(p.in.Fd())
	if !term.IsTerminal(fd) {
		return p.readLine()
	}

	b, err := term.ReadPassword(fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (p *terminalPrompter) readLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// valueOrPrompt returns v when set, otherwise asks for it.
func valueOrPrompt(p Prompter, v, label string) (string, error) {
	if v != "" {
		return v, nil
	}
	return p.Line(label)
}
