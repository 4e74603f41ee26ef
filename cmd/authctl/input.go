package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

// Test seams for the terminal.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// readSecret reads a password without echo from a terminal, or one line from
// piped input. Only the line ending is stripped; spaces are part of the password.
func readSecret(in *bufio.Reader, out io.Writer, fd int, prompt string) (string, error) {
	if isTerminal(fd) {
		if _, err := fmt.Fprint(out, prompt); err != nil {
			return "", err
		}
		pw, err := readPassword(fd)
		fmt.Fprintln(out)
		if err != nil {
			return "", errors.Wrap(err, "read password")
		}

		return string(pw), nil
	}

	line, err := in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
		return "", errors.Wrap(err, "read password")
	}

	return strings.TrimRight(line, "\r\n"), nil
}
