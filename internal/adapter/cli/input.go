package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"golang.org/x/term"
)

// Test seams for the terminal.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// errQuit ends the session, normally because input reached EOF.
var errQuit = errors.New("quit")

// prompt writes label without a newline and reads one trimmed line. EOF with
// no pending input maps to errQuit.
func prompt(reader *bufio.Reader, w io.Writer, label string) (string, error) {
	if _, err := fmt.Fprint(w, label); err != nil {
		return "", err
	}
	return readLine(reader)
}

func readLine(reader *bufio.Reader) (string, error) {
	line, err := readRawLine(reader)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readRawLine returns the next line including its terminator.
func readRawLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if len(line) > 0 {
				return line, nil
			}
			return "", errQuit
		}
		return "", err
	}
	return line, nil
}

// promptSecret reads a password without echo when fd is a terminal and as a
// plain line otherwise, so piped input keeps working. Both paths keep spaces
// and drop control characters.
func promptSecret(reader *bufio.Reader, w io.Writer, label string, fd int, tty bool) (string, error) {
	if _, err := fmt.Fprint(w, label); err != nil {
		return "", err
	}

	if !tty {
		line, err := readRawLine(reader)
		if err != nil {
			return "", err
		}
		return stripControl(line), nil
	}

	pw, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return stripControl(string(pw)), nil
}

func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}
