package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompt(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("  alice  \nbob"))

	got, err := prompt(reader, &out, "Username: ")
	require.NoError(t, err)
	assert.Equal(t, "alice", got)
	assert.Equal(t, "Username: ", out.String())

	got, err = prompt(reader, &out, "Username: ")
	require.NoError(t, err, "partial last line is returned")
	assert.Equal(t, "bob", got)

	_, err = prompt(reader, &out, "Username: ")
	assert.ErrorIs(t, err, errQuit)
}

func TestPromptSecretPipedInput(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("hunter2\n"))

	got, err := promptSecret(reader, &out, "Password: ", 0, false)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", got)
}

func TestPromptSecretTerminal(t *testing.T) {
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })

	var gotFD int
	readPassword = func(fd int) ([]byte, error) {
		gotFD = fd
		return []byte("s3cret"), nil
	}

	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("must not be read\n"))

	got, err := promptSecret(reader, &out, "Password: ", 7, true)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", got)
	assert.Equal(t, 7, gotFD)
	assert.Equal(t, "Password: \n", out.String())

	rest, _ := reader.ReadString('\n')
	assert.Equal(t, "must not be read\n", rest)
}

func TestPromptSecretTerminalError(t *testing.T) {
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })

	readPassword = func(int) ([]byte, error) { return nil, errors.New("not a tty") }

	_, err := promptSecret(bufio.NewReader(strings.NewReader("")), &bytes.Buffer{}, "Password: ", 0, true)
	assert.EqualError(t, err, "not a tty")
}

func TestPromptSecretKeepsSpacesOnBothPaths(t *testing.T) {
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })
	readPassword = func(int) ([]byte, error) { return []byte(" pw \x7f"), nil }

	piped, err := promptSecret(bufio.NewReader(strings.NewReader(" pw \r\n")), &bytes.Buffer{}, "Password: ", 0, false)
	require.NoError(t, err)

	typed, err := promptSecret(bufio.NewReader(strings.NewReader("")), &bytes.Buffer{}, "Password: ", 0, true)
	require.NoError(t, err)

	assert.Equal(t, " pw ", piped)
	assert.Equal(t, piped, typed)
}

func TestPromptSecretPipedEOF(t *testing.T) {
	var out bytes.Buffer

	got, err := promptSecret(bufio.NewReader(strings.NewReader("last")), &out, "Password: ", 0, false)
	require.NoError(t, err)
	assert.Equal(t, "last", got)
	assert.Equal(t, "Password: ", out.String())

	_, err = promptSecret(bufio.NewReader(strings.NewReader("")), &out, "Password: ", 0, false)
	assert.ErrorIs(t, err, errQuit)
}
